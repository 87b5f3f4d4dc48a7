package epub

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const (
	coverMaxWidth    = 600
	coverMaxHeight   = 800
	coverJPEGQuality = 90
)

// WriteCover decodes raw image bytes, scales the image down to fit within
// 600x800 if needed, and stores it as OEBPS/images/cover.jpg inside a
// materialized skeleton. Returns the path of the written file.
func (s Skeleton) WriteCover(data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decoding cover image: %w", err)
	}

	// Fit preserves aspect ratio and leaves smaller images untouched.
	img = imaging.Fit(img, coverMaxWidth, coverMaxHeight, imaging.Lanczos)

	imagesDir := filepath.Join(s.OEBPS, "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", imagesDir, err)
	}

	coverPath := filepath.Join(imagesDir, "cover.jpg")
	if err := imaging.Save(img, coverPath, imaging.JPEGQuality(coverJPEGQuality)); err != nil {
		return "", fmt.Errorf("writing file %s: %w", coverPath, err)
	}

	return coverPath, nil
}
