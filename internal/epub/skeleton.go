package epub

import (
	"fmt"
	"os"
	"path/filepath"
)

// Mimetype is the exact content of the OCF "mimetype" file. No trailing
// newline: the payload must be byte-for-byte what readers expect.
const Mimetype = "application/epub+zip"

// maxFilenameBytes is the common per-component filename limit.
const maxFilenameBytes = 255

// containerXML is the fixed OCF manifest pointing at the package document
// that a later stage will write to OEBPS/content.opf.
const containerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container xmlns="urn:oasis:names:tc:opendocument:xmlns:container" version="1.0">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`

// Skeleton holds the planned on-disk layout of an EPUB container:
// Books/<title (bookid)>/ with its META-INF and OEBPS subdirectories.
// Plan computes the paths without touching the filesystem; Materialize
// creates them.
type Skeleton struct {
	Root    string
	MetaInf string
	OEBPS   string
}

// Plan computes the output directory structure for a book. The sanitized
// title is truncated so the root directory name fits in 255 bytes including
// the " (<bookID>)" suffix; the bookID itself is never truncated. A title
// that sanitizes to nothing yields "(<bookID>)" alone.
func Plan(baseDir, title, bookID string) Skeleton {
	cleanTitle := Sanitize(title)

	var rootName string
	if cleanTitle != "" {
		// Space plus two parentheses around the bookID.
		budget := maxFilenameBytes - (3 + len(bookID))
		if budget < 0 {
			budget = 0
		}
		rootName = fmt.Sprintf("%s (%s)", truncateUTF8(cleanTitle, budget), bookID)
	} else {
		rootName = fmt.Sprintf("(%s)", bookID)
	}

	root := filepath.Join(baseDir, rootName)
	return Skeleton{
		Root:    root,
		MetaInf: filepath.Join(root, "META-INF"),
		OEBPS:   filepath.Join(root, "OEBPS"),
	}
}

// Materialize creates the planned directories and writes the two fixed
// container files. Already-existing directories are fine; files are
// overwritten. On error, partially created state is left in place.
func (s Skeleton) Materialize() error {
	if err := os.MkdirAll(s.OEBPS, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", s.OEBPS, err)
	}
	if err := os.MkdirAll(s.MetaInf, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", s.MetaInf, err)
	}

	mimetypePath := filepath.Join(s.Root, "mimetype")
	if err := os.WriteFile(mimetypePath, []byte(Mimetype), 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", mimetypePath, err)
	}

	containerPath := filepath.Join(s.MetaInf, "container.xml")
	if err := os.WriteFile(containerPath, []byte(containerXML), 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", containerPath, err)
	}

	return nil
}
