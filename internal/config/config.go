// Package config resolves the fixed on-disk locations the tool works with.
// Both live next to the executable so a cookie export and the downloaded
// books travel together with the binary.
package config

import (
	"os"
	"path/filepath"
)

// CookiesFile returns the path of the cookies.json session export.
func CookiesFile() (string, error) {
	dir, err := executableDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cookies.json"), nil
}

// BooksRoot returns the directory under which book skeletons are created.
func BooksRoot() (string, error) {
	dir, err := executableDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "Books"), nil
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}
