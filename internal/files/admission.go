package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ImageExtensions are the suffixes admitted into the image list
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp"}

// IsValidImageFile reports whether url ends with one of ImageExtensions, ignoring case.
// It is applied to paths and URLs alike.
func IsValidImageFile(url string) bool {
	lower := strings.ToLower(url)
	for _, ext := range ImageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// ListImages returns the admitted image files of dir in lexical order.
// Sub-directories are not descended into.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() || !IsValidImageFile(entry.Name()) {
			continue
		}
		images = append(images, filepath.Join(dir, entry.Name()))
	}
	return images, nil
}
