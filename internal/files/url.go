package files

import (
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2/storage"
)

const fileScheme = "file://"

// ToURL converts a local path to a file URL
func ToURL(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return storage.NewFileURI(abs).String(), nil
}

// ToPath converts a file URL produced by ToURL back to a local path
func ToPath(url string) (string, error) {
	if !IsLocal(url) {
		return "", fmt.Errorf("not a file URL: %q", url)
	}
	path := url[len(fileScheme):]
	if path == "" {
		return "", fmt.Errorf("file URL has no path: %q", url)
	}
	return filepath.FromSlash(path), nil
}

// IsLocal reports whether url uses the file scheme
func IsLocal(url string) bool {
	return strings.HasPrefix(strings.ToLower(url), fileScheme)
}

// IsRemote reports whether url uses an http or https scheme
func IsRemote(url string) bool {
	lower := strings.ToLower(url)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// DisplayName returns the last path element of a URL or path
func DisplayName(url string) string {
	trimmed := strings.TrimRight(url, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
