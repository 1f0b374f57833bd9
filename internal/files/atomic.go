package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// AtomicWrite streams write into a temp file next to path and renames it into place.
// On failure the temp file is removed and path is left untouched.
func AtomicWrite(path string, perms os.FileMode, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "photo-viewer-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	cleanup := true
	defer func() {
		if cleanup {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if err := tmpFile.Chmod(perms); err != nil {
		return fmt.Errorf("failed to set temp file permissions: %w", err)
	}
	if err := write(tmpFile); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to destination: %w", err)
	}

	cleanup = false
	return nil
}
