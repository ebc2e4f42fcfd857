package extract

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveTemp writes an uploaded stream to a temp file and returns its path.
// The caller owns the file and must release it with CleanupTemp on every
// exit path.
func SaveTemp(r io.Reader, originalName string) (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("upload-%s-%s", uuid.NewString(), filepath.Base(originalName)))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		CleanupTemp(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		CleanupTemp(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}

// CleanupTemp removes a temp file. Deletion is best effort; failures are
// logged, never raised.
func CleanupTemp(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to cleanup temp file %s: %v", path, err)
	}
}
