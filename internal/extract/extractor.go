// Package extract provides plain-text extraction from study documents.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/clearstudy-ai/clearstudy/internal/domain"
)

// Extractor extracts plain text from document files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its text content based on the
// file's extension.
func (e *Extractor) Extract(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return e.ExtractBytes(content, ext)
}

// ExtractBytes extracts text from content based on the given extension.
// ext should include the leading dot (e.g. ".pdf").
func (e *Extractor) ExtractBytes(content []byte, ext string) (string, error) {
	switch ext {
	case ".pdf":
		return e.ExtractPDF(content)
	case ".docx", ".doc":
		return e.ExtractDOCX(content)
	case ".pptx", ".ppt":
		return e.ExtractPPTX(content)
	default:
		return "", domain.ErrInvalidFileType.WithDetails(fmt.Sprintf("no extractor for %q", ext))
	}
}
