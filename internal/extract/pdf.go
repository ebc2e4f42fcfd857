package extract

import (
	"bytes"
	"strings"

	"github.com/clearstudy-ai/clearstudy/internal/domain"
	"github.com/ledongthuc/pdf"
)

// ExtractPDF runs a text-layer extraction over every page of a PDF.
//
// An empty result is reported as domain.ErrNoTextLayer and interpreted as a
// scanned/image-only PDF. This is a heuristic: the PDF structure is not
// inspected, so corrupted or encrypted files that parse but carry no text
// produce the same error.
func (e *Extractor) ExtractPDF(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", domain.NewPipelineErrorWithCause(domain.ErrCodeValidation, "invalid PDF file", err)
	}

	var buf bytes.Buffer
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		buf.WriteString(text)
		if i < numPages {
			buf.WriteByte('\n')
		}
	}

	extracted := strings.TrimSpace(buf.String())
	if extracted == "" {
		return "", domain.ErrNoTextLayer.WithDetails(
			"the PDF parsed but yielded no text; it may be a scanned document without selectable text")
	}
	return extracted, nil
}
