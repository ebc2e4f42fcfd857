package extract

import (
	"archive/zip"
	"bytes"
	"regexp"
	"strings"

	"github.com/clearstudy-ai/clearstudy/internal/domain"
)

// pptxSlidePathPrefix is the path prefix for slide XML files inside a .pptx zip.
const pptxSlidePathPrefix = "ppt/slides/slide"

// atTag matches <a:t>text</a:t> or <a:t xml:space="preserve">text</a:t> (and any other attributes).
// PPTX slide text runs follow this fixed tag shape, so a narrow text-node
// pattern is enough; full XML parsing is not needed here.
var atTag = regexp.MustCompile(`<a:t[^>]*>([^<]*)</a:t>`)

// ExtractPPTX extracts text from .pptx bytes. PPTX is a ZIP containing
// ppt/slides/slideN.xml parts; every <a:t>...</a:t> text run is pulled and
// joined with newlines.
func (e *Extractor) ExtractPPTX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", domain.NewPipelineErrorWithCause(domain.ErrCodeValidation, "invalid PPTX file", err)
	}

	var buf strings.Builder
	for _, f := range zr.File {
		if !strings.HasPrefix(f.Name, pptxSlidePathPrefix) || !strings.HasSuffix(f.Name, ".xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", domain.NewPipelineErrorWithCause(domain.ErrCodeValidation, "unreadable PPTX slide part", err)
		}
		var slideBuf bytes.Buffer
		if _, err := slideBuf.ReadFrom(rc); err != nil {
			_ = rc.Close()
			return "", domain.NewPipelineErrorWithCause(domain.ErrCodeValidation, "unreadable PPTX slide part", err)
		}
		_ = rc.Close()

		parts := atTag.FindAllStringSubmatch(slideBuf.String(), -1)
		for _, p := range parts {
			text := strings.TrimSpace(p[1])
			if text == "" {
				continue
			}
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(text)
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
