package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/clearstudy-ai/clearstudy/internal/api"
	"github.com/clearstudy-ai/clearstudy/internal/domain"
	"github.com/clearstudy-ai/clearstudy/internal/normalize"
)

// maxMultipartMemory bounds how much of an upload is buffered in memory
// before spilling to disk.
const maxMultipartMemory = 32 << 20

type NormalizeService interface {
	Normalize(ctx context.Context, req normalize.Request) (*domain.NormalizedInput, error)
}

type ProcessHandler struct {
	svc NormalizeService
}

func NewProcessHandler(svc NormalizeService) *ProcessHandler {
	return &ProcessHandler{svc: svc}
}

type ProcessResponse struct {
	Success    bool   `json:"success"`
	Text       string `json:"text"`
	InputType  string `json:"inputType"`
	TextLength int    `json:"textLength"`
}

// fileFields maps each file-backed input kind to its multipart field name.
var fileFields = map[domain.InputKind]string{
	domain.InputKindPDF:   "pdfFile",
	domain.InputKindDOCX:  "docxFile",
	domain.InputKindPPTX:  "pptxFile",
	domain.InputKindVideo: "videoFile",
}

// Process accepts one input of any supported kind as multipart form data
// and returns its extracted text.
func (h *ProcessHandler) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	kind := domain.InputKind(r.FormValue("inputType"))
	req := normalize.Request{Kind: kind}

	switch kind {
	case domain.InputKindText:
		req.Text = r.FormValue("pastedText")
	case domain.InputKindYouTube:
		req.YouTubeURL = r.FormValue("youtubeUrl")
	default:
		if field, ok := fileFields[kind]; ok {
			file, header, err := r.FormFile(field)
			if err == nil {
				defer file.Close()
				content, readErr := io.ReadAll(file)
				if readErr != nil {
					api.Error(w, http.StatusBadRequest, "failed to read uploaded file")
					return
				}
				req.FileName = header.Filename
				req.FileContent = content
			}
			// A missing file falls through to the normalizer, which
			// reports the precise validation error.
		}
	}

	input, err := h.svc.Normalize(r.Context(), req)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, ProcessResponse{
		Success:    true,
		Text:       input.RawText,
		InputType:  string(input.Kind),
		TextLength: input.SourceLength,
	})
}
