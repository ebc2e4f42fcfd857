package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/clearstudy-ai/clearstudy/internal/api"
	"github.com/clearstudy-ai/clearstudy/internal/domain"
)

type GenerateService interface {
	Generate(ctx context.Context, input *domain.NormalizedInput, level domain.DetailLevel) (*domain.GeneratedNote, error)
}

type GenerateHandler struct {
	svc           GenerateService
	maxInputChars int
}

func NewGenerateHandler(svc GenerateService, maxInputChars int) *GenerateHandler {
	return &GenerateHandler{svc: svc, maxInputChars: maxInputChars}
}

type GenerateRequest struct {
	Text        string `json:"text"`
	InputType   string `json:"inputType"`
	DetailLevel string `json:"detailLevel,omitempty"`
}

type GenerateResponse struct {
	Success   bool   `json:"success"`
	Notes     string `json:"notes"`
	InputType string `json:"inputType"`
}

// Generate turns previously extracted text into study notes.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Text == "" {
		api.Error(w, http.StatusBadRequest, "text is required")
		return
	}
	if h.maxInputChars > 0 && len(req.Text) > h.maxInputChars {
		api.Error(w, http.StatusBadRequest,
			fmt.Sprintf("input text is too long (%d characters, maximum is %d)", len(req.Text), h.maxInputChars))
		return
	}

	kind := domain.InputKind(req.InputType)
	if !kind.IsValid() {
		api.HandleError(w, domain.ErrUnknownInputType.WithDetails(req.InputType))
		return
	}

	level, ok := domain.NormalizeDetailLevel(req.DetailLevel)
	if !ok {
		api.HandleError(w, domain.ErrInvalidDetailLevel.WithDetails(req.DetailLevel))
		return
	}

	input, err := domain.NewNormalizedInput(req.Text, kind)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	note, err := h.svc.Generate(r.Context(), input, level)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, GenerateResponse{
		Success:   true,
		Notes:     note.Text,
		InputType: string(note.Kind),
	})
}
