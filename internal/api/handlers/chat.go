package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clearstudy-ai/clearstudy/internal/api"
	"github.com/clearstudy-ai/clearstudy/internal/domain"
)

type ChatService interface {
	Chat(ctx context.Context, noteText string, history []domain.ConversationTurn, question string) (string, error)
}

type ChatHandler struct {
	svc ChatService
}

func NewChatHandler(svc ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type ChatRequest struct {
	Notes    string                    `json:"notes"`
	Messages []domain.ConversationTurn `json:"messages"`
	Question string                    `json:"question"`
}

type ChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

// Chat answers a question grounded in previously generated notes.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Notes == "" {
		api.Error(w, http.StatusBadRequest, "notes is required")
		return
	}
	if req.Question == "" {
		api.Error(w, http.StatusBadRequest, "question is required")
		return
	}

	reply, err := h.svc.Chat(r.Context(), req.Notes, req.Messages, req.Question)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, ChatResponse{Success: true, Response: reply})
}
