package server

import (
	"net/http"

	"github.com/clearstudy-ai/clearstudy/internal/api"
	"github.com/clearstudy-ai/clearstudy/internal/api/handlers"
	"github.com/clearstudy-ai/clearstudy/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

type RouterConfig struct {
	ProcessHandler  *handlers.ProcessHandler
	GenerateHandler *handlers.GenerateHandler
	ChatHandler     *handlers.ChatHandler

	// MaxBodyBytes caps request bodies. Zero means the default, which must
	// accommodate the largest allowed video upload plus multipart framing.
	MaxBodyBytes int64
}

const defaultMaxBodyBytes int64 = 64 * 1024 * 1024

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/process", cfg.ProcessHandler.Process)
	r.Post("/generate", cfg.GenerateHandler.Generate)
	r.Post("/chat", cfg.ChatHandler.Chat)

	return r
}
