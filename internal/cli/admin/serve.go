package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clearstudy-ai/clearstudy/internal/api/handlers"
	"github.com/clearstudy-ai/clearstudy/internal/config"
	"github.com/clearstudy-ai/clearstudy/internal/extract"
	"github.com/clearstudy-ai/clearstudy/internal/llm"
	"github.com/clearstudy-ai/clearstudy/internal/normalize"
	"github.com/clearstudy-ai/clearstudy/internal/notes"
	"github.com/clearstudy-ai/clearstudy/internal/server"
	"github.com/clearstudy-ai/clearstudy/internal/telemetry"
	"github.com/clearstudy-ai/clearstudy/internal/transcribe"
	"github.com/clearstudy-ai/clearstudy/internal/youtube"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the clearstudy API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	if !cfg.HasGroq() {
		log.Println("warning: GROQ_API_KEY not set, generation and transcription will fail")
	}

	llmClient := llm.NewClient(llm.Config{
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.GroqBaseURL,
	})

	transcriber := transcribe.NewTranscriber(llmClient, cfg.FFmpegPath)
	resolver := youtube.NewDefaultResolver(youtube.Config{
		APIKey:        cfg.YouTubeAPIKey,
		AudioFallback: cfg.AudioFallback,
		YtdlpPath:     cfg.YtdlpPath,
		Transcriber:   transcriber,
	})

	normalizer := normalize.NewNormalizer(extract.NewExtractor(), resolver, transcriber, normalize.Limits{
		MaxDocumentBytes: cfg.MaxDocumentBytes(),
		MaxVideoBytes:    cfg.MaxVideoBytes(),
	})

	generator := notes.NewGenerator(llmClient)
	chatEngine := notes.NewChatEngine(llmClient)

	router := server.NewRouter(server.RouterConfig{
		ProcessHandler:  handlers.NewProcessHandler(normalizer),
		GenerateHandler: handlers.NewGenerateHandler(generator, cfg.MaxInputChars),
		ChatHandler:     handlers.NewChatHandler(chatEngine),
		// Leave headroom above the video ceiling for multipart framing.
		MaxBodyBytes: cfg.MaxVideoBytes() + 1024*1024,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}
