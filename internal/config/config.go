package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	// Groq serves both chat completions and Whisper transcription through
	// an OpenAI-compatible API. A missing key fails at first use, not at
	// startup, so unrelated routes keep working.
	GroqAPIKey  string `envconfig:"GROQ_API_KEY"`
	GroqBaseURL string `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`

	// YouTube Data API v3 key, used only by the metadata fallback strategy.
	YouTubeAPIKey string `envconfig:"YOUTUBE_API_KEY"`

	// AudioFallback enables the download-and-transcribe transcript strategy.
	// It requires filesystem and subprocess access, so it is off by default
	// for restricted deployments.
	AudioFallback bool   `envconfig:"AUDIO_FALLBACK" default:"false"`
	FFmpegPath    string `envconfig:"FFMPEG_PATH" default:"ffmpeg"`
	YtdlpPath     string `envconfig:"YTDLP_PATH" default:"yt-dlp"`

	MaxDocumentMB int `envconfig:"MAX_DOCUMENT_MB" default:"10"`
	MaxVideoMB    int `envconfig:"MAX_VIDEO_MB" default:"50"`
	MaxInputChars int `envconfig:"MAX_INPUT_CHARS" default:"200000"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("CLEARSTUDY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasGroq() bool {
	return c.GroqAPIKey != ""
}

func (c *Config) HasYouTubeAPI() bool {
	return c.YouTubeAPIKey != ""
}

// MaxDocumentBytes is the byte ceiling for document uploads (PDF/DOCX/PPTX).
func (c *Config) MaxDocumentBytes() int64 {
	return int64(c.MaxDocumentMB) * 1024 * 1024
}

// MaxVideoBytes is the byte ceiling for video uploads.
func (c *Config) MaxVideoBytes() int64 {
	return int64(c.MaxVideoMB) * 1024 * 1024
}
