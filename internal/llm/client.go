// Package llm wraps the Groq OpenAI-compatible API for chat completion and
// speech transcription.
package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/clearstudy-ai/clearstudy/internal/domain"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultBaseURL is the Groq OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultGenerationModel is used for chunked note generation.
	DefaultGenerationModel = "llama-3.3-70b-versatile"
	// DefaultChatModel is used for follow-up Q&A over generated notes.
	DefaultChatModel = "llama-3.1-8b-instant"
	// DefaultTranscriptionModel is Groq's hosted Whisper model.
	DefaultTranscriptionModel = "whisper-large-v3"
)

// ErrNoAPIKey is returned at first use when no provider key is configured.
// Construction never fails on a missing key so unrelated routes keep working.
var ErrNoAPIKey = errors.New("GROQ_API_KEY environment variable not set")

// ChatAPI defines the chat-completion surface used by the pipeline.
type ChatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// AudioAPI defines the transcription surface used by the pipeline.
type AudioAPI interface {
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
}

// Client wraps the provider API client. The handle is stateless after
// construction and safe to share across requests.
type Client struct {
	chat   ChatAPI
	audio  AudioAPI
	apiKey string
}

type Config struct {
	APIKey  string
	BaseURL string
}

// NewClient creates a provider client. A missing API key is not an error
// here; it is reported on first use.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = baseURL
	api := openai.NewClientWithConfig(apiCfg)

	return &Client{chat: api, audio: api, apiKey: cfg.APIKey}
}

// NewClientWithAPIs creates a client over explicit API implementations.
// Used by tests to substitute doubles.
func NewClientWithAPIs(chat ChatAPI, audio AudioAPI) *Client {
	return &Client{chat: chat, audio: audio, apiKey: "test"}
}

// CompletionRequest is a single bounded-output generation call.
type CompletionRequest struct {
	Model        string
	SystemPrompt string
	Messages     []domain.ConversationTurn
	Temperature  float32
	MaxTokens    int
}

// Complete issues one chat-completion call and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	for _, turn := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	model := req.Model
	if model == "" {
		model = DefaultGenerationModel
	}

	resp, err := c.chat.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// Transcribe submits a media file to the speech model and returns plain text.
func (c *Client) Transcribe(ctx context.Context, filePath string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	resp, err := c.audio.CreateTranscription(ctx, openai.AudioRequest{
		Model:    DefaultTranscriptionModel,
		FilePath: filePath,
		Language: "en",
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", fmt.Errorf("transcription: %w", err)
	}
	return resp.Text, nil
}

// IsRateLimit reports whether err is an HTTP 429 from the provider.
func IsRateLimit(err error) bool {
	var apiErr *openai.APIError
	return errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429
}

var waitTimeRe = regexp.MustCompile(`try again in (\d+(?:\.\d+)?)s`)

// RetryAfterHint parses "try again in Ns" out of a provider rate-limit error
// and turns it into a human-readable wait estimate. Returns "" when the
// provider message carries no usable figure.
func RetryAfterHint(err error) string {
	if err == nil {
		return ""
	}

	match := waitTimeRe.FindStringSubmatch(err.Error())
	if len(match) < 2 {
		return ""
	}

	seconds, parseErr := strconv.ParseFloat(match[1], 64)
	if parseErr != nil {
		return ""
	}

	if seconds > 60 {
		minutes := int(math.Ceil(seconds / 60))
		return fmt.Sprintf("rate limit reached, please wait approximately %d minutes before trying again", minutes)
	}
	return fmt.Sprintf("rate limit reached, please wait %d seconds before trying again", int(math.Ceil(seconds)))
}
