// Package notes produces study notes from normalized input via chunked LLM
// generation, and answers follow-up questions grounded in those notes.
package notes

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/clearstudy-ai/clearstudy/internal/domain"
	"github.com/clearstudy-ai/clearstudy/internal/llm"
	"github.com/clearstudy-ai/clearstudy/internal/telemetry"
)

// genericRateLimitHint is used when the provider's 429 message carries no
// parseable wait figure.
const genericRateLimitHint = "usage limit reached, please wait 15-30 minutes for your quota to reset before trying again"

// Completer is the slice of the provider client the generator needs.
type Completer interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

// RetryConfig bounds the per-chunk rate-limit retry loop and the pacing
// between chunks.
type RetryConfig struct {
	MaxRetries      int
	InitialDelay    time.Duration
	InterChunkDelay time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialDelay:    5 * time.Second,
		InterChunkDelay: 2 * time.Second,
	}
}

// Generator runs the chunked note-generation pipeline. Chunks are processed
// strictly in order, one at a time; parallelism would burn through the
// provider's per-minute token budget and trip rate limits.
type Generator struct {
	llm    Completer
	chunks ChunkConfig
	retry  RetryConfig
	sleep  func(time.Duration)
}

func NewGenerator(completer Completer) *Generator {
	return &Generator{
		llm:    completer,
		chunks: DefaultChunkConfig(),
		retry:  DefaultRetryConfig(),
		sleep:  time.Sleep,
	}
}

// NewGeneratorWithConfig allows tests and tuned deployments to override
// chunking and retry pacing.
func NewGeneratorWithConfig(completer Completer, chunks ChunkConfig, retry RetryConfig) *Generator {
	g := NewGenerator(completer)
	g.chunks = chunks
	g.retry = retry
	return g
}

// Generate produces one note document for the input at the given detail
// level. Per-chunk outputs are joined with visible part delimiters so the
// reader can see the seam between source windows.
func (g *Generator) Generate(ctx context.Context, input *domain.NormalizedInput, level domain.DetailLevel) (*domain.GeneratedNote, error) {
	chunks := chunkText(input.RawText, g.chunks)
	if len(chunks) == 0 {
		return nil, domain.ErrEmptyContent
	}

	log.Printf("generating notes in %d chunks (%d chars, level=%s)", len(chunks), len(input.RawText), level)

	ctx, span := telemetry.StartSpan(ctx, "notes.generate", telemetry.SpanAttributes{
		InputKind:   string(input.Kind),
		DetailLevel: string(level),
		ChunkCount:  len(chunks),
	})
	defer span.End()

	maxTokens := 2048
	if level == domain.DetailDetailed {
		maxTokens = 6000
	}

	var combined strings.Builder
	hasContent := false
	for i, chunk := range chunks {
		part, total := i+1, len(chunks)

		chunkNotes, err := g.completeWithRetry(ctx, llm.CompletionRequest{
			Model:        llm.DefaultGenerationModel,
			SystemPrompt: systemPrompt(level, part, total),
			Messages: []domain.ConversationTurn{
				{Role: domain.RoleUser, Content: userPrompt(input.Kind, level, part, total, chunk)},
			},
			Temperature: 0.3,
			MaxTokens:   maxTokens,
		}, part)
		if err != nil {
			span.SetError(err)
			return nil, err
		}

		if strings.TrimSpace(chunkNotes) != "" {
			hasContent = true
		}
		fmt.Fprintf(&combined, "\n\n--- Part %d ---\n\n%s", part, chunkNotes)

		if part < total {
			g.sleep(g.retry.InterChunkDelay)
		}
	}

	// Delimiters alone are not notes. If every chunk came back blank the
	// generation failed even though the provider reported success.
	if !hasContent {
		span.SetError(domain.ErrEmptyGeneration)
		return nil, domain.ErrEmptyGeneration
	}
	return &domain.GeneratedNote{Text: combined.String(), Kind: input.Kind}, nil
}

// completeWithRetry issues one completion, retrying on provider rate limits
// with a doubling delay. Exhausting the retry budget converts the failure
// into a rate-limit error carrying a human-readable wait hint.
func (g *Generator) completeWithRetry(ctx context.Context, req llm.CompletionRequest, part int) (string, error) {
	delay := g.retry.InitialDelay

	for attempt := 0; ; attempt++ {
		text, err := g.llm.Complete(ctx, req)
		if err == nil {
			return text, nil
		}

		if !llm.IsRateLimit(err) {
			return "", domain.NewUpstreamError("note generation failed", err)
		}

		if attempt >= g.retry.MaxRetries {
			hint := llm.RetryAfterHint(err)
			if hint == "" {
				hint = genericRateLimitHint
			}
			return "", domain.NewRateLimitError(hint, err)
		}

		log.Printf("rate limit hit on chunk %d, retrying in %s", part, delay)
		g.sleep(delay)
		delay *= 2
	}
}
