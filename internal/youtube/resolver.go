// Package youtube resolves the best available text representation of a
// YouTube video through an ordered chain of acquisition strategies.
package youtube

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/clearstudy-ai/clearstudy/internal/domain"
	"github.com/clearstudy-ai/clearstudy/internal/telemetry"
	"github.com/go-resty/resty/v2"
)

// Strategy is one transcript acquisition technique. Attempt returns the
// resolved text, or an error/empty string when the technique does not apply
// to this video. Strategies never see each other's failures.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, videoID string) (string, error)
}

// Resolver walks an ordered strategy list and short-circuits on the first
// non-empty result. Precise content is preferred, approximate content is
// accepted, and a note is only blocked when every technique fails.
type Resolver struct {
	strategies []Strategy
}

func NewResolver(strategies ...Strategy) *Resolver {
	return &Resolver{strategies: strategies}
}

// Config selects which strategies participate and with what credentials.
type Config struct {
	// APIKey is the YouTube Data API v3 key for the metadata fallback.
	APIKey string
	// AudioFallback enables the download-and-transcribe strategy. Off by
	// default: it needs subprocess and filesystem access.
	AudioFallback bool
	YtdlpPath     string
	Transcriber   MediaTranscriber
}

// NewDefaultResolver builds the production strategy chain. Adding, removing,
// or disabling a strategy is a configuration change here, not a code change
// in the resolver.
func NewDefaultResolver(cfg Config) *Resolver {
	httpClient := resty.New().
		SetTimeout(20 * time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; clearstudy/1.0)")

	strategies := []Strategy{
		NewCaptionScrapeStrategy(httpClient),
		NewTimedtextStrategy(httpClient),
	}
	if cfg.AudioFallback && cfg.Transcriber != nil {
		strategies = append(strategies, NewAudioTranscribeStrategy(cfg.YtdlpPath, cfg.Transcriber))
	}
	strategies = append(strategies,
		NewMetadataStrategy(httpClient, cfg.APIKey),
		NewWatchPageScrapeStrategy(httpClient),
	)
	return NewResolver(strategies...)
}

// Resolve extracts the video ID from url and runs the strategy chain.
// Returns domain.ErrTranscriptUnavailable only when every strategy has
// failed.
func (r *Resolver) Resolve(ctx context.Context, url string) (string, error) {
	videoID, ok := ExtractVideoID(url)
	if !ok {
		return "", domain.ErrInvalidYouTubeURL
	}

	for _, strategy := range r.strategies {
		spanCtx, span := telemetry.StartSpan(ctx, "transcript."+strategy.Name(), telemetry.SpanAttributes{
			Strategy: strategy.Name(),
		})
		text, err := strategy.Attempt(spanCtx, videoID)
		if err != nil {
			span.SetError(err)
			span.End()
			log.Printf("transcript strategy %s failed for %s: %v", strategy.Name(), videoID, err)
			telemetry.AddBreadcrumb(ctx, "transcript", strategy.Name()+" failed: "+err.Error())
			continue
		}
		span.End()
		if strings.TrimSpace(text) == "" {
			log.Printf("transcript strategy %s returned empty text for %s", strategy.Name(), videoID)
			continue
		}
		log.Printf("transcript resolved via %s (%d chars)", strategy.Name(), len(text))
		return text, nil
	}

	telemetry.CaptureError(ctx, domain.ErrTranscriptUnavailable)
	return "", domain.ErrTranscriptUnavailable
}
