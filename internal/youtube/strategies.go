package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/clearstudy-ai/clearstudy/internal/domain"
	"github.com/clearstudy-ai/clearstudy/internal/extract"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const (
	defaultWatchBase = "https://www.youtube.com"
	defaultDataAPI   = "https://www.googleapis.com/youtube/v3"

	// minCaptionChars is the acceptance threshold for caption-based strategies.
	minCaptionChars = 50
	// minScrapeChars is the more lenient threshold for the last-resort raw
	// page scrape.
	minScrapeChars = 20

	// maxDescriptionChars caps the video description carried into metadata
	// fallbacks so a huge description does not blow the token budget.
	maxDescriptionChars = 5000
)

// metadataDisclaimer is prepended to metadata-only fallbacks so the reader
// knows the notes were not built from a real transcript.
const metadataDisclaimer = "[Note: Full transcript could not be retrieved. Notes are generated based on the video title and description.]"

var (
	captionTracksRe = regexp.MustCompile(`"captionTracks":\s*\[`)
	baseURLRe       = regexp.MustCompile(`"baseUrl"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	markupRe        = regexp.MustCompile(`<[^>]+>`)
	ogTitleRe       = regexp.MustCompile(`<meta property="og:title" content="([^"]*)"`)
	ogDescriptionRe = regexp.MustCompile(`<meta property="og:description" content="([^"]*)"`)
)

// timedtextDoc matches YouTube's caption payload format.
type timedtextDoc struct {
	XMLName xml.Name `xml:"transcript"`
	Cues    []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

func parseTimedtext(payload string) (string, error) {
	var doc timedtextDoc
	if err := xml.Unmarshal([]byte(payload), &doc); err != nil {
		return "", fmt.Errorf("parse timedtext: %w", err)
	}

	parts := make([]string, 0, len(doc.Cues))
	for _, cue := range doc.Cues {
		// Cue text arrives entity-escaped and may carry inline markup.
		text := html.UnescapeString(cue.Value)
		text = markupRe.ReplaceAllString(text, "")
		text = strings.TrimSpace(text)
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

// CaptionScrapeStrategy scrapes the watch page for its caption-track list and
// downloads the first track. This is the most reliable technique that does
// not require an API key or downloading media.
type CaptionScrapeStrategy struct {
	http      *resty.Client
	watchBase string
}

func NewCaptionScrapeStrategy(http *resty.Client) *CaptionScrapeStrategy {
	return &CaptionScrapeStrategy{http: http, watchBase: defaultWatchBase}
}

func (s *CaptionScrapeStrategy) Name() string { return "caption_scrape" }

func (s *CaptionScrapeStrategy) Attempt(ctx context.Context, videoID string) (string, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("v", videoID).
		Get(s.watchBase + "/watch")
	if err != nil {
		return "", fmt.Errorf("fetch watch page: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("watch page returned status %d", resp.StatusCode())
	}

	body := resp.String()
	loc := captionTracksRe.FindStringIndex(body)
	if loc == nil {
		return "", fmt.Errorf("no caption tracks on watch page")
	}

	match := baseURLRe.FindStringSubmatch(body[loc[1]:])
	if len(match) < 2 {
		return "", fmt.Errorf("caption track list has no baseUrl")
	}
	trackURL := strings.NewReplacer("\\u0026", "&", "\\/", "/").Replace(match[1])

	trackResp, err := s.http.R().SetContext(ctx).Get(trackURL)
	if err != nil {
		return "", fmt.Errorf("fetch caption track: %w", err)
	}
	if trackResp.IsError() {
		return "", fmt.Errorf("caption track returned status %d", trackResp.StatusCode())
	}

	return parseTimedtext(trackResp.String())
}

// TimedtextStrategy hits the legacy timedtext endpoint directly. It only
// works for videos with a manually published English track, which is why it
// sits behind the scrape strategy.
type TimedtextStrategy struct {
	http      *resty.Client
	watchBase string
}

func NewTimedtextStrategy(http *resty.Client) *TimedtextStrategy {
	return &TimedtextStrategy{http: http, watchBase: defaultWatchBase}
}

func (s *TimedtextStrategy) Name() string { return "timedtext" }

func (s *TimedtextStrategy) Attempt(ctx context.Context, videoID string) (string, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"lang": "en", "v": videoID}).
		Get(s.watchBase + "/api/timedtext")
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("timedtext returned status %d", resp.StatusCode())
	}

	text, err := parseTimedtext(resp.String())
	if err != nil {
		return "", err
	}
	if len(text) <= minCaptionChars {
		return "", fmt.Errorf("timedtext payload too short (%d chars)", len(text))
	}
	return text, nil
}

// MediaTranscriber is the slice of the transcription pipeline the audio
// fallback needs.
type MediaTranscriber interface {
	Transcribe(ctx context.Context, path, originalName string) (string, error)
}

// AudioTranscribeStrategy downloads the audio track with yt-dlp and runs it
// through speech-to-text. It needs filesystem and subprocess access, so
// deployments without those disable it via configuration and the resolver
// skips straight to the metadata fallbacks.
type AudioTranscribeStrategy struct {
	ytdlpPath   string
	watchBase   string
	transcriber MediaTranscriber
}

func NewAudioTranscribeStrategy(ytdlpPath string, transcriber MediaTranscriber) *AudioTranscribeStrategy {
	if ytdlpPath == "" {
		ytdlpPath = "yt-dlp"
	}
	return &AudioTranscribeStrategy{ytdlpPath: ytdlpPath, watchBase: defaultWatchBase, transcriber: transcriber}
}

func (s *AudioTranscribeStrategy) Name() string { return "audio_transcribe" }

func (s *AudioTranscribeStrategy) Attempt(ctx context.Context, videoID string) (string, error) {
	if _, err := exec.LookPath(s.ytdlpPath); err != nil {
		return "", domain.ErrYtdlpMissing.WithDetails("audio download fallback requires the yt-dlp binary")
	}

	audioPath := filepath.Join(os.TempDir(), fmt.Sprintf("yt-audio-%s.mp3", uuid.NewString()))
	defer extract.CleanupTemp(audioPath)

	cmd := exec.CommandContext(ctx, s.ytdlpPath,
		"-x",
		"--audio-format", "mp3",
		"-o", audioPath,
		s.watchBase+"/watch?v="+videoID,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	return s.transcriber.Transcribe(ctx, audioPath, "audio.mp3")
}

// dataAPIResponse is the subset of the Data API videos.list response we read.
type dataAPIResponse struct {
	Items []struct {
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"snippet"`
	} `json:"items"`
}

// MetadataStrategy fetches title + description through the YouTube Data API
// and synthesizes a disclaimer-prefixed text block. Approximate content, but
// reliable with a valid key.
type MetadataStrategy struct {
	http    *resty.Client
	apiBase string
	apiKey  string
}

func NewMetadataStrategy(http *resty.Client, apiKey string) *MetadataStrategy {
	return &MetadataStrategy{http: http, apiBase: defaultDataAPI, apiKey: apiKey}
}

func (s *MetadataStrategy) Name() string { return "data_api_metadata" }

func (s *MetadataStrategy) Attempt(ctx context.Context, videoID string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("YOUTUBE_API_KEY is not set")
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"part": "snippet",
			"id":   videoID,
			"key":  s.apiKey,
		}).
		Get(s.apiBase + "/videos")
	if err != nil {
		return "", fmt.Errorf("fetch video metadata: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("data api returned status %d", resp.StatusCode())
	}

	var data dataAPIResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return "", fmt.Errorf("parse data api response: %w", err)
	}
	if len(data.Items) == 0 {
		return "", fmt.Errorf("no video found for id %s", videoID)
	}

	snippet := data.Items[0].Snippet
	var b strings.Builder
	fmt.Fprintf(&b, "Video Title: %s\n\n", snippet.Title)
	if snippet.Description != "" {
		desc := snippet.Description
		if len(desc) > maxDescriptionChars {
			desc = desc[:maxDescriptionChars] + "..."
		}
		fmt.Fprintf(&b, "Video Description:\n%s\n\n", desc)
	}
	b.WriteString(metadataDisclaimer)

	text := b.String()
	if len(text) <= minCaptionChars {
		return "", fmt.Errorf("metadata too short (%d chars)", len(text))
	}
	return text, nil
}

// WatchPageScrapeStrategy reads og:title/og:description straight off the
// watch page HTML. Last resort with a deliberately lenient threshold.
type WatchPageScrapeStrategy struct {
	http      *resty.Client
	watchBase string
}

func NewWatchPageScrapeStrategy(http *resty.Client) *WatchPageScrapeStrategy {
	return &WatchPageScrapeStrategy{http: http, watchBase: defaultWatchBase}
}

func (s *WatchPageScrapeStrategy) Name() string { return "watch_page_scrape" }

func (s *WatchPageScrapeStrategy) Attempt(ctx context.Context, videoID string) (string, error) {
	resp, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("v", videoID).
		Get(s.watchBase + "/watch")
	if err != nil {
		return "", fmt.Errorf("fetch watch page: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("watch page returned status %d", resp.StatusCode())
	}

	body := resp.String()
	var b strings.Builder
	if match := ogTitleRe.FindStringSubmatch(body); len(match) > 1 {
		fmt.Fprintf(&b, "Video: %s\n\n", html.UnescapeString(match[1]))
	}
	if match := ogDescriptionRe.FindStringSubmatch(body); len(match) > 1 {
		desc := html.UnescapeString(match[1])
		if len(desc) > maxDescriptionChars {
			desc = desc[:maxDescriptionChars]
		}
		b.WriteString(desc)
	}

	text := strings.TrimSpace(b.String())
	if len(text) <= minScrapeChars {
		return "", fmt.Errorf("scraped metadata too short (%d chars)", len(text))
	}
	return text + "\n\n" + metadataDisclaimer, nil
}
