package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTimedtext = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="2.5">Mitochondria is the</text>
  <text start="2.5" dur="3.1">powerhouse &amp;amp; engine of the cell</text>
  <text start="5.6" dur="1.0"><font color="#fff">with markup</font></text>
</transcript>`

func TestParseTimedtext(t *testing.T) {
	text, err := parseTimedtext(sampleTimedtext)
	require.NoError(t, err)
	assert.Equal(t, "Mitochondria is the powerhouse & engine of the cell with markup", text)
}

func TestParseTimedtext_Invalid(t *testing.T) {
	_, err := parseTimedtext("<html>not captions</html>")
	assert.Error(t, err)
}

func TestCaptionScrapeStrategy(t *testing.T) {
	var trackHits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/watch":
			assert.Equal(t, "vid123", r.URL.Query().Get("v"))
			// captionTracks JSON is embedded in the page with escaped URLs.
			fmt.Fprintf(w, `<html>... "captionTracks":[{"baseUrl":"%s&lang=en","languageCode":"en"}] ...</html>`,
				strings.ReplaceAll(trackURLOf(r), "/", `\/`))
		case "/track":
			trackHits++
			fmt.Fprint(w, sampleTimedtext)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	s := NewCaptionScrapeStrategy(resty.New())
	s.watchBase = srv.URL

	text, err := s.Attempt(context.Background(), "vid123")
	require.NoError(t, err)
	assert.Contains(t, text, "powerhouse")
	assert.Equal(t, 1, trackHits)
}

// trackURLOf builds the caption-track URL pointing back at the test server.
func trackURLOf(r *http.Request) string {
	return "http://" + r.Host + "/track?fmt=srv1"
}

func TestCaptionScrapeStrategy_NoTracks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>no captions here</html>`)
	}))
	defer srv.Close()

	s := NewCaptionScrapeStrategy(resty.New())
	s.watchBase = srv.URL

	_, err := s.Attempt(context.Background(), "vid123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no caption tracks")
}

func TestTimedtextStrategy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/timedtext", r.URL.Path)
		assert.Equal(t, "en", r.URL.Query().Get("lang"))
		fmt.Fprint(w, sampleTimedtext)
	}))
	defer srv.Close()

	s := NewTimedtextStrategy(resty.New())
	s.watchBase = srv.URL

	text, err := s.Attempt(context.Background(), "vid123")
	require.NoError(t, err)
	assert.Greater(t, len(text), minCaptionChars)
}

func TestTimedtextStrategy_TooShort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<transcript><text start="0" dur="1">hi</text></transcript>`)
	}))
	defer srv.Close()

	s := NewTimedtextStrategy(resty.New())
	s.watchBase = srv.URL

	_, err := s.Attempt(context.Background(), "vid123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestMetadataStrategy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "snippet", r.URL.Query().Get("part"))
		assert.Equal(t, "vid123", r.URL.Query().Get("id"))
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		fmt.Fprint(w, `{"items":[{"snippet":{"title":"Cell Biology 101","description":"An introduction to organelles."}}]}`)
	}))
	defer srv.Close()

	s := NewMetadataStrategy(resty.New(), "secret")
	s.apiBase = srv.URL

	text, err := s.Attempt(context.Background(), "vid123")
	require.NoError(t, err)
	assert.Contains(t, text, "Video Title: Cell Biology 101")
	assert.Contains(t, text, "An introduction to organelles.")
	assert.Contains(t, text, "Full transcript could not be retrieved")
}

func TestMetadataStrategy_NoKey(t *testing.T) {
	s := NewMetadataStrategy(resty.New(), "")
	_, err := s.Attempt(context.Background(), "vid123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YOUTUBE_API_KEY")
}

func TestMetadataStrategy_NoItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer srv.Close()

	s := NewMetadataStrategy(resty.New(), "secret")
	s.apiBase = srv.URL

	_, err := s.Attempt(context.Background(), "vid123")
	assert.Error(t, err)
}

func TestMetadataStrategy_CapsDescription(t *testing.T) {
	longDesc := strings.Repeat("x", maxDescriptionChars+500)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"items":[{"snippet":{"title":"T","description":"%s"}}]}`, longDesc)
	}))
	defer srv.Close()

	s := NewMetadataStrategy(resty.New(), "secret")
	s.apiBase = srv.URL

	text, err := s.Attempt(context.Background(), "vid123")
	require.NoError(t, err)
	assert.Contains(t, text, strings.Repeat("x", maxDescriptionChars)+"...")
	assert.NotContains(t, text, strings.Repeat("x", maxDescriptionChars+1))
}

func TestWatchPageScrapeStrategy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head>
<meta property="og:title" content="Intro to Photosynthesis">
<meta property="og:description" content="Light reactions and the Calvin cycle explained.">
</head></html>`)
	}))
	defer srv.Close()

	s := NewWatchPageScrapeStrategy(resty.New())
	s.watchBase = srv.URL

	text, err := s.Attempt(context.Background(), "vid123")
	require.NoError(t, err)
	assert.Contains(t, text, "Video: Intro to Photosynthesis")
	assert.Contains(t, text, "Calvin cycle")
}

func TestWatchPageScrapeStrategy_TooShort(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><meta property="og:title" content="hi"></html>`)
	}))
	defer srv.Close()

	s := NewWatchPageScrapeStrategy(resty.New())
	s.watchBase = srv.URL

	_, err := s.Attempt(context.Background(), "vid123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}
