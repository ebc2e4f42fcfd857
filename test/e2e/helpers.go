//go:build e2e

package e2e

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/clearstudy-ai/clearstudy/internal/api/handlers"
	"github.com/clearstudy-ai/clearstudy/internal/extract"
	"github.com/clearstudy-ai/clearstudy/internal/llm"
	"github.com/clearstudy-ai/clearstudy/internal/normalize"
	"github.com/clearstudy-ai/clearstudy/internal/notes"
	"github.com/clearstudy-ai/clearstudy/internal/server"
)

// FakeProvider is an in-process stand-in for the Groq OpenAI-compatible
// API. Each chat completion echoes a canned reply; tests can script
// rate-limit responses per call index.
type FakeProvider struct {
	mu sync.Mutex

	// Reply is returned for every successful completion.
	Reply string
	// RateLimitFirst makes the first N calls return HTTP 429.
	RateLimitFirst int
	// RateLimitMessage rides in the 429 error body.
	RateLimitMessage string

	Calls int
}

func (f *FakeProvider) handler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	call := f.Calls
	f.Calls++
	limited := call < f.RateLimitFirst
	f.mu.Unlock()

	if r.URL.Path != "/chat/completions" {
		http.NotFound(w, r)
		return
	}

	if limited {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		msg := f.RateLimitMessage
		if msg == "" {
			msg = "Rate limit reached"
		}
		fmt.Fprintf(w, `{"error":{"message":%q,"type":"tokens","code":"rate_limit_exceeded"}}`, msg)
		return
	}

	var req struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	w.Header().Set("Content-Type", "application/json")
	resp := map[string]any{
		"id":    "chatcmpl-fake",
		"model": "fake",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]string{"role": "assistant", "content": f.Reply}},
		},
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// E2EEnv is a full in-process stack: real router, handlers, services, and
// provider client, with only the provider HTTP endpoint faked.
type E2EEnv struct {
	T        *testing.T
	Server   *httptest.Server
	Provider *FakeProvider

	providerSrv *httptest.Server
}

// EnvConfig tunes the stack under test.
type EnvConfig struct {
	MaxInputChars int
	Chunks        notes.ChunkConfig
	Retry         notes.RetryConfig
}

func SetupE2EEnv(t *testing.T, cfg EnvConfig) *E2EEnv {
	t.Helper()

	provider := &FakeProvider{Reply: "- generated note line"}
	providerSrv := httptest.NewServer(http.HandlerFunc(provider.handler))

	client := llm.NewClient(llm.Config{APIKey: "test-key", BaseURL: providerSrv.URL})

	if cfg.MaxInputChars == 0 {
		cfg.MaxInputChars = 200000
	}
	if cfg.Chunks.Size == 0 {
		cfg.Chunks = notes.DefaultChunkConfig()
	}
	if cfg.Retry.MaxRetries == 0 {
		// Keep retries on but make the waits negligible.
		cfg.Retry = notes.RetryConfig{MaxRetries: 3, InitialDelay: time.Millisecond, InterChunkDelay: 0}
	}

	generator := notes.NewGeneratorWithConfig(client, cfg.Chunks, cfg.Retry)
	chatEngine := notes.NewChatEngine(client)

	normalizer := normalize.NewNormalizer(extract.NewExtractor(), nil, nil, normalize.Limits{
		MaxDocumentBytes: 10 * 1024 * 1024,
		MaxVideoBytes:    50 * 1024 * 1024,
	})

	router := server.NewRouter(server.RouterConfig{
		ProcessHandler:  handlers.NewProcessHandler(normalizer),
		GenerateHandler: handlers.NewGenerateHandler(generator, cfg.MaxInputChars),
		ChatHandler:     handlers.NewChatHandler(chatEngine),
	})

	srv := httptest.NewServer(router)

	return &E2EEnv{
		T:           t,
		Server:      srv,
		Provider:    provider,
		providerSrv: providerSrv,
	}
}

func (e *E2EEnv) Cleanup() {
	e.Server.Close()
	e.providerSrv.Close()
}

// PostJSON posts a JSON payload and returns the raw response.
func (e *E2EEnv) PostJSON(path string, payload any) (*http.Response, []byte) {
	e.T.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		e.T.Fatalf("marshal payload: %v", err)
	}

	resp, err := http.Post(e.Server.URL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		e.T.Fatalf("post %s: %v", path, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		e.T.Fatalf("read response: %v", err)
	}
	return resp, buf.Bytes()
}

// PostMultipart posts a multipart form with string fields and an optional
// file part.
func (e *E2EEnv) PostMultipart(path string, fields map[string]string, fileField, fileName string, fileContent []byte) (*http.Response, []byte) {
	e.T.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			e.T.Fatalf("write field: %v", err)
		}
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, fileName)
		if err != nil {
			e.T.Fatalf("create file part: %v", err)
		}
		if _, err := part.Write(fileContent); err != nil {
			e.T.Fatalf("write file part: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		e.T.Fatalf("close form: %v", err)
	}

	resp, err := http.Post(e.Server.URL+path, w.FormDataContentType(), &buf)
	if err != nil {
		e.T.Fatalf("post %s: %v", path, err)
	}
	defer resp.Body.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(resp.Body); err != nil {
		e.T.Fatalf("read response: %v", err)
	}
	return resp, out.Bytes()
}

// minimalDocx builds the smallest zip that the DOCX extractor accepts.
func minimalDocx(t *testing.T, text string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := f.Write([]byte(`<?xml version="1.0"?><w:document><w:body><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:body></w:document>`)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
