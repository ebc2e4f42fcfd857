package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clearstudy-ai/clearstudy/internal/api/handlers"
	"github.com/clearstudy-ai/clearstudy/internal/domain"
	"github.com/clearstudy-ai/clearstudy/internal/normalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNormalizeService struct {
	mock.Mock
}

func (m *MockNormalizeService) Normalize(ctx context.Context, req normalize.Request) (*domain.NormalizedInput, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NormalizedInput), args.Error(1)
}

type MockGenerateService struct {
	mock.Mock
}

func (m *MockGenerateService) Generate(ctx context.Context, input *domain.NormalizedInput, level domain.DetailLevel) (*domain.GeneratedNote, error) {
	args := m.Called(ctx, input, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedNote), args.Error(1)
}

type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Chat(ctx context.Context, noteText string, history []domain.ConversationTurn, question string) (string, error) {
	args := m.Called(ctx, noteText, history, question)
	return args.String(0), args.Error(1)
}

type testServices struct {
	normalizer *MockNormalizeService
	generator  *MockGenerateService
	chat       *MockChatService
}

func newTestRouter(cfg RouterConfig, svcs *testServices) http.Handler {
	cfg.ProcessHandler = handlers.NewProcessHandler(svcs.normalizer)
	cfg.GenerateHandler = handlers.NewGenerateHandler(svcs.generator, 200000)
	cfg.ChatHandler = handlers.NewChatHandler(svcs.chat)
	return NewRouter(cfg)
}

func newServices() *testServices {
	return &testServices{
		normalizer: &MockNormalizeService{},
		generator:  &MockGenerateService{},
		chat:       &MockChatService{},
	}
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(RouterConfig{}, newServices())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestRouter_ProcessRoute(t *testing.T) {
	svcs := newServices()
	svcs.normalizer.On("Normalize", mock.Anything, normalize.Request{
		Kind: domain.InputKindText,
		Text: "osmosis",
	}).Return(&domain.NormalizedInput{RawText: "osmosis", Kind: domain.InputKindText, SourceLength: 7}, nil)

	router := newTestRouter(RouterConfig{}, svcs)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("inputType", "text"))
	require.NoError(t, w.WriteField("pastedText", "osmosis"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/process", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp handlers.ProcessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "osmosis", resp.Text)
}

func TestRouter_GenerateRoute(t *testing.T) {
	svcs := newServices()
	svcs.generator.On("Generate", mock.Anything, mock.Anything, domain.DetailMedium).
		Return(&domain.GeneratedNote{Text: "notes", Kind: domain.InputKindText}, nil)

	router := newTestRouter(RouterConfig{}, svcs)

	req := httptest.NewRequest(http.MethodPost, "/generate",
		strings.NewReader(`{"text":"osmosis","inputType":"text"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"notes":"notes"`)
}

func TestRouter_ChatRoute(t *testing.T) {
	svcs := newServices()
	svcs.chat.On("Chat", mock.Anything, "n", mock.Anything, "q").Return("a", nil)

	router := newTestRouter(RouterConfig{}, svcs)

	req := httptest.NewRequest(http.MethodPost, "/chat",
		strings.NewReader(`{"notes":"n","question":"q"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"response":"a"`)
}

func TestRouter_BodyLimitReturns413(t *testing.T) {
	router := newTestRouter(RouterConfig{MaxBodyBytes: 64}, newServices())

	req := httptest.NewRequest(http.MethodPost, "/generate",
		strings.NewReader(`{"text":"`+strings.Repeat("a", 256)+`","inputType":"text"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	router := newTestRouter(RouterConfig{}, newServices())

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
