package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

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

// multipartBody builds a multipart form with string fields and an optional
// file part.
func multipartBody(t *testing.T, fields map[string]string, fileField, fileName string, fileContent []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestProcess_Text(t *testing.T) {
	svc := &MockNormalizeService{}
	svc.On("Normalize", mock.Anything, normalize.Request{
		Kind: domain.InputKindText,
		Text: "photosynthesis notes",
	}).Return(&domain.NormalizedInput{
		RawText:      "photosynthesis notes",
		Kind:         domain.InputKindText,
		SourceLength: 20,
	}, nil)

	body, contentType := multipartBody(t, map[string]string{
		"inputType":  "text",
		"pastedText": "photosynthesis notes",
	}, "", "", nil)

	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	NewProcessHandler(svc).Process(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ProcessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "photosynthesis notes", resp.Text)
	assert.Equal(t, "text", resp.InputType)
	assert.Equal(t, 20, resp.TextLength)
	svc.AssertExpectations(t)
}

func TestProcess_PDFUpload(t *testing.T) {
	content := []byte("%PDF-1.4 fake")
	svc := &MockNormalizeService{}
	svc.On("Normalize", mock.Anything, normalize.Request{
		Kind:        domain.InputKindPDF,
		FileName:    "lecture.pdf",
		FileContent: content,
	}).Return(&domain.NormalizedInput{RawText: "extracted", Kind: domain.InputKindPDF, SourceLength: 9}, nil)

	body, contentType := multipartBody(t, map[string]string{"inputType": "pdf"}, "pdfFile", "lecture.pdf", content)

	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	NewProcessHandler(svc).Process(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestProcess_MissingInputType(t *testing.T) {
	svc := &MockNormalizeService{}
	svc.On("Normalize", mock.Anything, normalize.Request{}).Return(nil, domain.ErrMissingInputType)

	body, contentType := multipartBody(t, map[string]string{}, "", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	NewProcessHandler(svc).Process(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "input type is required")
}

func TestProcess_NotMultipart(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/process", bytes.NewBufferString(`{"inputType":"text"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	NewProcessHandler(&MockNormalizeService{}).Process(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid multipart form")
}

func TestProcess_DependencyMissingIs501(t *testing.T) {
	svc := &MockNormalizeService{}
	svc.On("Normalize", mock.Anything, mock.Anything).Return(nil, domain.ErrFFmpegMissing)

	body, contentType := multipartBody(t, map[string]string{"inputType": "video"}, "videoFile", "clip.mp4", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	NewProcessHandler(svc).Process(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Contains(t, rec.Body.String(), "ffmpeg")
}

func TestProcess_TranscriptUnavailableIs400(t *testing.T) {
	svc := &MockNormalizeService{}
	svc.On("Normalize", mock.Anything, mock.Anything).Return(nil, domain.ErrTranscriptUnavailable)

	body, contentType := multipartBody(t, map[string]string{
		"inputType":  "youtube",
		"youtubeUrl": "https://youtu.be/dQw4w9WgXcQ",
	}, "", "", nil)
	req := httptest.NewRequest(http.MethodPost, "/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	NewProcessHandler(svc).Process(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
