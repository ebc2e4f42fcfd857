package transcribe

import (
	"context"
	"errors"
	"testing"

	"github.com/clearstudy-ai/clearstudy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSpeechAPI struct {
	mock.Mock
}

func (m *MockSpeechAPI) Transcribe(ctx context.Context, filePath string) (string, error) {
	args := m.Called(ctx, filePath)
	return args.String(0), args.Error(1)
}

func TestTranscribe_DirectFormat(t *testing.T) {
	speech := new(MockSpeechAPI)
	tr := NewTranscriber(speech, "ffmpeg")

	ctx := context.Background()
	speech.On("Transcribe", ctx, "/tmp/upload.mp4").Return("lecture transcript", nil)

	text, err := tr.Transcribe(ctx, "/tmp/upload.mp4", "lecture.mp4")
	require.NoError(t, err)
	assert.Equal(t, "lecture transcript", text)
	speech.AssertExpectations(t)
}

func TestTranscribe_ExtensionFromOriginalName(t *testing.T) {
	speech := new(MockSpeechAPI)
	tr := NewTranscriber(speech, "ffmpeg")

	// Temp path has no meaningful extension; the declared filename decides.
	ctx := context.Background()
	speech.On("Transcribe", ctx, "/tmp/upload-abc123").Return("ok", nil)

	text, err := tr.Transcribe(ctx, "/tmp/upload-abc123", "talk.webm")
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
}

func TestTranscribe_EmptyTranscript(t *testing.T) {
	speech := new(MockSpeechAPI)
	tr := NewTranscriber(speech, "ffmpeg")

	speech.On("Transcribe", mock.Anything, mock.Anything).Return("  \n ", nil)

	_, err := tr.Transcribe(context.Background(), "/tmp/silent.wav", "silent.wav")
	assert.ErrorIs(t, err, domain.ErrEmptyTranscript)
}

func TestTranscribe_TransportFailure(t *testing.T) {
	speech := new(MockSpeechAPI)
	tr := NewTranscriber(speech, "ffmpeg")

	speech.On("Transcribe", mock.Anything, mock.Anything).Return("", errors.New("connection reset"))

	_, err := tr.Transcribe(context.Background(), "/tmp/talk.mp3", "talk.mp3")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.NotErrorIs(t, err, domain.ErrEmptyTranscript)
}

func TestTranscribe_UnsupportedFormatNeedsFFmpeg(t *testing.T) {
	speech := new(MockSpeechAPI)
	// A binary name that cannot exist on PATH forces the missing-dependency path.
	tr := NewTranscriber(speech, "ffmpeg-definitely-not-installed")

	_, err := tr.Transcribe(context.Background(), "/tmp/movie.avi", "movie.avi")
	require.Error(t, err)

	var pipeErr *domain.PipelineError
	require.ErrorAs(t, err, &pipeErr)
	assert.Equal(t, domain.ErrCodeDependencyMissing, pipeErr.Code)
	assert.Contains(t, pipeErr.Message, "ffmpeg")
	speech.AssertNotCalled(t, "Transcribe")
}

func TestExtOf(t *testing.T) {
	assert.Equal(t, ".avi", extOf("/tmp/movie.avi"))
	assert.Equal(t, "", extOf("/tmp.dir/noext"))
	assert.Equal(t, "", extOf("plain"))
}
