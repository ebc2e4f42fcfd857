// Package transcribe converts uploaded audio/video into plain-text transcripts
// through an external speech model.
package transcribe

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/clearstudy-ai/clearstudy/internal/domain"
	"github.com/clearstudy-ai/clearstudy/internal/extract"
)

// SpeechAPI is the speech-to-text surface of the provider client.
type SpeechAPI interface {
	Transcribe(ctx context.Context, filePath string) (string, error)
}

// directFormats are containers the speech model accepts without prior audio
// extraction.
var directFormats = map[string]bool{
	"mp3":  true,
	"mp4":  true,
	"mpeg": true,
	"mpga": true,
	"m4a":  true,
	"wav":  true,
	"webm": true,
	"ogg":  true,
	"flac": true,
}

// Transcriber produces transcripts from media files.
type Transcriber struct {
	speech     SpeechAPI
	ffmpegPath string
}

// NewTranscriber creates a Transcriber. ffmpegPath is the binary used for
// container-to-audio extraction when a format cannot be submitted directly.
func NewTranscriber(speech SpeechAPI, ffmpegPath string) *Transcriber {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Transcriber{speech: speech, ffmpegPath: ffmpegPath}
}

// Transcribe converts the media file at path into text. originalName carries
// the client's declared filename; its extension decides between direct
// submission and ffmpeg extraction.
//
// An empty transcript from the model becomes domain.ErrEmptyTranscript ("no
// speech detected"), distinct from transport failures which surface as
// upstream errors.
func (t *Transcriber) Transcribe(ctx context.Context, path, originalName string) (string, error) {
	name := originalName
	if name == "" {
		name = path
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")

	submitPath := path
	if !directFormats[ext] {
		audioPath, err := t.extractAudio(ctx, path)
		if err != nil {
			return "", err
		}
		defer extract.CleanupTemp(audioPath)
		submitPath = audioPath
	}

	text, err := t.speech.Transcribe(ctx, submitPath)
	if err != nil {
		return "", domain.NewUpstreamError("failed to transcribe media", err)
	}

	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyTranscript.WithDetails(
			fmt.Sprintf("the speech model returned no text for %q; the media may not contain speech", name))
	}
	return text, nil
}
