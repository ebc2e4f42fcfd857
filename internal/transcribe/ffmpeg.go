package transcribe

import (
	"context"
	"os/exec"
	"strings"

	"github.com/clearstudy-ai/clearstudy/internal/domain"
)

// extractAudio strips the audio track of a video container into an mp3 temp
// file tuned for speech (16kHz mono, 64kbps). The caller owns the returned
// path and must clean it up.
func (t *Transcriber) extractAudio(ctx context.Context, videoPath string) (string, error) {
	if _, err := exec.LookPath(t.ffmpegPath); err != nil {
		return "", domain.ErrFFmpegMissing.WithDetails(
			"video processing requires the ffmpeg binary; install it or upload a directly supported audio format")
	}

	audioPath := strings.TrimSuffix(videoPath, extOf(videoPath)) + ".mp3"

	cmd := exec.CommandContext(ctx, t.ffmpegPath,
		"-i", videoPath,
		"-vn",
		"-acodec", "libmp3lame",
		"-ar", "16000",
		"-ac", "1",
		"-b:a", "64k",
		audioPath,
		"-y",
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", domain.NewUpstreamError("failed to extract audio from video", err).
			WithDetails(strings.TrimSpace(string(out)))
	}
	return audioPath, nil
}

func extOf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 && !strings.ContainsRune(path[i:], '/') {
		return path[i:]
	}
	return ""
}
