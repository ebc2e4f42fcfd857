// Package normalize turns raw study material of any supported kind into a
// single validated text payload ready for note generation.
package normalize

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/clearstudy-ai/clearstudy/internal/domain"
	"github.com/clearstudy-ai/clearstudy/internal/extract"
)

// FileExtractor extracts plain text from an uploaded document.
type FileExtractor interface {
	ExtractBytes(content []byte, ext string) (string, error)
}

// TranscriptResolver resolves a YouTube URL to transcript text.
type TranscriptResolver interface {
	Resolve(ctx context.Context, url string) (string, error)
}

// MediaTranscriber turns an uploaded media file into transcript text.
type MediaTranscriber interface {
	Transcribe(ctx context.Context, path, originalName string) (string, error)
}

// Request carries one input of exactly one kind. FileName and FileContent
// are set for document and video kinds, YouTubeURL for youtube, Text for
// text.
type Request struct {
	Kind        domain.InputKind
	FileName    string
	FileContent []byte
	YouTubeURL  string
	Text        string
}

// Limits are the byte ceilings applied before any expensive work happens.
type Limits struct {
	MaxDocumentBytes int64
	MaxVideoBytes    int64
}

var documentExts = map[domain.InputKind][]string{
	domain.InputKindPDF:  {".pdf"},
	domain.InputKindDOCX: {".docx", ".doc"},
	domain.InputKindPPTX: {".pptx", ".ppt"},
}

var videoExts = []string{".mp4", ".webm", ".ogg", ".mov", ".avi"}

// Normalizer validates and routes each input kind to its extraction
// backend, returning content that satisfies the non-empty invariant.
type Normalizer struct {
	extractor   FileExtractor
	resolver    TranscriptResolver
	transcriber MediaTranscriber
	limits      Limits
}

func NewNormalizer(extractor FileExtractor, resolver TranscriptResolver, transcriber MediaTranscriber, limits Limits) *Normalizer {
	return &Normalizer{
		extractor:   extractor,
		resolver:    resolver,
		transcriber: transcriber,
		limits:      limits,
	}
}

// Normalize validates the request and produces the extracted text. All
// failure modes surface as *domain.PipelineError so callers can map them
// to HTTP statuses without inspecting message strings.
func (n *Normalizer) Normalize(ctx context.Context, req Request) (*domain.NormalizedInput, error) {
	if req.Kind == "" {
		return nil, domain.ErrMissingInputType
	}
	if !req.Kind.IsValid() {
		return nil, domain.ErrUnknownInputType.WithDetails(string(req.Kind))
	}

	var (
		text string
		err  error
	)
	switch req.Kind {
	case domain.InputKindText:
		text = req.Text
	case domain.InputKindYouTube:
		text, err = n.normalizeYouTube(ctx, req)
	case domain.InputKindVideo:
		text, err = n.normalizeVideo(ctx, req)
	default:
		text, err = n.normalizeDocument(req)
	}
	if err != nil {
		return nil, err
	}

	return domain.NewNormalizedInput(text, req.Kind)
}

func (n *Normalizer) normalizeYouTube(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.YouTubeURL) == "" {
		return "", domain.ErrMissingPayload.WithDetails("youtubeUrl is required")
	}
	return n.resolver.Resolve(ctx, req.YouTubeURL)
}

func (n *Normalizer) normalizeDocument(req Request) (string, error) {
	ext, err := n.checkFile(req, documentExts[req.Kind], n.limits.MaxDocumentBytes)
	if err != nil {
		return "", err
	}
	return n.extractor.ExtractBytes(req.FileContent, ext)
}

func (n *Normalizer) normalizeVideo(ctx context.Context, req Request) (string, error) {
	if _, err := n.checkFile(req, videoExts, n.limits.MaxVideoBytes); err != nil {
		return "", err
	}

	// The transcription backend decides between direct submission and
	// audio extraction based on the extension, so it needs a real file.
	path, err := extract.SaveTemp(bytes.NewReader(req.FileContent), req.FileName)
	if err != nil {
		return "", domain.NewUpstreamError("failed to stage uploaded media", err)
	}
	defer extract.CleanupTemp(path)

	return n.transcriber.Transcribe(ctx, path, req.FileName)
}

// checkFile enforces the presence, extension allow-list, and byte ceiling
// shared by every file-backed kind. Returns the lowercased extension.
func (n *Normalizer) checkFile(req Request, allowed []string, maxBytes int64) (string, error) {
	if req.FileName == "" || len(req.FileContent) == 0 {
		return "", domain.ErrMissingPayload.WithDetails(fmt.Sprintf("a file upload is required for input type %q", req.Kind))
	}

	ext := strings.ToLower(filepath.Ext(req.FileName))
	ok := false
	for _, a := range allowed {
		if ext == a {
			ok = true
			break
		}
	}
	if !ok {
		return "", domain.ErrInvalidFileType.WithDetails(fmt.Sprintf("%s is not allowed for input type %q", ext, req.Kind))
	}

	if maxBytes > 0 && int64(len(req.FileContent)) > maxBytes {
		return "", domain.ErrFileTooLarge.WithDetails(fmt.Sprintf("file is %d bytes, limit is %d", len(req.FileContent), maxBytes))
	}
	return ext, nil
}
