package domain

import "fmt"

// PipelineError represents a classified pipeline failure. Every stage of the
// extraction/generation pipeline reclassifies lower-level errors into this
// taxonomy instead of leaking raw transport errors to callers.
type PipelineError struct {
	Code    string
	Message string
	// Details carries the optional "why" behind Message, surfaced to clients
	// as a separate field.
	Details string
	Err     error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy of the error carrying an explanatory detail string.
func (e *PipelineError) WithDetails(details string) *PipelineError {
	return &PipelineError{Code: e.Code, Message: e.Message, Details: details, Err: e.Err}
}

// Is makes errors.Is match two pipeline errors by code, so sentinel values
// still match after WithDetails or cause wrapping.
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	return ok && t.Code == e.Code
}

// NewPipelineError creates a new PipelineError
func NewPipelineError(code, message string) *PipelineError {
	return &PipelineError{Code: code, Message: message}
}

// NewPipelineErrorWithCause creates a new PipelineError with an underlying cause
func NewPipelineErrorWithCause(code, message string, err error) *PipelineError {
	return &PipelineError{Code: code, Message: message, Err: err}
}

// Pipeline error codes
const (
	ErrCodeValidation            = "VALIDATION_ERROR"
	ErrCodeEmptyContent          = "EMPTY_CONTENT"
	ErrCodeNoTextLayer           = "NO_TEXT_LAYER"
	ErrCodeEmptyTranscript       = "EMPTY_TRANSCRIPT"
	ErrCodeEmptyGeneration       = "EMPTY_GENERATION"
	ErrCodeTranscriptUnavailable = "TRANSCRIPT_UNAVAILABLE"
	ErrCodeDependencyMissing     = "DEPENDENCY_MISSING"
	ErrCodeRateLimited           = "RATE_LIMITED"
	ErrCodeUpstream              = "UPSTREAM_ERROR"
)

// Validation errors
var (
	ErrMissingInputType   = NewPipelineError(ErrCodeValidation, "input type is required")
	ErrUnknownInputType   = NewPipelineError(ErrCodeValidation, "unsupported input type")
	ErrMissingPayload     = NewPipelineError(ErrCodeValidation, "required input payload is missing")
	ErrInvalidFileType    = NewPipelineError(ErrCodeValidation, "file type is not allowed for this input")
	ErrFileTooLarge       = NewPipelineError(ErrCodeValidation, "file exceeds the maximum allowed size")
	ErrInvalidYouTubeURL  = NewPipelineError(ErrCodeValidation, "invalid YouTube URL")
	ErrInvalidDetailLevel = NewPipelineError(ErrCodeValidation, "invalid detail level")
)

// Empty-result errors: the pipeline ran but produced nothing usable.
var (
	ErrEmptyContent = NewPipelineError(ErrCodeEmptyContent, "no text could be extracted from the input")
	// ErrNoTextLayer is raised when PDF extraction yields an empty string.
	// Empty text is treated as "scanned/image-only PDF", which is a heuristic:
	// corruption and encryption produce the same signal and are not
	// distinguished here.
	ErrNoTextLayer     = NewPipelineError(ErrCodeNoTextLayer, "PDF contains no extractable text layer")
	ErrEmptyTranscript = NewPipelineError(ErrCodeEmptyTranscript, "no speech could be transcribed from the media")
	ErrEmptyGeneration = NewPipelineError(ErrCodeEmptyGeneration, "generated notes are empty")
)

// Transcript resolution
var (
	ErrTranscriptUnavailable = NewPipelineError(ErrCodeTranscriptUnavailable,
		"could not retrieve transcript; ensure the video has captions enabled or try a different video")
)

// External dependency errors
var (
	ErrFFmpegMissing = NewPipelineError(ErrCodeDependencyMissing, "ffmpeg is not installed")
	ErrYtdlpMissing  = NewPipelineError(ErrCodeDependencyMissing, "yt-dlp is not installed")
)

// Provider errors
var (
	ErrRateLimited = NewPipelineError(ErrCodeRateLimited, "rate limit exceeded, try again later")
	ErrUpstream    = NewPipelineError(ErrCodeUpstream, "upstream provider request failed")
)

// NewRateLimitError builds a rate-limit error carrying a human-readable wait
// hint as its message.
func NewRateLimitError(waitHint string, err error) *PipelineError {
	if waitHint == "" {
		waitHint = "usage limit reached, please wait before trying again"
	}
	return &PipelineError{Code: ErrCodeRateLimited, Message: waitHint, Err: err}
}

// NewUpstreamError wraps a raw provider/transport failure.
func NewUpstreamError(message string, err error) *PipelineError {
	return &PipelineError{Code: ErrCodeUpstream, Message: message, Err: err}
}
