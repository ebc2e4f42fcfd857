package domain

import "strings"

// InputKind identifies the source type of study material.
type InputKind string

const (
	InputKindYouTube InputKind = "youtube"
	InputKindVideo   InputKind = "video"
	InputKindPDF     InputKind = "pdf"
	InputKindDOCX    InputKind = "docx"
	InputKindPPTX    InputKind = "pptx"
	InputKindText    InputKind = "text"
)

// AllInputKinds lists every supported input kind.
var AllInputKinds = []InputKind{
	InputKindYouTube,
	InputKindVideo,
	InputKindPDF,
	InputKindDOCX,
	InputKindPPTX,
	InputKindText,
}

// IsValid reports whether k is a supported input kind.
func (k InputKind) IsValid() bool {
	switch k {
	case InputKindYouTube, InputKindVideo, InputKindPDF, InputKindDOCX, InputKindPPTX, InputKindText:
		return true
	}
	return false
}

// DetailLevel controls the verbosity of generated notes.
type DetailLevel string

const (
	DetailEasy     DetailLevel = "easy"
	DetailMedium   DetailLevel = "medium"
	DetailDetailed DetailLevel = "detailed"
)

// IsValid reports whether d is a supported detail level.
func (d DetailLevel) IsValid() bool {
	switch d {
	case DetailEasy, DetailMedium, DetailDetailed:
		return true
	}
	return false
}

// NormalizeDetailLevel returns the detail level for a raw string, defaulting
// to medium when the value is empty.
func NormalizeDetailLevel(s string) (DetailLevel, bool) {
	if s == "" {
		return DetailMedium, true
	}
	d := DetailLevel(s)
	return d, d.IsValid()
}

// NormalizedInput is the plain-text payload produced by input normalization.
// RawText is guaranteed non-empty after trimming.
type NormalizedInput struct {
	RawText      string
	Kind         InputKind
	SourceLength int
}

// NewNormalizedInput validates the single invariant every extraction branch
// must satisfy: the text is non-empty after trimming.
func NewNormalizedInput(text string, kind InputKind) (*NormalizedInput, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyContent
	}
	return &NormalizedInput{
		RawText:      trimmed,
		Kind:         kind,
		SourceLength: len(trimmed),
	}, nil
}

// GeneratedNote is the final concatenated note document.
type GeneratedNote struct {
	Text string
	Kind InputKind
}

// ConversationTurn is one message of a chat history.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
