package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clearstudy-ai/clearstudy/internal/domain"
)

// ErrorResponse represents an error API response. Details, when present,
// explains why the request failed beyond the short error string.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error JSON response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// ErrorWithDetails writes an error JSON response with an explanatory detail string.
func ErrorWithDetails(w http.ResponseWriter, status int, message, details string) {
	JSON(w, status, ErrorResponse{Error: message, Details: details})
}

// PipelineErrorToHTTP maps pipeline errors to HTTP status codes
func PipelineErrorToHTTP(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var pipeErr *domain.PipelineError
	if !errors.As(err, &pipeErr) {
		return http.StatusInternalServerError
	}

	switch pipeErr.Code {
	case domain.ErrCodeValidation:
		return http.StatusBadRequest
	case domain.ErrCodeEmptyContent,
		domain.ErrCodeNoTextLayer,
		domain.ErrCodeEmptyTranscript,
		domain.ErrCodeTranscriptUnavailable:
		return http.StatusBadRequest
	case domain.ErrCodeEmptyGeneration:
		return http.StatusInternalServerError
	case domain.ErrCodeDependencyMissing:
		return http.StatusNotImplemented
	case domain.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domain.ErrCodeUpstream:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// HandleError writes an appropriate error response based on the error type.
// Pipeline errors keep their short message and optional details separate;
// anything else becomes an opaque 500.
func HandleError(w http.ResponseWriter, err error) {
	status := PipelineErrorToHTTP(err)

	var pipeErr *domain.PipelineError
	if errors.As(err, &pipeErr) {
		details := pipeErr.Details
		if details == "" && pipeErr.Err != nil {
			details = pipeErr.Err.Error()
		}
		ErrorWithDetails(w, status, pipeErr.Message, details)
		return
	}

	Error(w, status, err.Error())
}
