package errors

import (
	"net/http"

	apperrors "aihub/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindBadRequest         ErrorKind = "bad_request"
	KindNotFound           ErrorKind = "not_found"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// FromDomain translates the application error taxonomy into an API
// error with the right status. Unknown errors become internal.
func FromDomain(err error) *APIError {
	switch {
	case apperrors.Is(err, apperrors.ErrAudioDecodeFailed),
		apperrors.Is(err, apperrors.ErrEmptyInput),
		apperrors.Is(err, apperrors.ErrInvalidChoice):
		return &APIError{Kind: KindBadRequest, Message: err.Error()}
	case apperrors.Is(err, apperrors.ErrProviderNotFound),
		apperrors.Is(err, apperrors.ErrNoModelAvailable):
		return &APIError{Kind: KindNotFound, Message: err.Error()}
	case apperrors.Is(err, apperrors.ErrProviderNotConfigured),
		apperrors.Is(err, apperrors.ErrProviderUnavailable),
		apperrors.Is(err, apperrors.ErrModelNotLoaded):
		return &APIError{Kind: KindServiceUnavailable, Message: err.Error()}
	default:
		return &APIError{Kind: KindInternal, Message: "Internal server error"}
	}
}
