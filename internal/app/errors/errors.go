package errors

import (
	stderrors "errors"
	"fmt"
)

// Is reports whether any error in err's chain matches target.
// Re-exported so callers need a single errors import.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain matching target.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Common error types
var (
	// Engine lifecycle errors
	ErrModelNotLoaded     = New("model is not loaded")
	ErrModelNotDownloaded = New("model is not downloaded")
	ErrLoadFailed         = New("model load failed")
	ErrNoModelAvailable   = New("no model available for capability")

	// Provider errors
	ErrProviderNotConfigured = New("provider is not configured")
	ErrProviderNotFound      = New("provider not found")
	ErrProviderUnavailable   = New("provider unavailable")

	// Input errors
	ErrAudioDecodeFailed = New("audio decoding failed")
	ErrEmptyInput        = New("empty input")

	// Configuration errors
	ErrMissingAPIKey = New("API key is required")
	ErrInvalidConfig = New("invalid configuration")

	// Settings errors
	ErrInvalidChoice = New("invalid provider choice")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// WithCause attaches a cause to a sentinel error so errors.Is still
// matches the sentinel while the underlying detail is preserved.
func WithCause(sentinel *Error, cause error) error {
	if cause == nil {
		return sentinel
	}
	return &Error{
		message: sentinel.message,
		cause:   cause,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}
