// Package errors provides domain-specific sentinel errors for the chat
// service. Use errors.Is() to check them.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrModelNotFound indicates the classifier artifact is missing or
	// unreadable. This is fatal at startup: the resolver cascade has no
	// inference path without the trained model.
	ErrModelNotFound = errors.New("classifier model not found")

	// ErrEmptyMessage indicates a chat request with an empty message.
	// The engine is never invoked with empty input; the API layer rejects it.
	ErrEmptyMessage = errors.New("message is required")

	// ErrInvalidInput indicates a request body that failed to bind.
	ErrInvalidInput = errors.New("invalid request body")

	// ErrRateLimitExceeded indicates a session exceeded its rate limit.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
