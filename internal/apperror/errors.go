// Package apperror provides domain error types for the API. Each error
// carries an HTTP status code and a client-safe message; the fiber error
// handler maps them to responses.
//
// Raw database or infrastructure errors must never reach the client. Wrap
// them with NewInternal so only a generic message is exposed.
package apperror

import (
	"fmt"
	"net/http"
)

// AppError is the base type for all domain errors. Code is the HTTP status,
// Type a machine-readable classifier, Message safe to show to the client.
// Internal holds the underlying error for logging only.
type AppError struct {
	Code     int    `json:"-"`
	Type     string `json:"type"`
	Message  string `json:"message"`
	Internal error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Internal
}

// NewValidation creates a 400 error for malformed or forbidden field values.
func NewValidation(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    "validation_error",
		Message: message,
	}
}

// NewAuth creates a 401 error for missing, invalid, or revoked credentials.
func NewAuth(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnauthorized,
		Type:    "auth_error",
		Message: message,
	}
}

// NewNotFound creates a 404 error. Missing and not-owned resources produce
// the same error so existence never leaks to non-owners; the response body
// stays empty.
func NewNotFound() *AppError {
	return &AppError{
		Code: http.StatusNotFound,
		Type: "not_found",
	}
}

// NewPayload creates a 400 error for oversized or wrong-type uploads.
func NewPayload(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    "payload_error",
		Message: message,
	}
}

// NewInternal creates a 500 error. The real error is kept in Internal for
// logging but the client only sees a generic message.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:     http.StatusInternalServerError,
		Type:     "internal_error",
		Message:  "An unexpected error occurred. Please try again.",
		Internal: err,
	}
}
