// Package errors defines the structured application error used across the
// front end. The taxonomy follows the failure classes the UI has to
// distinguish: validation (pre-network), backend/transport, and timeout.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Errors caught before any network call
	ErrorCodeValidation ErrorCode = "VALIDATION_ERROR"

	// Backend REST call errors
	ErrorCodeBackend     ErrorCode = "BACKEND_ERROR"
	ErrorCodeNotFound    ErrorCode = "NOT_FOUND"
	ErrorCodeUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	ErrorCodeTimeout     ErrorCode = "TIMEOUT_ERROR"

	// Local failures
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// AppError represents a structured application error. Message holds the
// text shown to the user; for backend errors it is the response body
// verbatim so backend error text is never masked.
type AppError struct {
	Code       ErrorCode
	Message    string
	StatusCode int
	Cause      error
	Timestamp  time.Time
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error wrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the text suitable for rendering to the user.
func (e *AppError) UserMessage() string {
	return e.Message
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewAppErrorWithCause creates a new application error with an underlying cause
func NewAppErrorWithCause(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

// ValidationError creates a validation error
func ValidationError(message string) *AppError {
	return NewAppError(ErrorCodeValidation, message)
}

// BackendError creates an error from a non-success backend response. The
// body text becomes the user-facing message; when the backend sent no body
// the HTTP status text is used instead.
func BackendError(statusCode int, body string) *AppError {
	message := body
	if message == "" {
		message = http.StatusText(statusCode)
	}
	code := ErrorCodeBackend
	if statusCode == http.StatusNotFound {
		code = ErrorCodeNotFound
	}
	err := NewAppError(code, message)
	err.StatusCode = statusCode
	return err
}

// UnavailableError creates an error for a backend that could not be reached
func UnavailableError(cause error) *AppError {
	return NewAppErrorWithCause(ErrorCodeUnavailable, "backend unreachable", cause)
}

// TimeoutError creates a timeout error
func TimeoutError(operation string) *AppError {
	return NewAppError(ErrorCodeTimeout, fmt.Sprintf("timeout during %s", operation))
}

// InternalError creates an internal error
func InternalError(message string, cause error) *AppError {
	return NewAppErrorWithCause(ErrorCodeInternal, message, cause)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError converts an error to AppError if possible
func AsAppError(err error) (*AppError, bool) {
	appErr, ok := err.(*AppError)
	return appErr, ok
}

// Message extracts the user-facing text from any error: AppErrors
// contribute their message, anything else its Error string.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.UserMessage()
	}
	return err.Error()
}
