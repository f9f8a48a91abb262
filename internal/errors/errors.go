package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrUsernameTaken is returned when registering with an existing username.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when registering with an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrTaskNotFound is returned when a task does not exist under the acting
	// user. A task owned by someone else yields the same error so callers
	// cannot probe for other users' data.
	ErrTaskNotFound = errors.New("task not found")
	// ErrSessionNotFound is returned when a session token has no live record.
	ErrSessionNotFound = errors.New("session not found")
)

// ValidationError carries every field rule that failed, in field order, so
// the whole list can be surfaced to the user at once.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, " ")
}

// NewValidationError wraps a collected error list.
func NewValidationError(errs []string) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Details    []string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Details: e.Details,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse
// to a generic internal error so nothing about the store leaks out.
func MapErrorToHTTP(err error) *HTTPError {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		httpErr := NewHTTPError(http.StatusBadRequest, "validation failed", "VALIDATION_FAILED")
		httpErr.Details = vErr.Errors
		return httpErr
	}

	switch {
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrTaskNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case errors.Is(err, ErrSessionNotFound):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "SESSION_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
