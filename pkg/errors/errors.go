package errors

import (
	"errors"
	"fmt"
	"net/http"

	"pdf-book-reader/internal/domain"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeLoadFailure ErrorType = "load_failure"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeInternal    ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error, details ...string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		Details:    detail,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewLoadFailureError creates an error for a document the viewer could not open
func NewLoadFailureError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeLoadFailure,
		Message:    message,
		StatusCode: http.StatusUnprocessableEntity,
		Cause:      cause,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
		Cause:      cause,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// FromDomain classifies a domain error into an AppError carrying the
// user-visible notice for it.
func FromDomain(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domain.ErrUnsupportedType):
		return NewValidationError("Please select a valid PDF file.", err)
	case errors.Is(err, domain.ErrFileTooLarge):
		return NewValidationError("File too large.", err)
	case errors.Is(err, domain.ErrLoadFailure):
		return NewLoadFailureError("Failed to load document.", err)
	case errors.Is(err, domain.ErrNoDocument), errors.Is(err, domain.ErrHandleRevoked):
		return NewNotFoundError("No document is open.", err)
	case errors.Is(err, domain.ErrPageOutOfRange):
		return NewNotFoundError("Page not found.", err)
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return NewValidationError(validationErr.Message, err, validationErr.Field)
	}
	return NewInternalError("Internal server error", err)
}

// IsType checks if the error is of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
