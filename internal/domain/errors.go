package domain

import "errors"

// Domain errors
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrLoadFailure     = errors.New("failed to load document")
	ErrNoDocument      = errors.New("no document selected")
	ErrHandleRevoked   = errors.New("resource handle revoked")
	ErrPageOutOfRange  = errors.New("page out of range")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
