package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks. Nothing
// is persisted when a validation error is returned.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates an attempt to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a concurrent-update collision, such as two posters
// racing for the same entry number. The poster retries once internally
// before surfacing this.
var ErrConflict = errors.New("conflict")

// ErrAlreadyClosed indicates that an active closing period already exists
// for the requested fiscal year and branch.
var ErrAlreadyClosed = errors.New("fiscal year already closed")

// ErrNotClosed indicates that no active closing period exists for the
// requested fiscal year and branch.
var ErrNotClosed = errors.New("fiscal year not closed")

// AppError carries a structured kind and human message across the module
// boundary so adapters can decide per-workflow how to react without parsing
// strings.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps an underlying error with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
