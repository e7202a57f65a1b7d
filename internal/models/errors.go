package models

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that a referenced entity does not exist. Repositories
// return it verbatim so callers can match with errors.Is.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or missing input. No partial mutation is
// committed when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// DuplicateCodeError reports a product code uniqueness violation.
type DuplicateCodeError struct {
	Code string
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("product code %q already exists", e.Code)
}

// StorageError wraps a backend I/O or connectivity failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
