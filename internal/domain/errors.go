package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by stores and services.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrCapacityExceeded   = errors.New("event capacity exceeded")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidTicket      = errors.New("invalid or expired ticket")
)

// ValidationError reports malformed or missing input. Problems holds one message per failed rule.
type ValidationError struct {
	Problems []string
}

// NewValidationError returns a ValidationError for the given problems, or nil when there are none.
func NewValidationError(problems ...string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// PersistenceError wraps a storage-layer failure. Op names the store operation that failed.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
