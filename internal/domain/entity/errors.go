package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")

	// ErrDuplicateSlug is returned when the store rejects a write because
	// another record in the same collection already holds the slug. It is the
	// losing side of a concurrent create and is never retried.
	ErrDuplicateSlug = errors.New("slug already exists")

	// ErrDuplicateName indicates a category name already used within its kind.
	ErrDuplicateName = errors.New("name already exists")

	// ErrDuplicateUser indicates a username or email collision.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrForbidden indicates that the acting user may not modify the record.
	ErrForbidden = errors.New("forbidden")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidationFailed) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

type notFoundError struct{ what string }

func (e *notFoundError) Error() string { return e.what + " not found" }

func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

// NotFound returns a sentinel naming what was missing. It matches ErrNotFound
// under errors.Is.
func NotFound(what string) error {
	return &notFoundError{what: what}
}
