package domain

import (
	"errors"
	"strings"
)

var (
	// ErrAuthRequired is returned when an action needs an authenticated session.
	ErrAuthRequired = errors.New("authentication required")

	// ErrNotFound is returned when a referenced product, order or user is absent.
	ErrNotFound = errors.New("not found")
)

// ValidationError names every missing or malformed input field so callers
// can surface them to the user in one round trip.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Fields, ", ")
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
