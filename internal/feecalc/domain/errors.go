package domain

import (
	"errors"
	"strings"
)

// ErrInvalidInput is the sentinel for all input validation failures.
var ErrInvalidInput = errors.New("invalid_input")

// InvalidInputError carries the list of violated constraints so callers
// can report every problem at once rather than the first.
type InvalidInputError struct {
	Violations []string
}

func (e *InvalidInputError) Error() string {
	if len(e.Violations) == 0 {
		return "invalid input"
	}
	return "invalid input: " + strings.Join(e.Violations, "; ")
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// NewInvalidInputError returns nil when there are no violations.
func NewInvalidInputError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &InvalidInputError{Violations: violations}
}
