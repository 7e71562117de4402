package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is matched by every InvalidInputError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ErrListingNotFound is returned when a listing id is not in the current snapshot.
var ErrListingNotFound = errors.New("listing not found")

// InvalidInputError reports a non-finite or out-of-range input value.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewInvalidInput builds an InvalidInputError with a formatted reason.
func NewInvalidInput(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
