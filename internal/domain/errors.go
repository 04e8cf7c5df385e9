package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatches reports an empty result set. It is a state, not a failure.
	ErrNoMatches = errors.New("no recorded matches")
	ErrTimeout   = errors.New("timed out waiting for input")
)

// ValidationError names the field whose value is outside the allowed set.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func Invalid(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
