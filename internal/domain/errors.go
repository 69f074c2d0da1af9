package domain

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrEmptyName            = errors.New("name must not be empty")
	ErrNonPositiveLength    = errors.New("length must be a positive number of minutes")
	ErrInvalidClock         = errors.New("time must be HH:MM with hours 0-23 and minutes 0-59")
	ErrInvalidFlag          = errors.New("value must be yes/no, y/n, 1/0 or true/false")
	ErrNonPositiveDayLength = errors.New("day length must be a positive number of minutes")
	ErrUnknownField         = errors.New("field is not editable")
)

// ValidationError reports rejected input. No state is mutated when one is returned.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IndexError reports i outside [0, size).
func IndexError(i, size int) error {
	return &ValidationError{
		Field: "index",
		Value: fmt.Sprintf("%d of %d", i, size),
		Err:   ErrIndexOutOfRange,
	}
}
