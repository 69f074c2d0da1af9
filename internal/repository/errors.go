package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidFormat = errors.New("invalid document format")
)

// FormatError reports a document that is missing required keys or holds
// values of the wrong type. The schedule is not modified when one is returned.
type FormatError struct {
	Name   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid document %s: %s", e.Name, e.Reason)
}

func (e *FormatError) Unwrap() error { return ErrInvalidFormat }
