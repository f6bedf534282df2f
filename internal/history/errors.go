// internal/history/errors.go
package history

import (
	"errors"
	"fmt"
)

// ErrNotFound is the sentinel wrapped by NotFoundError.
var ErrNotFound = errors.New("record not found")

// NotFoundError is returned when no record matches an id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("history record %q not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// IsNotFound returns true if err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// AmbiguousIDError is returned when an id prefix matches several records.
type AmbiguousIDError struct {
	Prefix  string
	Matches []string
}

func (e *AmbiguousIDError) Error() string {
	return fmt.Sprintf("id prefix %q matches %d records", e.Prefix, len(e.Matches))
}
