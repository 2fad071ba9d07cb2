package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a resume folder does not exist.
var ErrNotFound = errors.New("resume folder not found")

// Error represents a filesystem failure while organizing output.
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %s: %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("%s %s", e.Message, e.Path)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
