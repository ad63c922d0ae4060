package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record or a whole collection resource is absent.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write would break a uniqueness rule.
	ErrConflict = errors.New("conflict")
	// ErrMalformed is returned when a stored resource is not valid JSON for its type.
	ErrMalformed = errors.New("malformed document")

	errSkipWrite = errors.New("store: nothing to write")
)

// StorageError carries the operation and collection that failed.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("store: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
