package repository

import (
	"errors"
	"fmt"

	"github.com/roach88/atlas/internal/geo"
)

var (
	// ErrNoResults is returned by Search when no row matches the filter.
	ErrNoResults = errors.New("no result matches")

	// ErrNotFound is returned when a row addressed by id or key is absent.
	ErrNotFound = errors.New("record not found")
)

// StoreError wraps a failure reported by the database driver.
type StoreError struct {
	// Op names the repository operation (e.g. "save new country").
	Op string

	// Err is the driver error.
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: database error: %v", e.Op, e.Err)
}

// Unwrap returns the driver error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// IsStoreError returns true if err wraps a driver failure.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}

func isValidation(err error) bool {
	var ve *geo.ValidationError
	return errors.As(err, &ve)
}

var errClosed = errors.New("database is closed")
