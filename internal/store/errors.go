package store

import (
	"errors"
	"fmt"
)

// OpenErrorCode categorizes failures to open a database.
type OpenErrorCode string

const (
	// ErrCodeInvalidDatabase indicates the file opened but lacks a required table.
	ErrCodeInvalidDatabase OpenErrorCode = "INVALID_DATABASE"

	// ErrCodeDatabaseError indicates the driver could not open or read the file.
	ErrCodeDatabaseError OpenErrorCode = "DATABASE_ERROR"
)

// OpenError is returned by Open and Create.
type OpenError struct {
	// Code identifies the error category.
	Code OpenErrorCode

	// Path is the database path that was being opened.
	Path string

	// Message is a human-readable description.
	Message string

	// Err is the underlying driver error, if any.
	Err error
}

// Error implements the error interface.
func (e *OpenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying driver error.
func (e *OpenError) Unwrap() error {
	return e.Err
}

// IsInvalidDatabase returns true if err reports a missing schema.
// Uses errors.As to handle wrapped errors.
func IsInvalidDatabase(err error) bool {
	var oe *OpenError
	if errors.As(err, &oe) {
		return oe.Code == ErrCodeInvalidDatabase
	}
	return false
}

func invalidDatabase(path, table string) *OpenError {
	return &OpenError{
		Code:    ErrCodeInvalidDatabase,
		Path:    path,
		Message: fmt.Sprintf("Invalid database: missing table %q", table),
	}
}

func databaseError(path, message string, err error) *OpenError {
	return &OpenError{
		Code:    ErrCodeDatabaseError,
		Path:    path,
		Message: message,
		Err:     err,
	}
}
