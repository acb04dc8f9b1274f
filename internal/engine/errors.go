package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/atlas/internal/geo"
	"github.com/roach88/atlas/internal/repository"
	"github.com/roach88/atlas/internal/store"
)

var (
	// ErrNotConnected is reported for entity requests while no database is
	// open.
	ErrNotConnected = errors.New("database is not open")

	// ErrUnknownEvent is reported for events the engine does not accept as
	// requests, including response events.
	ErrUnknownEvent = errors.New("unknown event")
)

// noResults is the message shown for empty searches and missing rows.
const noResults = "No result matches"

// DecodeError reports a request that could not be built from a script or
// shell line.
type DecodeError struct {
	// Kind is the event name, when one was read.
	Kind string

	// Err is the underlying YAML or lookup failure.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("decode %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("decode event: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsUnknownEvent returns true if err reports an event kind that is not a
// request.
func IsUnknownEvent(err error) bool {
	return errors.Is(err, ErrUnknownEvent)
}

// describe turns a repository failure into the text carried by a failure
// event.
func describe(err error) string {
	var ve *geo.ValidationError
	var se *repository.StoreError
	switch {
	case errors.Is(err, ErrNotConnected):
		return err.Error()
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, repository.ErrNoResults), errors.Is(err, repository.ErrNotFound):
		return noResults
	case errors.As(err, &se):
		return fmt.Sprintf("Database error: %v", se.Err)
	default:
		return err.Error()
	}
}

func errorEvent(err error) Event {
	return Error{Message: describe(err)}
}

func saveNewFailure(entity string, err error) string {
	if errors.Is(err, ErrNotConnected) {
		return err.Error()
	}
	return fmt.Sprintf("Failed to save the new %s: %s", entity, describe(err))
}

func updateFailure(entity string, err error) string {
	if errors.Is(err, ErrNotConnected) {
		return err.Error()
	}
	return fmt.Sprintf("Failed to update the %s: %s", entity, describe(err))
}

// openFailure turns a store.Open error into the DatabaseOpenFailed message.
func openFailure(err error) string {
	var oe *store.OpenError
	if !errors.As(err, &oe) {
		return fmt.Sprintf("Database error: %v", err)
	}
	if oe.Code == store.ErrCodeInvalidDatabase {
		return "Failed to open the database: " + oe.Message
	}
	if oe.Err != nil {
		return fmt.Sprintf("Database error: %s: %v", oe.Message, oe.Err)
	}
	return "Database error: " + oe.Message
}
