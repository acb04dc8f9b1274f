package engine

import (
	"github.com/google/uuid"
)

// TraceTokenGenerator produces the token that tags one processed request in
// the logs. Implemented by UUIDv7Generator (production) and
// testutil.SequenceTokens (tests).
type TraceTokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 trace tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, so sorting log
// lines by token also sorts them by the time the request arrived.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
