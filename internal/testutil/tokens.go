package testutil

import (
	"fmt"
	"sync"
)

// SequenceTokens generates trace tokens "<prefix>-0001", "<prefix>-0002", ...
//
// This enables deterministic engine logs and golden trace comparison: the
// same sequence of events always gets the same tokens.
//
// Thread-safety: SequenceTokens is safe for concurrent use via internal mutex.
type SequenceTokens struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceTokens creates a generator. An empty prefix defaults to "trace".
func NewSequenceTokens(prefix string) *SequenceTokens {
	if prefix == "" {
		prefix = "trace"
	}
	return &SequenceTokens{prefix: prefix}
}

// Generate returns the next token.
//
// Implements engine.TraceTokenGenerator.
func (g *SequenceTokens) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}
