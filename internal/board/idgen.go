package board

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator supplies identifiers for records created by Extract.
// Implemented by UUIDGenerator (production) and SequenceGenerator (tests).
//
// The engine consults the generator but does not own it: it re-asks on
// collision with an id already known to the board, so generators only
// need a large enough value space, not global uniqueness.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates time-sortable UUIDv7 identifiers.
//
// UUIDv7 embeds a timestamp in the most significant bits, making ids
// sortable by creation time. Helpful when scanning stored boards.
//
// Uses github.com/google/uuid for RFC 4122 compliant UUIDs.
//
// Thread-safety: UUIDGenerator is stateless and safe for concurrent use.
type UUIDGenerator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDGenerator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator returns "prefix1", "prefix2", ... in order.
//
// This enables deterministic extraction output and golden file
// comparison in tests and in the CLI's deterministic-id mode.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceGenerator creates a generator with the given prefix.
//
// Example:
//
//	gen := NewSequenceGenerator("copy-")
//	gen.Generate() // "copy-1"
//	gen.Generate() // "copy-2"
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix}
}

// Generate returns the next identifier in the sequence.
func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s%d", g.prefix, g.n)
}
