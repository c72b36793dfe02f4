package catalog

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces opaque book IDs.
//
// IDs only need to be collision-resistant within a single session's seed,
// not cryptographically unique. Implementations must be safe for use from
// the loader goroutine only; the catalog never generates IDs after Load.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable book IDs under the "book-" namespace.
//
// UUIDv7 embeds a timestamp in the most significant bits, so IDs sort by
// creation time, which keeps debug output readable.
//
// Panics if UUID generation fails (should never happen in practice).
type UUIDv7Generator struct{}

// Generate returns a new ID of the form "book-<uuidv7>".
func (g UUIDv7Generator) Generate() string {
	return "book-" + uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined IDs for testing.
//
// This enables deterministic seed loading and golden trace comparison.
// Thread-safe via internal mutex.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns the given IDs in order.
// Once the fixed IDs are exhausted it keeps going with "book-fixed-N" so a
// test that seeds more books than it named does not panic.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next predetermined ID.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx < len(g.ids) {
		id := g.ids[g.idx]
		g.idx++
		return id
	}
	g.idx++
	return fmt.Sprintf("book-fixed-%d", g.idx)
}
