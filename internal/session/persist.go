package session

import (
	"log/slog"
	"time"
)

// Clock supplies timestamps for history records and cart snapshots.
// Production code uses SystemClock; tests use a deterministic clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Persister writes the session to durable storage. store.Store implements
// it; NopPersister backs in-memory-only operation.
type Persister interface {
	Save(s *Session) error
}

// NopPersister discards writes. It is the fail-open fallback when storage
// is unavailable, and the default for tests that don't care about
// persistence.
type NopPersister struct{}

func (NopPersister) Save(*Session) error { return nil }

// Saver wraps a Persister with the fail-open policy: the first failed write
// is logged and the saver degrades to in-memory-only for the remainder of
// the run. A persistence failure must never surface as an operation
// failure, let alone a crash.
type Saver struct {
	p        Persister
	log      *slog.Logger
	degraded bool
}

// NewSaver wraps p. A nil logger defaults to slog.Default; a nil persister
// starts degraded (in-memory only).
func NewSaver(p Persister, log *slog.Logger) *Saver {
	if log == nil {
		log = slog.Default()
	}
	s := &Saver{p: p, log: log}
	if p == nil {
		s.p = NopPersister{}
		s.degraded = true
	}
	return s
}

// Save writes the session, degrading to in-memory-only on failure.
func (sv *Saver) Save(s *Session) {
	if err := sv.p.Save(s); err != nil {
		sv.log.Warn("session save failed, continuing in-memory only", "error", err)
		sv.p = NopPersister{}
		sv.degraded = true
	}
}

// Degraded reports whether a write has failed and the saver dropped to
// in-memory-only mode.
func (sv *Saver) Degraded() bool { return sv.degraded }
