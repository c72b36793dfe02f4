// Package testutil provides deterministic test doubles shared across
// packages: a stepping clock so timestamps in traces and golden files are
// reproducible run over run.
package testutil

import (
	"sync"
	"time"
)

// Epoch is the base instant deterministic clocks start from. Chosen once so
// golden files never churn.
var Epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// Clock is a deterministic stepping clock. Every Now advances by a fixed
// step, so successive timestamps are distinct, ordered, and reproducible.
//
// Thread-safe via internal mutex. Implements session.Clock.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock creates a clock at Epoch stepping one second per Now call.
func NewClock() *Clock {
	return &Clock{now: Epoch, step: time.Second}
}

// Now advances the clock by one step and returns the new instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

// Reset rewinds to Epoch for test reuse.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = Epoch
}
