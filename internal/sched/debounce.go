package sched

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid calls: the function runs only after the
// duration has elapsed without a newer call. Each call cancels the pending
// one, so evaluation is last-call-wins: a newer keystroke invalidates an
// older scheduled search before it fires.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	gen      uint64 // identifies the in-flight schedule; stale timers check it before firing
	duration time.Duration
}

// NewDebouncer creates a debouncer with the given delay.
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{duration: duration}
}

// Call schedules fn, replacing any pending call.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.duration, func() {
		// Stop can race with an already-fired timer; the generation
		// check keeps a superseded call from running.
		d.mu.Lock()
		stale := gen != d.gen
		d.mu.Unlock()
		if !stale {
			fn()
		}
	})
}

// Cancel drops any pending call. Used for teardown.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}

// Flush runs fn immediately and drops any pending call.
func (d *Debouncer) Flush(fn func()) {
	d.Cancel()
	fn()
}
