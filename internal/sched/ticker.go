package sched

import (
	"sync"
	"time"
)

// Ticker runs a function at a fixed interval until stopped. Each Ticker is
// an independent repeating task with no ordering relationship to anything
// else; Stop tears down exactly this task, supporting clean page teardown
// with several refreshers live at once.
type Ticker struct {
	mu      sync.Mutex
	stop    chan struct{}
	stopped sync.WaitGroup
}

// Start begins invoking fn every interval. Calling Start on a running
// ticker restarts it.
func (t *Ticker) Start(interval time.Duration, fn func()) {
	t.Stop()

	t.mu.Lock()
	stop := make(chan struct{})
	t.stop = stop
	t.mu.Unlock()

	t.stopped.Add(1)
	go func() {
		defer t.stopped.Done()
		tick := time.NewTicker(interval)
		defer tick.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tick.C:
				fn()
			}
		}
	}()
}

// Stop cancels the repeating task and waits for the in-flight invocation,
// if any, to return. Safe to call on a never-started or already-stopped
// ticker.
func (t *Ticker) Stop() {
	t.mu.Lock()
	stop := t.stop
	t.stop = nil
	t.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	t.stopped.Wait()
}
