package store

import (
	"errors"
	"fmt"
)

// PersistenceError wraps a storage failure: unavailable database, quota,
// or a write that could not complete. It never crosses Save's boundary as
// a panic, and Restore never returns one at all since restore fails open.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistence reports whether err is a PersistenceError, unwrapping as
// needed.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
