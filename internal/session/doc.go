// Package session owns the single per-user state record: authentication
// flag, cart line items, favorites, and the append-only login history.
//
// The session holds copied display data snapshotted at add time, never live
// references into the catalog, so catalog changes cannot corrupt a cart.
// Every mutation flows through an engine (package cart or this package's
// Manager) that persists the session as its final side effect; callers
// never touch the persistence layer directly.
package session
