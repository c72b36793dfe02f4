// Package store provides SQLite-backed durable storage for the session.
//
// There is one logical record per installation: a single-row slot holding
// the serialized session JSON. Save upserts the slot; Restore reads it with
// a fail-open policy: a missing row, unparseable payload, or schema
// mismatch yields a fresh default session rather than an error, because a
// corrupted session must never block the storefront.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
