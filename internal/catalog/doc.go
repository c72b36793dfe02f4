// Package catalog owns the per-session book catalog.
//
// The catalog is populated once at startup from seed data and is immutable
// thereafter: Load replaces the whole catalog, All hands out copies in load
// order, and no partial updates are exposed. Every book carries an opaque
// unique ID assigned at construction time by an IDGenerator.
//
// Prices and scores are decimal values (shopspring/decimal), never floats,
// so discount math and totals stay exact to two places.
package catalog
