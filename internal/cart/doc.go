// Package cart is the mutation engine for a session's cart and favorites.
//
// Every operation acts on a session passed in by the caller, and every
// mutating operation persists the session as its final side effect. The
// engine takes no locks: the storefront is single-threaded and
// event-driven, and the cart's keyed-upsert semantics make rapid repeated
// adds converge without them.
//
// Missing-line operations are deliberate no-ops, never errors. Stock is a
// catalog concept, not a cart concept: callers check stock before adding,
// and the engine rejects a violation as a contract error rather than
// re-validating catalog state.
package cart
