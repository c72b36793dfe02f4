// Package query is the read side of the storefront: a pure pipeline that
// maps (catalog, filter) to an ordered result list.
//
// The pipeline has no side effects, never mutates its inputs, and is
// deterministic: identical inputs produce byte-identical output. Stages run
// in a fixed order (keyword filter, stock filter, stable sort) so that
// callers can reason about results the same way regardless of which filter
// fields are set.
package query
