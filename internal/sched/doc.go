// Package sched holds the timing collaborators the storefront UI layer
// needs around the core: a last-call-wins debouncer for search-as-you-type
// and an individually cancellable repeating task for periodic refreshers.
//
// Neither participates in the core state machine. Cart and persistence
// operations are atomic with respect to the event loop and are never
// scheduled or cancelled through this package.
package sched
