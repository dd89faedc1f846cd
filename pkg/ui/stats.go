package ui

import "sync/atomic"

// counters are process-wide and monotonic.
type counters struct {
	created   atomic.Uint64
	reused    atomic.Uint64
	moved     atomic.Uint64
	removed   atomic.Uint64
	bindings  atomic.Uint64
	detached  atomic.Uint64
	templates atomic.Uint64
}

var stats counters

// Stats is a snapshot of the list reconciler and binder counters.
type Stats struct {
	// Created counts list items rendered by Each.
	Created uint64
	// Reused counts items kept in place.
	Reused uint64
	// Moved counts existing items moved to a new position.
	Moved uint64
	// Removed counts items removed from the DOM.
	Removed uint64
	// Bindings counts reactive slot bindings created.
	Bindings uint64
	// Detached counts reactive bindings that disposed themselves because
	// their node left the document.
	Detached uint64
	// Templates counts distinct template markups compiled.
	Templates uint64
}

// ReadStats returns the current counter values.
func ReadStats() Stats {
	return Stats{
		Created:   stats.created.Load(),
		Reused:    stats.reused.Load(),
		Moved:     stats.moved.Load(),
		Removed:   stats.removed.Load(),
		Bindings:  stats.bindings.Load(),
		Detached:  stats.detached.Load(),
		Templates: stats.templates.Load(),
	}
}
