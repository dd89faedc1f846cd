package reactive

import "sync/atomic"

// counters are process-wide and monotonic.
type counters struct {
	writes        atomic.Uint64
	notifications atomic.Uint64
	effectRuns    atomic.Uint64
	disposed      atomic.Uint64
	pruned        atomic.Uint64
}

var stats counters

// Stats is a snapshot of the reactive runtime counters.
type Stats struct {
	// Writes counts Set and Update calls, changed or not.
	Writes uint64
	// Notifications counts writes that changed a value and notified.
	Notifications uint64
	// EffectRuns counts effect body executions.
	EffectRuns uint64
	// Disposed counts effects that have been disposed.
	Disposed uint64
	// Pruned counts disposed subscriptions culled during notification.
	Pruned uint64
}

// ReadStats returns the current counter values.
func ReadStats() Stats {
	return Stats{
		Writes:        stats.writes.Load(),
		Notifications: stats.notifications.Load(),
		EffectRuns:    stats.effectRuns.Load(),
		Disposed:      stats.disposed.Load(),
		Pruned:        stats.pruned.Load(),
	}
}
