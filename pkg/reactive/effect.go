package reactive

import "sync/atomic"

// Effect represents a reactive side effect.
//
// An effect runs once when created and again, synchronously, every time a
// signal it has read changes. Subscriptions made by earlier runs are kept;
// only Dispose releases them, and then lazily: each signal drops a disposed
// effect the next time it notifies.
type Effect struct {
	id uint64

	// fn is the effect body.
	fn func()

	// disposed is the tombstone checked by notifying signals.
	disposed atomic.Bool

	// runs counts completed and in-flight executions.
	runs atomic.Uint64
}

// CreateEffect creates an effect and runs it immediately.
// The returned effect's Dispose method is its disposer.
//
// Example:
//
//	e := CreateEffect(func() {
//	    fmt.Println("count is", count.Get())
//	})
//	defer e.Dispose()
func CreateEffect(fn func()) *Effect {
	e := &Effect{
		id: nextID(),
		fn: fn,
	}
	e.run()
	return e
}

// run executes the body with e on top of this goroutine's effect stack.
// The frame is popped even if the body panics.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	ctx := getTrackingContext()
	pushEffect(ctx, e)
	defer popEffect(ctx)

	e.runs.Add(1)
	stats.effectRuns.Add(1)
	e.fn()
}

// Dispose marks the effect inert. It is safe to call more than once and from
// inside the effect's own body.
func (e *Effect) Dispose() {
	if !e.disposed.Swap(true) {
		stats.disposed.Add(1)
	}
}

// Disposed reports whether Dispose has been called.
func (e *Effect) Disposed() bool {
	return e.disposed.Load()
}

// ID returns the unique identifier for this effect.
func (e *Effect) ID() uint64 {
	return e.id
}

// Runs returns how many times the body has been entered.
func (e *Effect) Runs() uint64 {
	return e.runs.Load()
}
