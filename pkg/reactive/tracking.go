package reactive

import (
	"runtime"
	"sync"
)

// TrackingContext holds the reactive state for a goroutine.
// Each goroutine has its own stack of running effects, so independent
// goroutines (one per live session, for example) never attribute reads to
// each other's effects.
type TrackingContext struct {
	// stack holds the effects currently being evaluated, innermost last.
	// A signal read subscribes the top of the stack.
	stack []*Effect
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID returns a unique identifier for the current goroutine.
// The runtime stack header has the form "goroutine <id> [...]".
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current goroutine,
// creating it on first use.
func getTrackingContext() *TrackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*TrackingContext)
	}

	ctx := &TrackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// currentEffect returns the innermost running effect, or nil. A nil frame
// pushed by Untrack hides the effects below it.
func currentEffect() *Effect {
	v, ok := trackingContexts.Load(getGoroutineID())
	if !ok {
		return nil
	}
	ctx := v.(*TrackingContext)
	if len(ctx.stack) == 0 {
		return nil
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pushEffect makes e the target of subsequent reads on this goroutine.
func pushEffect(ctx *TrackingContext, e *Effect) {
	ctx.stack = append(ctx.stack, e)
}

// popEffect removes the innermost frame. Releases the context entirely when
// the stack empties so finished goroutines do not leak entries.
func popEffect(ctx *TrackingContext) {
	ctx.stack[len(ctx.stack)-1] = nil
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	if len(ctx.stack) == 0 {
		trackingContexts.Delete(getGoroutineID())
	}
}

// Depth returns how many effects are currently running on this goroutine.
func Depth() int {
	if ctx, ok := trackingContexts.Load(getGoroutineID()); ok {
		return len(ctx.(*TrackingContext).stack)
	}
	return 0
}

// Untrack runs fn with dependency tracking suspended: signals read inside fn
// do not subscribe the surrounding effect.
//
// Example:
//
//	CreateEffect(func() {
//	    n := count.Get()                    // tracked
//	    Untrack(func() { log(label.Get()) }) // not tracked
//	})
func Untrack(fn func()) {
	ctx := getTrackingContext()
	pushEffect(ctx, nil)
	defer popEffect(ctx)
	fn()
}
