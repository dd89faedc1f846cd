// Package reactive provides the fine-grained reactive core for smallie.
//
// Reading a signal while an effect runs subscribes that effect; writing a
// different value re-runs every subscriber synchronously, before Set returns.
// There is no batching and no deferred scheduling.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	count := NewSignal(0)
//	value := count.Get()  // read, subscribes the running effect
//	count.Set(5)          // write, notifies subscribers
//	count.Update(func(n int) int { return n + 1 })
//
// Effect runs a side effect now and whenever something it read changes:
//
//	e := CreateEffect(func() {
//	    fmt.Println("count is", count.Get())
//	})
//	e.Dispose()
//
// Computed[T] is a derived signal kept up to date by an internal effect:
//
//	doubled := NewComputed(func() int { return count.Get() * 2 })
//
// # Disposal
//
// Disposal is lazy. A disposed effect is never run again, but it stays in a
// signal's subscriber list until that signal next notifies, at which point it
// is culled. Subscriptions also accumulate across reruns of an effect.
//
// # Failure
//
// A panic inside an effect propagates to whoever wrote the signal. The
// notification loop for that write stops at the panicking subscriber.
//
// # Goroutines
//
// The stack of running effects is kept per goroutine. Signals may be read and
// written from several goroutines, but an effect tracks only reads made on the
// goroutine running it. Apps that share signals between goroutines confine
// writes to one of them, as the live server does per session.
package reactive
