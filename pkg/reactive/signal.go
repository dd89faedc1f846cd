package reactive

import (
	"sync"
	"sync/atomic"
)

var idCounter atomic.Uint64

// nextID returns a process-unique identifier for signals and effects.
func nextID() uint64 {
	return idCounter.Add(1)
}

// signalBase provides type-erased subscriber management.
// It is embedded in Signal[T] so the notification loop is written once.
type signalBase struct {
	id uint64

	// subs are the effects subscribed to this signal, in subscription order.
	subs []*Effect

	// subMu protects subs. It is never held while a subscriber runs.
	subMu sync.Mutex
}

// subscribe adds an effect to the subscribers, once.
func (s *signalBase) subscribe(e *Effect) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, existing := range s.subs {
		if existing == e {
			return
		}
	}
	s.subs = append(s.subs, e)
}

// notifySubscribers runs every live subscriber synchronously and culls the
// disposed ones it meets on the way.
//
// The subscriber list is copied before the loop so a subscriber can write this
// signal (or subscribe to it) without deadlocking. A panicking subscriber
// aborts the loop; the remaining subscribers are not run for this write.
func (s *signalBase) notifySubscribers() {
	s.subMu.Lock()
	subs := make([]*Effect, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	stats.notifications.Add(1)

	var dead []*Effect
	for _, sub := range subs {
		if sub.Disposed() {
			dead = append(dead, sub)
			continue
		}
		sub.run()
	}

	if len(dead) > 0 {
		s.prune(dead)
	}
}

// prune drops disposed effects from the subscriber list.
func (s *signalBase) prune(dead []*Effect) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	kept := s.subs[:0]
	for _, sub := range s.subs {
		drop := false
		for _, d := range dead {
			if sub == d {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, sub)
		}
	}
	for i := len(kept); i < len(s.subs); i++ {
		s.subs[i] = nil
	}
	s.subs = kept
	stats.pruned.Add(uint64(len(dead)))
}

// subscriberCount returns the number of subscribers currently recorded,
// disposed or not.
func (s *signalBase) subscriberCount() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}

// track subscribes the running effect, if any.
func (s *signalBase) track() {
	if e := currentEffect(); e != nil && !e.Disposed() {
		s.subscribe(e)
	}
}

// Signal is a reactive value container.
// Reading a Signal with Get while an effect runs subscribes that effect; every
// later Set with a different value re-runs it synchronously.
type Signal[T any] struct {
	base signalBase

	// value is the current signal value.
	value T

	// mu protects value.
	mu sync.RWMutex

	// equal decides whether a write changes the value.
	// If nil, defaultEquals is used.
	equal func(T, T) bool
}

// NewSignal creates a new signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		base:  signalBase{id: nextID()},
		value: initial,
	}
}

// Get returns the current value and subscribes the running effect.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()

	// Track after releasing the value lock.
	s.base.track()
	return value
}

// GetAny is Get with the type erased.
func (s *Signal[T]) GetAny() any {
	return s.Get()
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies subscribers if it changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	stats.writes.Add(1)
	if changed {
		s.base.notifySubscribers()
	}
}

// Update computes the next value from the current one.
// The function runs under the signal's write lock and must not touch s.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	oldValue := s.value
	newValue := fn(oldValue)
	changed := !s.equals(oldValue, newValue)
	if changed {
		s.value = newValue
	}
	s.mu.Unlock()

	stats.writes.Add(1)
	if changed {
		s.base.notifySubscribers()
	}
}

// WithEquals returns the signal configured with a custom equality function.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.equal = fn
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

// Subscribers returns how many effects are recorded as subscribers. Disposed
// effects count until the next notification culls them.
func (s *Signal[T]) Subscribers() int {
	return s.base.subscriberCount()
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// Getter is the type-erased read side shared by Signal and Computed.
// The template binder treats any Getter as a reactive value.
type Getter interface {
	GetAny() any
}

var (
	_ Getter = (*Signal[int])(nil)
	_ Getter = (*Computed[int])(nil)
)
