package reactive

// Computed is a signal whose value is derived from other signals.
//
// The value is seeded by one evaluation of the compute function and then kept
// in sync by an internal effect that writes every recomputation back into the
// underlying signal. Only that effect writes; Computed has no public setter.
type Computed[T any] struct {
	sig    *Signal[T]
	effect *Effect
}

// NewComputed creates a derived signal.
//
// Example:
//
//	doubled := NewComputed(func() int { return count.Get() * 2 })
//	doubled.Get() // tracks like a plain signal read
func NewComputed[T any](fn func() T) *Computed[T] {
	var seed T
	Untrack(func() { seed = fn() })

	c := &Computed[T]{sig: NewSignal(seed)}
	c.effect = CreateEffect(func() {
		c.sig.Set(fn())
	})
	return c
}

// Get returns the derived value and subscribes the running effect.
func (c *Computed[T]) Get() T {
	return c.sig.Get()
}

// GetAny is Get with the type erased.
func (c *Computed[T]) GetAny() any {
	return c.sig.Get()
}

// Peek returns the derived value without subscribing.
func (c *Computed[T]) Peek() T {
	return c.sig.Peek()
}

// WithEquals sets the equality used to decide whether a recomputation is a
// change worth propagating.
func (c *Computed[T]) WithEquals(fn func(T, T) bool) *Computed[T] {
	c.sig.WithEquals(fn)
	return c
}

// Dispose stops recomputation. The last value stays readable.
func (c *Computed[T]) Dispose() {
	c.effect.Dispose()
}

// ID returns the identifier of the underlying signal.
func (c *Computed[T]) ID() uint64 {
	return c.sig.ID()
}
