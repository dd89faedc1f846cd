package reactive

import (
	"sync"
	"testing"
)

func TestSignalBasic(t *testing.T) {
	count := NewSignal(0)

	if count.Get() != 0 {
		t.Errorf("expected initial value 0, got %d", count.Get())
	}

	count.Set(5)
	if count.Get() != 5 {
		t.Errorf("expected value 5, got %d", count.Get())
	}

	count.Update(func(n int) int { return n * 2 })
	if count.Get() != 10 {
		t.Errorf("expected value 10, got %d", count.Get())
	}
}

func TestSignalRoundTrip(t *testing.T) {
	type point struct{ X, Y int }

	if got := NewSignal("hello").Get(); got != "hello" {
		t.Errorf("string: got %q", got)
	}
	if got := NewSignal(point{1, 2}).Get(); got != (point{1, 2}) {
		t.Errorf("struct: got %+v", got)
	}
	if got := NewSignal([]int{1, 2, 3}).Get(); len(got) != 3 || got[2] != 3 {
		t.Errorf("slice: got %v", got)
	}
	var nilPtr *point
	if got := NewSignal(nilPtr).Get(); got != nil {
		t.Errorf("nil pointer: got %v", got)
	}
}

func TestSignalNotifiesOncePerChange(t *testing.T) {
	count := NewSignal(0)
	runs := 0
	CreateEffect(func() {
		_ = count.Get()
		runs++
	})

	count.Set(1)
	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}

	// Same value should not notify
	count.Set(1)
	if runs != 2 {
		t.Errorf("same value should not notify, got %d runs", runs)
	}

	count.Update(func(n int) int { return n })
	if runs != 2 {
		t.Errorf("identity update should not notify, got %d runs", runs)
	}

	count.Set(2)
	if runs != 3 {
		t.Errorf("expected 3 runs, got %d", runs)
	}
}

func TestSignalPeek(t *testing.T) {
	count := NewSignal(42)
	runs := 0
	CreateEffect(func() {
		if count.Peek() != 42 && runs == 0 {
			t.Errorf("unexpected peek value")
		}
		runs++
	})

	count.Set(100)
	if runs != 1 {
		t.Errorf("Peek should not subscribe, got %d runs", runs)
	}
}

func TestSignalNoTrackingOutsideEffect(t *testing.T) {
	count := NewSignal(0)
	_ = count.Get()

	if n := count.Subscribers(); n != 0 {
		t.Errorf("expected 0 subscribers after untracked read, got %d", n)
	}
}

func TestSignalDeduplicateSubscription(t *testing.T) {
	count := NewSignal(0)
	runs := 0
	CreateEffect(func() {
		_ = count.Get()
		_ = count.Get()
		_ = count.Get()
		runs++
	})

	if n := count.Subscribers(); n != 1 {
		t.Errorf("expected 1 subscriber, got %d", n)
	}

	count.Set(1)
	if runs != 2 {
		t.Errorf("expected a single rerun, got %d runs", runs)
	}
}

func TestSignalCustomEquals(t *testing.T) {
	type user struct {
		ID   int
		Name string
	}

	u := NewSignal(user{ID: 1, Name: "Alice"}).WithEquals(func(a, b user) bool {
		return a.ID == b.ID
	})

	runs := 0
	CreateEffect(func() {
		_ = u.Get()
		runs++
	})

	u.Set(user{ID: 1, Name: "Alice Smith"})
	if runs != 1 {
		t.Errorf("same ID should not notify, got %d runs", runs)
	}

	u.Set(user{ID: 2, Name: "Bob"})
	if runs != 2 {
		t.Errorf("different ID should notify, got %d runs", runs)
	}
}

func TestSignalSliceEquality(t *testing.T) {
	items := NewSignal([]string{"a"})
	runs := 0
	CreateEffect(func() {
		_ = items.Get()
		runs++
	})

	items.Set([]string{"a"})
	if runs != 1 {
		t.Errorf("deep-equal slice should not notify, got %d runs", runs)
	}

	items.Set([]string{"a", "b"})
	if runs != 2 {
		t.Errorf("longer slice should notify, got %d runs", runs)
	}
}

func TestSignalPointerIdentity(t *testing.T) {
	type todo struct{ Text string }
	a := &todo{Text: "x"}
	b := &todo{Text: "x"}

	s := NewSignal(a)
	runs := 0
	CreateEffect(func() {
		_ = s.Get()
		runs++
	})

	s.Set(a)
	if runs != 1 {
		t.Errorf("same pointer should not notify, got %d runs", runs)
	}
	s.Set(b)
	if runs != 2 {
		t.Errorf("different pointer should notify, got %d runs", runs)
	}
}

func TestSignalReentrantWrite(t *testing.T) {
	a := NewSignal(0)
	b := NewSignal(0)

	// Writes a during its own notification, but converges.
	CreateEffect(func() {
		if v := a.Get(); v < 3 {
			a.Set(v + 1)
		}
	})
	if a.Get() != 3 {
		t.Errorf("expected a to settle at 3, got %d", a.Get())
	}

	// Chained write into another signal.
	CreateEffect(func() {
		b.Set(a.Get() * 10)
	})
	a.Set(5)
	if b.Get() != 50 {
		t.Errorf("expected b = 50, got %d", b.Get())
	}
}

func TestSignalSubscribersInInsertionOrder(t *testing.T) {
	s := NewSignal(0)
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		CreateEffect(func() {
			if s.Get() > 0 {
				order = append(order, i)
			}
		})
	}

	s.Set(1)
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("expected [0 1 2], got %v", order)
	}
}

func TestSignalConcurrentAccess(t *testing.T) {
	count := NewSignal(0)
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Add(count, 1)
		}()
		go func() {
			defer wg.Done()
			_ = count.Get()
		}()
	}
	wg.Wait()

	if count.Get() != 50 {
		t.Errorf("expected 50, got %d", count.Get())
	}
}

func TestSliceHelpers(t *testing.T) {
	items := NewSignal([]int{1, 2, 3})

	Append(items, 4, 5)
	if got := items.Get(); len(got) != 5 || got[4] != 5 {
		t.Errorf("Append: got %v", got)
	}

	RemoveWhere(items, func(n int) bool { return n%2 == 0 })
	if got := items.Get(); len(got) != 3 || got[0] != 1 || got[1] != 3 || got[2] != 5 {
		t.Errorf("RemoveWhere: got %v", got)
	}

	UpdateWhere(items, func(n int) bool { return n == 3 }, func(n int) int { return 30 })
	if got := items.Get(); got[1] != 30 {
		t.Errorf("UpdateWhere: got %v", got)
	}

	flag := NewSignal(false)
	Toggle(flag)
	if !flag.Get() {
		t.Error("Toggle should flip false to true")
	}
}

func TestAppendDoesNotAlias(t *testing.T) {
	base := make([]int, 1, 8)
	items := NewSignal(base)

	Append(items, 2)
	base = append(base, 99)

	if got := items.Get(); got[1] != 2 {
		t.Errorf("Append shared the caller's backing array: %v", got)
	}
}

func TestSignalDynamicTypeChange(t *testing.T) {
	s := NewSignal[any](false)
	runs := 0
	CreateEffect(func() {
		s.Get()
		runs++
	})

	s.Set("on")
	s.Set(nil)
	s.Set(nil)
	s.Set(1)

	if runs != 4 {
		t.Errorf("runs = %d, want 4", runs)
	}
}
