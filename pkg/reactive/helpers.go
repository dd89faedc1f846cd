package reactive

// Append adds items to the end of a slice signal.
// The result never shares a backing array with the previous value.
func Append[T any](s *Signal[[]T], items ...T) {
	s.Update(func(current []T) []T {
		next := make([]T, 0, len(current)+len(items))
		next = append(next, current...)
		return append(next, items...)
	})
}

// RemoveWhere drops every element for which pred returns true.
func RemoveWhere[T any](s *Signal[[]T], pred func(T) bool) {
	s.Update(func(current []T) []T {
		next := make([]T, 0, len(current))
		for _, item := range current {
			if !pred(item) {
				next = append(next, item)
			}
		}
		return next
	})
}

// UpdateWhere replaces every element matching pred with fn(element).
func UpdateWhere[T any](s *Signal[[]T], pred func(T) bool, fn func(T) T) {
	s.Update(func(current []T) []T {
		next := make([]T, len(current))
		for i, item := range current {
			if pred(item) {
				item = fn(item)
			}
			next[i] = item
		}
		return next
	})
}

// Toggle flips a boolean signal.
func Toggle(s *Signal[bool]) {
	s.Update(func(b bool) bool { return !b })
}

// Number is the set of types Add works on.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Add increments a numeric signal by delta.
func Add[N Number](s *Signal[N], delta N) {
	s.Update(func(n N) N { return n + delta })
}
