package game

// CountingSet is a multiset: it counts how many times each item was added.
// Items whose count drops to zero are removed, so Has and Len only see
// positive counts.
type CountingSet[T comparable] struct {
	items map[T]int
}

// NewCountingSet returns a set holding one count per element of initial.
func NewCountingSet[T comparable](initial ...T) *CountingSet[T] {
	s := &CountingSet[T]{items: make(map[T]int, len(initial))}
	for _, item := range initial {
		s.Add(item, 1)
	}
	return s
}

// Add increases the count of item by amt and returns the new count.
func (s *CountingSet[T]) Add(item T, amt int) int {
	next := s.items[item] + amt
	if next <= 0 {
		delete(s.items, item)
		return 0
	}
	s.items[item] = next
	return next
}

// Sub decreases the count of item by one and returns the new count.
// Subtracting from an absent item leaves the set unchanged and returns -1.
func (s *CountingSet[T]) Sub(item T) int {
	next := s.items[item] - 1
	switch {
	case next < 0:
		return -1
	case next == 0:
		delete(s.items, item)
		return 0
	}
	s.items[item] = next
	return next
}

// Get returns the current count of item, 0 when absent.
func (s *CountingSet[T]) Get(item T) int { return s.items[item] }

// Has reports whether item has a positive count.
func (s *CountingSet[T]) Has(item T) bool {
	_, ok := s.items[item]
	return ok
}

// Len is the number of distinct items with a positive count.
func (s *CountingSet[T]) Len() int { return len(s.items) }
