// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used in tests and when durability is not required.
//
// Characteristics:
//   - Values are copied on the way in and out, so callers can't alias stored bytes.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
)

// Memory is a map-based Store implementation.
type Memory struct {
	mu   sync.RWMutex      // guards data
	data map[string][]byte // keyed by storage key
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get looks up key and returns a copy of its value.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte{}, v...), nil
}

// Apply writes the whole batch under one lock.
func (m *Memory) Apply(ctx context.Context, b Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range b {
		if v == nil {
			delete(m.data, k)
			continue
		}
		m.data[k] = append([]byte{}, v...)
	}
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
