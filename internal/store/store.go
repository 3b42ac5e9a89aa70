// internal/store/store.go
//
// Persistence adapter for the game state.
// The engine only needs a durable key-value map of JSON documents:
//   - Get returns the stored bytes for one key.
//   - Apply writes a batch of puts/deletes atomically.
//
// Backends: memory (tests, ephemeral play), SQLite (default), bbolt.
// Any backend can be wrapped by Cached for an ARC read cache.

package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// ErrNotFound is returned by Get when a key has never been written or was deleted.
var ErrNotFound = errors.New("store: not found")

// Batch is a set of writes applied together. A nil value deletes the key.
type Batch map[string][]byte

// Put records a write of v to key.
func (b Batch) Put(key string, v []byte) { b[key] = v }

// Delete records the removal of key.
func (b Batch) Delete(key string) { b[key] = nil }

// Keys returns the batch keys in sorted order, so backends write deterministically.
func (b Batch) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Store defines the persistence interface for the game state.
type Store interface {
	// Get retrieves the value stored at key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Apply writes every entry of b in one transaction: either all land or none do.
	Apply(ctx context.Context, b Batch) error

	// Close releases the backend.
	Close() error
}

// Drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Open constructs the backend named by driver at path, wrapped in an ARC cache
// of cacheSize entries when cacheSize > 0.
func Open(driver, path string, cacheSize int) (Store, error) {
	var (
		s   Store
		err error
	)
	switch driver {
	case DriverMemory:
		s = NewMemoryStore()
	case DriverSQLite:
		s, err = OpenSQLite(path)
	case DriverBolt:
		s, err = OpenBolt(path)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if cacheSize <= 0 {
		return s, nil
	}
	c, err := NewCached(s, cacheSize)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return c, nil
}
