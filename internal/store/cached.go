package store

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// Cached puts an ARC cache in front of another Store. Reads are served from
// the cache when possible, including cached misses; writes go through to the
// backend first and only then update the cache.
type Cached struct {
	next  Store
	cache *lru.ARCCache
}

var _ Store = (*Cached)(nil)

// NewCached wraps next with a cache holding up to size keys.
func NewCached(next Store, size int) (*Cached, error) {
	c, err := lru.NewARC(size)
	if err != nil {
		return nil, fmt.Errorf("lru new instance of arc cache: %w", err)
	}
	return &Cached{next: next, cache: c}, nil
}

// miss marks a key the backend doesn't have.
type miss struct{}

// Get returns the cached value or loads it from the backend.
func (c *Cached) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.cache.Get(key); ok {
		b, ok := v.([]byte)
		if !ok {
			return nil, ErrNotFound
		}
		return append([]byte{}, b...), nil
	}
	v, err := c.next.Get(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		c.cache.Add(key, miss{})
		return nil, err
	case err != nil:
		return nil, err
	}
	c.cache.Add(key, append([]byte{}, v...))
	return v, nil
}

// Apply writes through. On failure the touched keys are evicted so the next
// read goes back to the backend.
func (c *Cached) Apply(ctx context.Context, b Batch) error {
	if err := c.next.Apply(ctx, b); err != nil {
		for k := range b {
			c.cache.Remove(k)
		}
		return err
	}
	for k, v := range b {
		if v == nil {
			c.cache.Add(k, miss{})
			continue
		}
		c.cache.Add(k, append([]byte{}, v...))
	}
	return nil
}

// Close closes the backend and drops the cache.
func (c *Cached) Close() error {
	c.cache.Purge()
	return c.next.Close()
}
