package internal

import (
	"sync"
	"time"
)

// Single-slot TTL memoization. Refresh is lazy: the first caller after
// expiry recomputes, and concurrent callers may race to a redundant fetch.
// Stores are last-writer-wins. Expired values are retained so a total
// upstream outage can fall back to the last known artifact.
type cache[T any] struct {
	mu        sync.Mutex
	ttl       time.Duration
	value     T
	fetchedAt time.Time
}

func newCache[T any](ttl time.Duration) *cache[T] {
	return &cache[T]{ttl: ttl}
}

// fresh returns the cached value if it is within its TTL.
func (c *cache[T]) fresh(now time.Time) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fetchedAt.IsZero() || now.Sub(c.fetchedAt) >= c.ttl {
		var zero T
		return zero, false
	}
	return c.value, true
}

// last returns the most recent value regardless of age.
func (c *cache[T]) last() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, !c.fetchedAt.IsZero()
}

func (c *cache[T]) store(value T, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.fetchedAt = now
}
