package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheExpiry(t *testing.T) {
	c := newCache[string](5 * time.Minute)
	now := time.Date(2025, time.June, 26, 9, 0, 0, 0, time.UTC)

	_, ok := c.fresh(now)
	assert.False(t, ok)

	c.store("merged", now)

	v, ok := c.fresh(now.Add(4 * time.Minute))
	assert.True(t, ok)
	assert.Equal(t, "merged", v)

	_, ok = c.fresh(now.Add(5 * time.Minute))
	assert.False(t, ok)

	// The stale value stays reachable for outage fallback.
	v, ok = c.last()
	assert.True(t, ok)
	assert.Equal(t, "merged", v)
}

func TestCacheLastWriterWins(t *testing.T) {
	c := newCache[string](time.Minute)
	now := time.Date(2025, time.June, 26, 9, 0, 0, 0, time.UTC)

	c.store("first", now)
	c.store("second", now.Add(time.Second))

	v, ok := c.fresh(now.Add(2 * time.Second))
	assert.True(t, ok)
	assert.Equal(t, "second", v)
}
