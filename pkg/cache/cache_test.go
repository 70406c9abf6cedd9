package cache_test

import (
	"testing"
	"time"

	"pricelist/pkg/cache"

	"github.com/stretchr/testify/assert"
)

func TestCache_PutGetRemove(t *testing.T) {
	c := cache.New[string, int](10, time.Minute)

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Put("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	c.Put("a", 2)
	v, _ = c.Get("a")
	assert.Equal(t, 2, v)

	c.Remove("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestCache_ExpiresAfterWrite(t *testing.T) {
	c := cache.New[string, string](10, 50*time.Millisecond)

	c.Put("k", "v")
	_, ok := c.Get("k")
	assert.True(t, ok)

	time.Sleep(120 * time.Millisecond)

	_, ok = c.Get("k")
	assert.False(t, ok, "entry should expire after the write TTL")
}

func TestCache_BoundedCapacity(t *testing.T) {
	c := cache.New[int, int](2, time.Minute)

	c.Put(1, 1)
	c.Put(2, 2)
	c.Put(3, 3) // evicts the least recently used entry

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(1)
	assert.False(t, ok, "oldest entry should have been evicted")
}

func TestCache_Purge(t *testing.T) {
	c := cache.New[string, int](10, time.Minute)
	c.Put("a", 1)
	c.Put("b", 2)

	c.Purge()

	assert.Equal(t, 0, c.Len())
}
