// Package cache provides a small typed wrapper around a bounded
// expire-after-write LRU cache. Repositories use it to keep hot entities in
// memory; the backing store remains the source of truth and writers must
// update or invalidate affected entries themselves.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a bounded cache whose entries expire a fixed duration after they
// were written. It is safe for concurrent use.
type Cache[K comparable, V any] struct {
	lru *expirable.LRU[K, V]
}

// New creates a cache holding at most size entries, each expiring ttl after
// it was last written.
func New[K comparable, V any](size int, ttl time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		lru: expirable.NewLRU[K, V](size, nil, ttl),
	}
}

// Get returns the cached value for key, if present and not expired.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	return c.lru.Get(key)
}

// Put stores a value under key, resetting its expiry.
func (c *Cache[K, V]) Put(key K, value V) {
	c.lru.Add(key, value)
}

// Remove drops the entry for key, if any.
func (c *Cache[K, V]) Remove(key K) {
	c.lru.Remove(key)
}

// Purge drops every entry.
func (c *Cache[K, V]) Purge() {
	c.lru.Purge()
}

// Len returns the number of live entries.
func (c *Cache[K, V]) Len() int {
	return c.lru.Len()
}
