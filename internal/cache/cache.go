// Package cache provides a small in-memory TTL cache used to memoize the
// category list between messages.
package cache

import (
	"sync"
	"time"
)

type item[T any] struct {
	expiresAt time.Time
	data      T
}

// TTLCache is a mutex-guarded map cache with per-entry expiry.
type TTLCache[T any] struct {
	items map[string]item[T]
	ttl   time.Duration
	mu    sync.Mutex
}

// New creates a TTL cache. Entries expire ttl after being set.
func New[T any](ttl time.Duration) *TTLCache[T] {
	return &TTLCache[T]{
		items: make(map[string]item[T]),
		ttl:   ttl,
	}
}

// Get retrieves a value from the cache.
func (c *TTLCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	entry, exists := c.items[key]
	if !exists {
		return zero, false
	}

	if time.Now().After(entry.expiresAt) {
		delete(c.items, key)
		return zero, false
	}

	return entry.data, true
}

// Set stores a value in the cache.
func (c *TTLCache[T]) Set(key string, data T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item[T]{
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete removes a key from the cache.
func (c *TTLCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Size returns the current number of items in the cache.
func (c *TTLCache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
