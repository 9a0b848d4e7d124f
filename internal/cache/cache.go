package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is an in-memory TTL cache. A read within the TTL returns the stored
// value; a read past the TTL misses, leaving recomputation to the caller.
// Writes replace entries atomically, so readers never observe a partial
// value. To avoid the map-memory-leak pattern a background janitor
// periodically rebuilds the map, dropping expired entries.
type Cache[V any] struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]entry[V]

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a cache whose entries live for ttl and starts the cleanup
// goroutine. Call Close when the cache is no longer needed.
func New[V any](ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		stop:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Get returns the cached value if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores a value under key for the cache's TTL, overwriting any
// previous entry.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Clear drops all entries unconditionally.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (c *Cache[V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// cleanup rebuilds the map every 5 minutes, keeping only live entries.
func (c *Cache[V]) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			fresh := make(map[string]entry[V], len(c.entries)/2)
			for k, v := range c.entries {
				if now.Before(v.expiresAt) {
					fresh[k] = v
				}
			}
			c.entries = fresh
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}
