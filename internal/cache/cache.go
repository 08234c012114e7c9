// ABOUTME: Keyed read-through cache for tracker resources
// ABOUTME: Entries live until explicit invalidation; fetches are de-duplicated per key

package cache

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value any
	fresh bool
}

// Cache holds last-known server values keyed by Key. A fresh entry is
// served without a network call; a stale or missing entry triggers the
// caller-supplied fetch. There is no time-based expiry: entries stay fresh
// until Invalidate or Clear. Concurrent reads for the same key while a
// fetch is in flight share that one fetch (singleflight, as in the
// thundering-herd guard on key refresh).
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]entry
	group   singleflight.Group
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[Key]entry),
	}
}

// Get returns the cached value for key, fetching through fn when the entry
// is missing or stale. Only a successful fetch populates the entry; errors
// propagate without touching the cache.
func (c *Cache) Get(ctx context.Context, key Key, fn func(context.Context) (any, error)) (any, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && e.fresh {
		slog.Debug("Cache hit", "key", key.String())
		return e.value, nil
	}
	slog.Debug("Cache miss", "key", key.String())

	val, err, _ := c.group.Do(key.String(), func() (any, error) {
		// A concurrent flight may have refreshed the entry already.
		c.mu.RLock()
		e, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && e.fresh {
			return e.value, nil
		}

		fetched, err := fn(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry{value: fetched, fresh: true}
		c.mu.Unlock()
		slog.Debug("Cache set", "key", key.String())
		return fetched, nil
	})
	if err != nil {
		return nil, err
	}
	return val, nil
}

// Peek returns the entry's value if one exists, fresh or stale, without
// triggering a fetch. Views can render stale data while a refetch runs.
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Invalidate marks the entry stale so the next Get refetches. The stale
// value stays readable through Peek until the refetch completes.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return
	}
	e.fresh = false
	c.entries[key] = e
	slog.Debug("Cache invalidated", "key", key.String())
}

// Clear drops every entry. Used at logout so no tenant data survives the
// session.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]entry)
}
