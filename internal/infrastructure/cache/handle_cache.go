package cache

import "sync"

// HandleCache is a process-lifetime mapping from short public identifier to
// the internal media handle. It fills lazily on first resolution and never
// evicts: handles are immutable once assigned, so a cached value can never
// go stale. Misses are not cached, so an id that gains a record later
// becomes resolvable without a restart.
type HandleCache struct {
	mu      sync.RWMutex
	handles map[string]string
}

// NewHandleCache creates an empty handle cache.
func NewHandleCache() *HandleCache {
	return &HandleCache{
		handles: make(map[string]string),
	}
}

// Lookup returns the cached handle for a short id, if present.
func (c *HandleCache) Lookup(shortID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	handle, ok := c.handles[shortID]
	return handle, ok
}

// Store records the handle for a short id.
func (c *HandleCache) Store(shortID, handle string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handles[shortID] = handle
}

// Len reports the number of cached mappings.
func (c *HandleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handles)
}
