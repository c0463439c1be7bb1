package cache

import (
	"context"
	"sync"
	"time"

	"github.com/sanjeetk-dev/videograb-server/internal/domain/model"
)

// memoryEntry holds one cached page with its expiration deadline.
// Expiration is time-based, checked on read; there is no sliding window.
type memoryEntry struct {
	snapshot  *model.CatalogPage
	expiresAt time.Time
}

// MemoryListingCache implements ListingCache with an in-process map.
// This is the default backing for a single-process deployment.
type MemoryListingCache struct {
	mu      sync.RWMutex
	entries map[int]memoryEntry

	now func() time.Time // injectable for tests
}

// NewMemoryListingCache creates an empty in-memory listing cache.
func NewMemoryListingCache() *MemoryListingCache {
	return &MemoryListingCache{
		entries: make(map[int]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the snapshot for a page, or nil, nil if absent or expired.
// Expired entries are dropped on read.
func (c *MemoryListingCache) Get(_ context.Context, page int) (*model.CatalogPage, error) {
	c.mu.RLock()
	entry, ok := c.entries[page]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Put may have refreshed it.
		if current, ok := c.entries[page]; ok && c.now().After(current.expiresAt) {
			delete(c.entries, page)
		}
		c.mu.Unlock()
		return nil, nil
	}

	return entry.snapshot, nil
}

// Put stores a snapshot for a page, resetting its age.
func (c *MemoryListingCache) Put(_ context.Context, page int, snapshot *model.CatalogPage, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[page] = memoryEntry{
		snapshot:  snapshot,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// InvalidateAll discards every entry regardless of age.
func (c *MemoryListingCache) InvalidateAll(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]memoryEntry)
	return nil
}

// Compile-time verification that MemoryListingCache implements ListingCache.
var _ ListingCache = (*MemoryListingCache)(nil)
