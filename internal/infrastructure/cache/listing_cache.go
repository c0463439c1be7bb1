package cache

import (
	"context"
	"time"

	"github.com/sanjeetk-dev/videograb-server/internal/domain/model"
)

// ListingCache defines the interface for caching paginated catalog snapshots.
// Entries expire after a fixed TTL and the whole cache is discarded the
// moment the catalog changes.
type ListingCache interface {
	// Get retrieves the snapshot for a page.
	// Returns nil, nil if the page is absent or its entry has expired (cache miss).
	Get(ctx context.Context, page int) (*model.CatalogPage, error)

	// Put stores a snapshot for a page with the specified TTL,
	// resetting its age to zero.
	Put(ctx context.Context, page int, snapshot *model.CatalogPage, ttl time.Duration) error

	// InvalidateAll discards every entry regardless of age.
	InvalidateAll(ctx context.Context) error
}
