package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/sanjeetk-dev/videograb-server/internal/domain/model"
	"github.com/sanjeetk-dev/videograb-server/internal/domain/repository"
	"github.com/sanjeetk-dev/videograb-server/internal/infrastructure/cache"
	"github.com/sanjeetk-dev/videograb-server/internal/infrastructure/metrics"
)

// ListingService serves paginated catalog snapshots for the read API.
type ListingService interface {
	// ListPage returns the snapshot for a page. Pages below 1 are
	// normalized to 1, never rejected.
	ListPage(ctx context.Context, page int) (*model.CatalogPage, error)
}

// ListingServiceConfig holds configuration for ListingService.
type ListingServiceConfig struct {
	// PerPage is the fixed page size.
	PerPage int
	// CacheTTL bounds the staleness of a cached snapshot.
	CacheTTL time.Duration
}

// DefaultListingServiceConfig returns the default configuration.
func DefaultListingServiceConfig() ListingServiceConfig {
	return ListingServiceConfig{
		PerPage:  30,
		CacheTTL: 5 * time.Minute,
	}
}

type listingService struct {
	repo    repository.MediaRepository
	cache   cache.ListingCache
	sfGroup singleflight.Group

	perPage  int
	cacheTTL time.Duration
}

// NewListingService creates a new ListingService instance.
func NewListingService(
	repo repository.MediaRepository,
	listingCache cache.ListingCache,
	cfg ListingServiceConfig,
) ListingService {
	return &listingService{
		repo:     repo,
		cache:    listingCache,
		perPage:  cfg.PerPage,
		cacheTTL: cfg.CacheTTL,
	}
}

// ListPage returns the snapshot for a page, cache-aside with singleflight.
// Concurrent requests for the same page within a TTL window hit the store
// at most once.
func (s *listingService) ListPage(ctx context.Context, page int) (*model.CatalogPage, error) {
	if page < 1 {
		page = 1
	}

	result, err, shared := s.sfGroup.Do(strconv.Itoa(page), func() (any, error) {
		return s.fetchPage(ctx, page)
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		return nil, err
	}

	return result.(*model.CatalogPage), nil
}

// fetchPage implements the cache-aside read for one page.
func (s *listingService) fetchPage(ctx context.Context, page int) (*model.CatalogPage, error) {
	snapshot, err := s.cache.Get(ctx, page)
	if err != nil {
		// Cache trouble degrades to a store read.
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError, metrics.CacheTypeListing).Inc()
		slog.Warn("listing cache get failed, falling back to store", "page", page, "error", err)
	}
	if snapshot != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit, metrics.CacheTypeListing).Inc()
		return snapshot, nil
	}
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss, metrics.CacheTypeListing).Inc()

	var (
		records []*model.MediaRecord
		total   int64
	)

	// Page content and total count are independent reads; fetch them
	// concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.repo.ListPage(gctx, (page-1)*s.perPage, s.perPage)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch catalog page %d: %w", page, err)
	}

	if records == nil {
		records = []*model.MediaRecord{}
	}

	snapshot = &model.CatalogPage{
		Page:       page,
		PerPage:    s.perPage,
		Total:      total,
		TotalPages: int((total + int64(s.perPage) - 1) / int64(s.perPage)),
		Items:      records,
	}

	if err := s.cache.Put(ctx, page, snapshot, s.cacheTTL); err != nil {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpPut, metrics.CacheStatusError, metrics.CacheTypeListing).Inc()
		slog.Warn("failed to cache catalog page", "page", page, "error", err)
	} else {
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpPut, metrics.CacheStatusSuccess, metrics.CacheTypeListing).Inc()
	}

	return snapshot, nil
}
