package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sanjeetk-dev/videograb-server/internal/domain/model"
)

const (
	// listingGenerationKey holds a counter bumped on every invalidation.
	// Page keys embed the current generation, so bumping it orphans all
	// existing entries at once; the orphans expire by their own TTL.
	listingGenerationKey = "listing:generation"

	// listingPageKeyFormat is "listing:{generation}:page:{page}".
	listingPageKeyFormat = "listing:%d:page:%d"
)

// RedisListingCache implements ListingCache using Redis as the backing store.
// It is useful for deployments that restart frequently and want the page
// cache to survive the process.
type RedisListingCache struct {
	client *redis.Client
}

// NewRedisListingCache creates a new Redis-backed listing cache.
func NewRedisListingCache(client *redis.Client) *RedisListingCache {
	return &RedisListingCache{client: client}
}

// Get retrieves the snapshot for a page under the current generation.
// Returns nil, nil on cache miss.
func (c *RedisListingCache) Get(ctx context.Context, page int) (*model.CatalogPage, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return nil, err
	}

	data, err := c.client.Get(ctx, c.buildKey(gen, page)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var snapshot model.CatalogPage
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("deserialize catalog page: %w", err)
	}

	return &snapshot, nil
}

// Put stores a snapshot for a page under the current generation with the given TTL.
func (c *RedisListingCache) Put(ctx context.Context, page int, snapshot *model.CatalogPage, ttl time.Duration) error {
	gen, err := c.generation(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("serialize catalog page: %w", err)
	}

	if err := c.client.Set(ctx, c.buildKey(gen, page), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

// InvalidateAll bumps the generation counter, orphaning every cached page.
func (c *RedisListingCache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Incr(ctx, listingGenerationKey).Err(); err != nil {
		return fmt.Errorf("redis incr generation: %w", err)
	}
	return nil
}

// generation reads the current generation counter. A missing key means
// no invalidation has happened yet and maps to generation zero.
func (c *RedisListingCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, listingGenerationKey).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	return gen, nil
}

func (c *RedisListingCache) buildKey(generation int64, page int) string {
	return fmt.Sprintf(listingPageKeyFormat, generation, page)
}

// Compile-time verification that RedisListingCache implements ListingCache.
var _ ListingCache = (*RedisListingCache)(nil)
