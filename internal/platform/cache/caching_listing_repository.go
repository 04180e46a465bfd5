// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"assetwatch/internal/feature/market/domain/entity"
	"assetwatch/internal/feature/market/usecase"
)

// CachingListingRepository decorates a ListingRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. The refresh job invalidates the cache
// after every committed batch, so the TTL only bounds staleness when the job
// is not running.
type CachingListingRepository struct {
	inner     usecase.ListingRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time interface checks.
var (
	_ usecase.ListingRepository = (*CachingListingRepository)(nil)
	_ usecase.ListingCache      = (*CachingListingRepository)(nil)
)

// NewCachingListingRepository decorates a ListingRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "listings".
func NewCachingListingRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ListingRepository, namespace string) *CachingListingRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "listings"
	}
	return &CachingListingRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Listings retrieves the listing set, checking cache first then falling back
// to the database.
func (c *CachingListingRepository) Listings(ctx context.Context) ([]entity.Listing, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Listings(ctx)
	}

	key := c.cacheKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Listing
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.Listings(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Invalidate drops the cached listing set. Called by the refresh job after
// each committed batch.
func (c *CachingListingRepository) Invalidate(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.cacheKey()).Err()
}

// cacheKey generates the cache key for the listing set.
func (c *CachingListingRepository) cacheKey() string {
	return c.namespace + ":all"
}
