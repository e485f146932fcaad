// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio_backend/internal/feature/prices/domain/entity"
	"portfolio_backend/internal/feature/prices/usecase"
)

// CachingPriceRepository decorates a PriceCacheRepository with Redis.
// Reads check Redis before the database; writes go through to both.
// Quotes are keyed per ticker, so a write-through keeps Redis consistent
// without invalidation scans.
type CachingPriceRepository struct {
	inner     usecase.PriceCacheRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PriceCacheRepository = (*CachingPriceRepository)(nil)

// NewCachingPriceRepository decorates a PriceCacheRepository with Redis
// caching. If ttl is 0 it defaults to the quote freshness window (24h).
// If namespace is empty, it uses "prices".
func NewCachingPriceRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PriceCacheRepository, namespace string) *CachingPriceRepository {
	if ttl <= 0 {
		ttl = usecase.CacheTTL
	}
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingPriceRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindByTicker retrieves a cached quote, checking Redis first and falling
// back to the database. A database miss is (nil, nil) like the inner
// repository.
func (c *CachingPriceRepository) FindByTicker(ctx context.Context, ticker string) (*entity.CachedPrice, error) {
	if c.rdb == nil {
		return c.inner.FindByTicker(ctx, ticker)
	}

	key := c.cacheKey(ticker)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.CachedPrice
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Drop the corrupted entry and fall through to the database.
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByTicker(ctx, ticker)
	if err != nil || out == nil {
		return out, err
	}

	// Best effort: a failed cache write must not fail the read.
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// UpsertBatch persists quotes to the database, then refreshes the Redis
// entries. Redis failures are not fatal; the database remains the source
// of truth.
func (c *CachingPriceRepository) UpsertBatch(ctx context.Context, prices []entity.CachedPrice) error {
	if err := c.inner.UpsertBatch(ctx, prices); err != nil {
		return err
	}
	if c.rdb == nil || len(prices) == 0 {
		return nil
	}

	for _, p := range prices {
		if b, err := json.Marshal(p); err == nil {
			_ = c.rdb.Set(ctx, c.cacheKey(p.Ticker), b, c.ttl).Err()
		}
	}
	return nil
}

// cacheKey generates the Redis key for a ticker.
func (c *CachingPriceRepository) cacheKey(ticker string) string {
	return c.namespace + ":" + safe(ticker)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
