// Package di provides dependency injection factories for creating
// application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	priceadapters "portfolio_backend/internal/feature/prices/adapters"
	"portfolio_backend/internal/feature/prices/adapters/yahoo"
	"portfolio_backend/internal/feature/prices/usecase"
	"portfolio_backend/internal/platform/cache"
	infrahttp "portfolio_backend/internal/platform/http"
)

// NewQuoteProvider creates a fully configured Yahoo Finance client.
func NewQuoteProvider() *yahoo.YahooQuotes {
	cfg := yahoo.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return yahoo.NewYahooQuotes(cfg, httpClient)
}

// NewPriceCacheRepository creates the quote cache. With Redis available the
// GORM repository is wrapped in a write-through Redis layer; without it,
// reads go straight to the database.
func NewPriceCacheRepository(rdb *redis.Client, db *gorm.DB) usecase.PriceCacheRepository {
	inner := priceadapters.NewPriceCacheRepository(db)
	if rdb != nil {
		return cache.NewCachingPriceRepository(rdb, usecase.CacheTTL, inner, "prices")
	}
	return inner
}

// NewPriceUsecase wires the quote provider and cache into the price
// resolution usecase.
func NewPriceUsecase(rdb *redis.Client, db *gorm.DB) *usecase.PriceUsecase {
	return usecase.NewPriceUsecase(NewQuoteProvider(), NewPriceCacheRepository(rdb, db))
}
