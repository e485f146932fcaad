// Package usecase implements price resolution for the prices feature.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"portfolio_backend/internal/feature/prices/domain"
	"portfolio_backend/internal/feature/prices/domain/entity"
)

const (
	// CacheTTL is the freshness window for cached prices. Entries older
	// than this must be refetched from the provider before use.
	CacheTTL = 24 * time.Hour

	// usdBRLSymbol is the provider symbol for the USD/BRL exchange quote.
	usdBRLSymbol = "USDBRL=X"
)

// QuoteProvider abstracts the external market-data source. A single call
// accepts one or many provider-formatted symbols and returns one quote per
// symbol the provider knows about.
// Following Go convention, the interface is defined by the consumer.
type QuoteProvider interface {
	Quote(ctx context.Context, symbols []string) ([]entity.Quote, error)
}

// PriceCacheRepository abstracts the durable price cache.
// FindByTicker returns (nil, nil) when no entry exists for the ticker.
type PriceCacheRepository interface {
	FindByTicker(ctx context.Context, ticker string) (*entity.CachedPrice, error)
	UpsertBatch(ctx context.Context, entries []entity.CachedPrice) error
}

// PriceUsecase resolves current prices in integer cents, consulting the
// cache first and falling back to the quote provider.
type PriceUsecase struct {
	provider QuoteProvider
	cache    PriceCacheRepository
}

// NewPriceUsecase creates a new PriceUsecase.
func NewPriceUsecase(provider QuoteProvider, cache PriceCacheRepository) *PriceUsecase {
	return &PriceUsecase{provider: provider, cache: cache}
}

// isFresh reports whether a cache entry is still inside the TTL window.
func isFresh(updatedAt time.Time) bool {
	return time.Since(updatedAt) < CacheTTL
}

// toCents converts a provider price in whole currency units to integer
// minor-currency units, rounding half away from zero.
func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// GetPriceCents resolves the current price of one ticker in integer cents.
//
// The cache is keyed by the original user-facing ticker while the provider
// is always called with the normalized symbol. A fresh cache hit short
// circuits the provider entirely. Cache writes are best effort: a failed
// persist is logged and the freshly fetched price is still returned.
func (pu *PriceUsecase) GetPriceCents(ctx context.Context, ticker string) (int64, error) {
	formatted, err := FormatProviderTicker(ticker)
	if err != nil {
		return 0, err
	}

	cached, err := pu.cache.FindByTicker(ctx, ticker)
	if err != nil {
		return 0, fmt.Errorf("price cache lookup for %s: %w", ticker, err)
	}
	if cached != nil && isFresh(cached.UpdatedAt) {
		return cached.ValueCents, nil
	}

	quotes, err := pu.provider.Quote(ctx, []string{formatted})
	if err != nil {
		return 0, fmt.Errorf("quote %s: %w", formatted, err)
	}
	if len(quotes) == 0 || quotes[0].RegularMarketPrice == nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrPriceNotFound, formatted)
	}

	cents := toCents(*quotes[0].RegularMarketPrice)

	entry := entity.CachedPrice{Ticker: ticker, ValueCents: cents, UpdatedAt: time.Now()}
	if err := pu.cache.UpsertBatch(ctx, []entity.CachedPrice{entry}); err != nil {
		slog.Warn("failed to persist price cache entry", "ticker", ticker, "error", err)
	}

	return cents, nil
}

// GetPriceCentsBatch resolves prices for many tickers with a single
// provider round trip for the cache misses.
//
// Tickers that cannot be resolved (no usable quote, unmappable symbol,
// invalid ticker) are logged and simply absent from the returned map; the
// batch itself only fails on a provider transport error. All freshly
// fetched entries are persisted in one batched write.
func (pu *PriceUsecase) GetPriceCentsBatch(ctx context.Context, tickers []string) (map[string]int64, error) {
	results := make(map[string]int64, len(tickers))

	var toFetch []string
	originalBySymbol := make(map[string]string)

	for _, ticker := range tickers {
		cached, err := pu.cache.FindByTicker(ctx, ticker)
		if err != nil {
			return nil, fmt.Errorf("price cache lookup for %s: %w", ticker, err)
		}
		if cached != nil && isFresh(cached.UpdatedAt) {
			results[ticker] = cached.ValueCents
			continue
		}

		formatted, err := FormatProviderTicker(ticker)
		if err != nil {
			slog.Warn("skipping invalid ticker in batch", "ticker", ticker)
			continue
		}
		// Deduplicate the formatted symbol set; repeated input tickers
		// map to the same provider symbol.
		if _, seen := originalBySymbol[formatted]; !seen {
			toFetch = append(toFetch, formatted)
		}
		originalBySymbol[formatted] = ticker
	}

	if len(toFetch) == 0 {
		return results, nil
	}

	quotes, err := pu.provider.Quote(ctx, toFetch)
	if err != nil {
		return nil, fmt.Errorf("batch quote: %w", err)
	}

	now := time.Now()
	entries := make([]entity.CachedPrice, 0, len(quotes))
	for _, q := range quotes {
		if q.RegularMarketPrice == nil {
			slog.Warn("no quote returned for symbol", "symbol", q.Symbol)
			continue
		}
		original, ok := originalBySymbol[q.Symbol]
		if !ok {
			slog.Warn("unmapped symbol in batch response", "symbol", q.Symbol)
			continue
		}

		cents := toCents(*q.RegularMarketPrice)
		results[original] = cents
		entries = append(entries, entity.CachedPrice{
			Ticker:     original,
			ValueCents: cents,
			UpdatedAt:  now,
		})
	}

	if len(entries) > 0 {
		if err := pu.cache.UpsertBatch(ctx, entries); err != nil {
			slog.Warn("failed to persist batch price cache entries", "count", len(entries), "error", err)
		}
	}

	return results, nil
}

// GetBRLToUSDRate returns the BRL to USD conversion rate, i.e. the inverse
// of the USD/BRL market quote. The rate is not cached: recalculation always
// works with the latest exchange quote.
func (pu *PriceUsecase) GetBRLToUSDRate(ctx context.Context) (float64, error) {
	quotes, err := pu.provider.Quote(ctx, []string{usdBRLSymbol})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
	}
	if len(quotes) == 0 || quotes[0].RegularMarketPrice == nil || *quotes[0].RegularMarketPrice == 0 {
		return 0, domain.ErrRateUnavailable
	}
	return 1 / *quotes[0].RegularMarketPrice, nil
}
