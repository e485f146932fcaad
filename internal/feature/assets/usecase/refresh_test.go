package usecase

import (
	"context"
	"errors"
	"testing"

	"portfolio_backend/internal/feature/assets/domain/entity"
)

// countingPacer records how often the rate limiter was consulted.
type countingPacer struct {
	Calls int
}

func (p *countingPacer) WaitIfNeeded() { p.Calls++ }

func TestAssetUsecase_RefreshAll(t *testing.T) {
	ctx := context.Background()
	repo := newMockAssetRepository(
		entity.Asset{ID: 1, UserID: 7, Ticker: "PETR4", Type: stockType, Quantity: 10, AveragePriceCents: 3500, CurrentPriceCents: 3600, Currency: "BRL"},
		entity.Asset{ID: 2, UserID: 8, Ticker: "PETR4", Type: stockType, Quantity: 5, AveragePriceCents: 3000, CurrentPriceCents: 3600, Currency: "BRL"},
		entity.Asset{ID: 3, UserID: 7, Ticker: "AAPL", Type: stockType, Quantity: 2, AveragePriceCents: 18000, CurrentPriceCents: 18000, Currency: "USD"},
	)

	var batchCalls int
	var batchSizes []int
	prices := fixedPrices(map[string]int64{"PETR4": 3800, "AAPL": 19000})
	innerBatch := prices.GetPriceCentsBatchFunc
	prices.GetPriceCentsBatchFunc = func(ctx context.Context, tickers []string) (map[string]int64, error) {
		batchCalls++
		batchSizes = append(batchSizes, len(tickers))
		return innerBatch(ctx, tickers)
	}

	pacer := &countingPacer{}
	au := NewAssetUsecase(repo, defaultTypes(), prices)

	updated, err := au.RefreshAll(ctx, pacer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 3 {
		t.Errorf("expected 3 holdings updated, got %d", updated)
	}
	if batchCalls != 1 {
		t.Errorf("two distinct tickers should need one batch call, got %d", batchCalls)
	}
	if len(batchSizes) != 1 || batchSizes[0] != 2 {
		t.Errorf("duplicate tickers must be deduplicated: %v", batchSizes)
	}
	if pacer.Calls != 1 {
		t.Errorf("expected pacer to be consulted once per batch, got %d", pacer.Calls)
	}

	a, _ := repo.FindByID(ctx, 1)
	if a.CurrentPriceCents != 3800 {
		t.Errorf("price not refreshed: %+v", a)
	}
	if a.CurrentValueCents != 38000 || a.ResultCents != 3000 {
		t.Errorf("derived fields not refreshed: %+v", a)
	}
	if a.PortfolioPercentage == 0 {
		t.Error("expected weights to be rebalanced after refresh")
	}
}

func TestAssetUsecase_RefreshAll_UnresolvedTickerKeepsStalePrice(t *testing.T) {
	ctx := context.Background()
	repo := newMockAssetRepository(
		entity.Asset{ID: 1, UserID: 7, Ticker: "PETR4", Type: stockType, Quantity: 10, AveragePriceCents: 3500, CurrentPriceCents: 3600, CurrentValueCents: 36000, Currency: "BRL"},
		entity.Asset{ID: 2, UserID: 7, Ticker: "DELISTED3", Type: stockType, Quantity: 1, AveragePriceCents: 100, CurrentPriceCents: 120, CurrentValueCents: 120, Currency: "BRL"},
	)
	prices := fixedPrices(map[string]int64{"PETR4": 3800})

	au := NewAssetUsecase(repo, defaultTypes(), prices)

	updated, err := au.RefreshAll(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 1 {
		t.Errorf("expected 1 holding updated, got %d", updated)
	}

	stale, _ := repo.FindByID(ctx, 2)
	if stale.CurrentPriceCents != 120 {
		t.Errorf("unresolved ticker must keep its last price: %+v", stale)
	}
}

func TestAssetUsecase_RefreshAll_ProviderFailureAborts(t *testing.T) {
	ctx := context.Background()
	repo := newMockAssetRepository(
		entity.Asset{ID: 1, UserID: 7, Ticker: "PETR4", Type: stockType, Quantity: 10, AveragePriceCents: 3500, CurrentPriceCents: 3600, Currency: "BRL"},
	)
	prices := &mockPriceService{
		GetPriceCentsBatchFunc: func(ctx context.Context, tickers []string) (map[string]int64, error) {
			return nil, errors.New("upstream down")
		},
	}

	au := NewAssetUsecase(repo, defaultTypes(), prices)

	if _, err := au.RefreshAll(ctx, nil); err == nil {
		t.Fatal("expected provider failure to abort the refresh")
	}

	a, _ := repo.FindByID(ctx, 1)
	if a.CurrentPriceCents != 3600 {
		t.Errorf("nothing should be persisted on failure: %+v", a)
	}
}

func TestAssetUsecase_RefreshAll_Empty(t *testing.T) {
	ctx := context.Background()
	prices := &mockPriceService{}

	au := NewAssetUsecase(newMockAssetRepository(), defaultTypes(), prices)

	updated, err := au.RefreshAll(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 0 {
		t.Errorf("expected no updates, got %d", updated)
	}
	if prices.RateCalls != 0 {
		t.Error("empty portfolio must not fetch the conversion rate")
	}
}
