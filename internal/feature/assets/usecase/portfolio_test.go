package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"portfolio_backend/internal/feature/assets/domain/entity"
	pricedomain "portfolio_backend/internal/feature/prices/domain"
)

func TestRecalculatePortfolio_WeightsSumTo100(t *testing.T) {
	ctx := context.Background()
	repo := newMockAssetRepository(
		entity.Asset{ID: 1, UserID: 7, Ticker: "PETR4", CurrentValueCents: 33333, Currency: "BRL"},
		entity.Asset{ID: 2, UserID: 7, Ticker: "VALE3", CurrentValueCents: 127001, Currency: "BRL"},
		entity.Asset{ID: 3, UserID: 7, Ticker: "AAPL", CurrentValueCents: 54120, Currency: "USD"},
		entity.Asset{ID: 4, UserID: 7, Ticker: "HGLG11", CurrentValueCents: 9999, Currency: "BRL"},
	)
	prices := &mockPriceService{
		GetBRLToUSDRateFunc: func(ctx context.Context) (float64, error) { return 0.19, nil },
	}

	au := NewAssetUsecase(repo, defaultTypes(), prices)
	if err := au.RecalculatePortfolio(ctx, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assets, _ := repo.FindByUser(ctx, 7)
	var sum float64
	for _, a := range assets {
		if a.PortfolioPercentage < 0 || a.PortfolioPercentage > 100 {
			t.Errorf("weight out of range for %s: %v", a.Ticker, a.PortfolioPercentage)
		}
		sum += a.PortfolioPercentage
	}
	if math.Abs(sum-100) > 0.011 {
		t.Errorf("weights sum to %v, want 100 within rounding tolerance", sum)
	}
}

func TestRecalculatePortfolio_UsdHoldingsSkipConversion(t *testing.T) {
	ctx := context.Background()
	// Equal cent values, but the BRL holding is worth a fifth in USD.
	repo := newMockAssetRepository(
		entity.Asset{ID: 1, UserID: 7, Ticker: "PETR4", CurrentValueCents: 10000, Currency: "BRL"},
		entity.Asset{ID: 2, UserID: 7, Ticker: "AAPL", CurrentValueCents: 10000, Currency: "USD"},
	)
	prices := &mockPriceService{
		GetBRLToUSDRateFunc: func(ctx context.Context) (float64, error) { return 0.2, nil },
	}

	au := NewAssetUsecase(repo, defaultTypes(), prices)
	if err := au.RecalculatePortfolio(ctx, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byTicker := map[string]float64{}
	assets, _ := repo.FindByUser(ctx, 7)
	for _, a := range assets {
		byTicker[a.Ticker] = a.PortfolioPercentage
	}
	// 2000 vs 10000 USD cents: 16.67% and 83.33%.
	if byTicker["PETR4"] != 16.67 {
		t.Errorf("PETR4 weight %v, want 16.67", byTicker["PETR4"])
	}
	if byTicker["AAPL"] != 83.33 {
		t.Errorf("AAPL weight %v, want 83.33", byTicker["AAPL"])
	}
}

func TestRecalculatePortfolio_ZeroTotalZeroWeights(t *testing.T) {
	ctx := context.Background()
	repo := newMockAssetRepository(
		entity.Asset{ID: 1, UserID: 7, Ticker: "PETR4", CurrentValueCents: 0, Currency: "BRL", PortfolioPercentage: 40},
		entity.Asset{ID: 2, UserID: 7, Ticker: "VALE3", CurrentValueCents: 0, Currency: "BRL", PortfolioPercentage: 60},
	)
	prices := &mockPriceService{}

	au := NewAssetUsecase(repo, defaultTypes(), prices)
	if err := au.RecalculatePortfolio(ctx, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assets, _ := repo.FindByUser(ctx, 7)
	for _, a := range assets {
		if a.PortfolioPercentage != 0 {
			t.Errorf("%s weight %v, want 0 when total is 0", a.Ticker, a.PortfolioPercentage)
		}
	}
}

func TestRecalculatePortfolio_RateUnavailableAborts(t *testing.T) {
	ctx := context.Background()
	repo := newMockAssetRepository(
		entity.Asset{ID: 1, UserID: 7, Ticker: "PETR4", CurrentValueCents: 10000, Currency: "BRL", PortfolioPercentage: 42},
	)
	prices := &mockPriceService{
		GetBRLToUSDRateFunc: func(ctx context.Context) (float64, error) {
			return 0, pricedomain.ErrRateUnavailable
		},
	}

	au := NewAssetUsecase(repo, defaultTypes(), prices)
	err := au.RecalculatePortfolio(ctx, 7)

	if !errors.Is(err, pricedomain.ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}

	assets, _ := repo.FindByUser(ctx, 7)
	if assets[0].PortfolioPercentage != 42 {
		t.Errorf("weights must be left untouched on abort, got %v", assets[0].PortfolioPercentage)
	}
}

func TestRecalculatePortfolio_EmptyPortfolioSkipsRateFetch(t *testing.T) {
	prices := &mockPriceService{}

	au := NewAssetUsecase(newMockAssetRepository(), defaultTypes(), prices)
	if err := au.RecalculatePortfolio(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prices.RateCalls != 0 {
		t.Errorf("no rate fetch expected for an empty portfolio, got %d", prices.RateCalls)
	}
}
