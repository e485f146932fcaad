package usecase

import (
	"context"
	"errors"
	"testing"

	"portfolio_backend/internal/feature/assets/domain/entity"
	pricedomain "portfolio_backend/internal/feature/prices/domain"
)

type mockAssetSource struct {
	assets []entity.Asset
	err    error
}

func (m *mockAssetSource) FindByUser(ctx context.Context, userID uint) ([]entity.Asset, error) {
	return m.assets, m.err
}

type mockRateSource struct {
	rate float64
	err  error
}

func (m *mockRateSource) GetBRLToUSDRate(ctx context.Context) (float64, error) {
	return m.rate, m.err
}

var (
	stockType = entity.AssetType{Name: "stock", Class: "variable income", TargetPercentage: 60}
	fiiType   = entity.AssetType{Name: "fii", Class: "real estate", TargetPercentage: 40}
)

func TestSummaryUsecase_GetAllocation(t *testing.T) {
	assets := &mockAssetSource{assets: []entity.Asset{
		{Ticker: "PETR4", Type: stockType, Currency: "BRL", CurrentValueCents: 30000},
		{Ticker: "VALE3", Type: stockType, Currency: "BRL", CurrentValueCents: 30000},
		{Ticker: "HGLG11", Type: fiiType, Currency: "BRL", CurrentValueCents: 40000},
	}}

	su := NewSummaryUsecase(assets, &mockRateSource{rate: 0.2})
	items, err := su.GetAllocation(context.Background(), 7)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(items))
	}

	// Sorted by class name: "real estate" before "variable income".
	fii := items[0]
	if fii.AssetTypeName != "fii" || fii.TotalValueCents != 40000 {
		t.Errorf("fii group mismatch: %+v", fii)
	}
	if fii.ActualPercentage != 0.4 {
		t.Errorf("fii actual %v, want 0.4", fii.ActualPercentage)
	}
	if fii.TargetPercentage != 40 {
		t.Errorf("fii target %v, want 40", fii.TargetPercentage)
	}

	stocks := items[1]
	if stocks.TotalValueCents != 60000 {
		t.Errorf("stocks should aggregate both tickers: %+v", stocks)
	}
	if stocks.ActualPercentage != 0.6 {
		t.Errorf("stocks actual %v, want 0.6", stocks.ActualPercentage)
	}
}

func TestSummaryUsecase_GetAllocation_Empty(t *testing.T) {
	su := NewSummaryUsecase(&mockAssetSource{}, &mockRateSource{rate: 0.2})

	items, err := su.GetAllocation(context.Background(), 7)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no groups, got %v", items)
	}
}

func TestSummaryUsecase_GetCurrencyOverview(t *testing.T) {
	assets := &mockAssetSource{assets: []entity.Asset{
		{Ticker: "PETR4", Type: stockType, Currency: "BRL", CurrentValueCents: 100001},
		{Ticker: "VALE3", Type: stockType, Currency: "BRL", CurrentValueCents: 99999},
		{Ticker: "AAPL", Type: stockType, Currency: "USD", CurrentValueCents: 60000},
	}}

	su := NewSummaryUsecase(assets, &mockRateSource{rate: 0.2})
	items, err := su.GetCurrencyOverview(context.Background(), 7)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 currencies, got %d", len(items))
	}

	brl := items[0]
	if brl.Currency != "BRL" || brl.TotalCents != 200000 {
		t.Errorf("BRL row mismatch: %+v", brl)
	}
	// 200000 * 0.2 rounded to integer USD cents.
	if brl.TotalInUSD != 40000 {
		t.Errorf("BRL in USD %d, want 40000", brl.TotalInUSD)
	}
	if brl.Percentage != 0.4 {
		t.Errorf("BRL percentage %v, want 0.4", brl.Percentage)
	}

	usd := items[1]
	if usd.TotalInUSD != 60000 {
		t.Errorf("USD total must not be converted: %+v", usd)
	}
	if usd.Percentage != 0.6 {
		t.Errorf("USD percentage %v, want 0.6", usd.Percentage)
	}
}

func TestSummaryUsecase_GetCurrencyOverview_RateUnavailable(t *testing.T) {
	assets := &mockAssetSource{assets: []entity.Asset{
		{Ticker: "PETR4", Type: stockType, Currency: "BRL", CurrentValueCents: 100},
	}}

	su := NewSummaryUsecase(assets, &mockRateSource{err: pricedomain.ErrRateUnavailable})
	_, err := su.GetCurrencyOverview(context.Background(), 7)

	if !errors.Is(err, pricedomain.ErrRateUnavailable) {
		t.Fatalf("expected ErrRateUnavailable, got %v", err)
	}
}

func TestSummaryUsecase_SourceErrorPropagates(t *testing.T) {
	wantErr := errors.New("db down")
	su := NewSummaryUsecase(&mockAssetSource{err: wantErr}, &mockRateSource{rate: 0.2})

	if _, err := su.GetAllocation(context.Background(), 7); !errors.Is(err, wantErr) {
		t.Errorf("GetAllocation: expected %v, got %v", wantErr, err)
	}
	if _, err := su.GetCurrencyOverview(context.Background(), 7); !errors.Is(err, wantErr) {
		t.Errorf("GetCurrencyOverview: expected %v, got %v", wantErr, err)
	}
}
