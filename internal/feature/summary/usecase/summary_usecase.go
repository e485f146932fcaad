// Package usecase implements the portfolio summary reports.
package usecase

import (
	"context"
	"math"
	"sort"

	"portfolio_backend/internal/feature/assets/domain/entity"
)

// AssetSource provides the holdings the reports aggregate over.
// Following Go convention, the interface is defined by the consumer.
type AssetSource interface {
	FindByUser(ctx context.Context, userID uint) ([]entity.Asset, error)
}

// RateSource provides the BRL to USD conversion rate.
type RateSource interface {
	GetBRLToUSDRate(ctx context.Context) (float64, error)
}

// AllocationItem is one row of the allocation report: holdings grouped by
// asset class, type and currency, with actual versus target share.
type AllocationItem struct {
	AssetClassName   string  `json:"assetClassName"`
	AssetTypeName    string  `json:"assetTypeName"`
	Currency         string  `json:"currency"`
	TotalValueCents  int64   `json:"totalValueCents"`
	TargetPercentage float64 `json:"targetPercentage"`
	ActualPercentage float64 `json:"actualPercentage"`
}

// CurrencyOverviewItem is one row of the currency overview: total held per
// currency and its share of the USD-normalized portfolio.
type CurrencyOverviewItem struct {
	Currency   string  `json:"currency"`
	TotalCents int64   `json:"totalCents"`
	TotalInUSD int64   `json:"totalInUSD"`
	Percentage float64 `json:"percentage"`
}

// SummaryUsecase aggregates holdings into report rows.
type SummaryUsecase struct {
	assets AssetSource
	rates  RateSource
}

// NewSummaryUsecase creates a new SummaryUsecase.
func NewSummaryUsecase(assets AssetSource, rates RateSource) *SummaryUsecase {
	return &SummaryUsecase{assets: assets, rates: rates}
}

// roundTo4 rounds a fraction to 4 decimal places, half away from zero.
func roundTo4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// GetAllocation groups the user's holdings by asset class, type and
// currency and reports each group's fraction of the total current value.
func (su *SummaryUsecase) GetAllocation(ctx context.Context, userID uint) ([]AllocationItem, error) {
	assets, err := su.assets.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	type groupKey struct {
		class, typ, currency string
	}
	groups := map[groupKey]*AllocationItem{}
	var total int64
	for _, a := range assets {
		key := groupKey{class: a.Type.Class, typ: a.Type.Name, currency: a.Currency}
		item, ok := groups[key]
		if !ok {
			item = &AllocationItem{
				AssetClassName:   a.Type.Class,
				AssetTypeName:    a.Type.Name,
				Currency:         a.Currency,
				TargetPercentage: a.Type.TargetPercentage,
			}
			groups[key] = item
		}
		item.TotalValueCents += a.CurrentValueCents
		total += a.CurrentValueCents
	}

	items := make([]AllocationItem, 0, len(groups))
	for _, item := range groups {
		if total > 0 {
			item.ActualPercentage = roundTo4(float64(item.TotalValueCents) / float64(total))
		}
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].AssetClassName != items[j].AssetClassName {
			return items[i].AssetClassName < items[j].AssetClassName
		}
		if items[i].AssetTypeName != items[j].AssetTypeName {
			return items[i].AssetTypeName < items[j].AssetTypeName
		}
		return items[i].Currency < items[j].Currency
	})
	return items, nil
}

// GetCurrencyOverview totals the user's holdings per currency and reports
// each currency's share of the USD-normalized portfolio.
//
// Unlike portfolio recalculation this report rounds each converted total to
// integer USD cents before summing; the per-currency totals shown to the
// user are whole cents, so the percentages are computed over the same
// figures the user sees.
func (su *SummaryUsecase) GetCurrencyOverview(ctx context.Context, userID uint) ([]CurrencyOverviewItem, error) {
	assets, err := su.assets.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	totals := map[string]int64{}
	for _, a := range assets {
		totals[a.Currency] += a.CurrentValueCents
	}

	rate, err := su.rates.GetBRLToUSDRate(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]CurrencyOverviewItem, 0, len(totals))
	var totalUSD int64
	for currency, cents := range totals {
		usd := cents
		if currency != "USD" {
			usd = int64(math.Round(float64(cents) * rate))
		}
		items = append(items, CurrencyOverviewItem{Currency: currency, TotalCents: cents, TotalInUSD: usd})
		totalUSD += usd
	}

	for i := range items {
		if totalUSD > 0 {
			items[i].Percentage = roundTo4(float64(items[i].TotalInUSD) / float64(totalUSD))
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Currency < items[j].Currency })
	return items, nil
}
