package usecase

import (
	"context"
	"log/slog"
)

// refreshBatchSize caps how many tickers go into one provider request.
const refreshBatchSize = 50

// Pacer throttles provider calls during a bulk refresh.
type Pacer interface {
	WaitIfNeeded()
}

// RefreshAll re-prices every holding across all users and rebalances the
// global weight pool. Tickers whose price cannot be resolved keep their
// last known value; only a provider-level failure aborts the run.
// Returns the number of holdings updated.
func (au *AssetUsecase) RefreshAll(ctx context.Context, pacer Pacer) (int, error) {
	assets, err := au.assets.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(assets) == 0 {
		return 0, nil
	}

	seen := map[string]struct{}{}
	tickers := make([]string, 0, len(assets))
	for _, a := range assets {
		if _, ok := seen[a.Ticker]; ok {
			continue
		}
		seen[a.Ticker] = struct{}{}
		tickers = append(tickers, a.Ticker)
	}

	prices := make(map[string]int64, len(tickers))
	for start := 0; start < len(tickers); start += refreshBatchSize {
		end := start + refreshBatchSize
		if end > len(tickers) {
			end = len(tickers)
		}
		if pacer != nil {
			pacer.WaitIfNeeded()
		}
		batch, err := au.prices.GetPriceCentsBatch(ctx, tickers[start:end])
		if err != nil {
			return 0, err
		}
		for ticker, cents := range batch {
			prices[ticker] = cents
		}
	}

	updated := 0
	for i := range assets {
		cents, ok := prices[assets[i].Ticker]
		if !ok {
			slog.Warn("refresh: keeping stale price", "ticker", assets[i].Ticker)
			continue
		}
		derived := CalculateDerivedFields(assets[i].Quantity, assets[i].AveragePriceCents, cents)
		assets[i].CurrentPriceCents = cents
		assets[i].InvestedValueCents = derived.InvestedValueCents
		assets[i].CurrentValueCents = derived.CurrentValueCents
		assets[i].ResultCents = derived.ResultCents
		assets[i].ReturnPercentage = derived.ReturnPercentage
		updated++
	}

	if err := au.assets.SaveAll(ctx, assets); err != nil {
		return 0, err
	}
	if err := au.RecalculatePortfolio(ctx, 0); err != nil {
		return 0, err
	}
	return updated, nil
}
