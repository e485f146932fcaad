package usecase

import (
	"context"

	"portfolio_backend/internal/feature/assets/domain/entity"
)

// RecalculatePortfolio redistributes portfolio weights so that each of the
// user's holdings carries its percentage share of the USD-normalized total.
// userID 0 recalculates every user's holdings (bulk refresh path).
//
// BRL values are converted with the live rate and kept as fractional USD
// cents through the summation; only the final percentage is rounded, so
// rounding error does not compound across holdings. A missing conversion
// rate aborts the pass with every weight left untouched.
func (au *AssetUsecase) RecalculatePortfolio(ctx context.Context, userID uint) error {
	var (
		assets []entity.Asset
		err    error
	)
	if userID == 0 {
		assets, err = au.assets.FindAll(ctx)
	} else {
		assets, err = au.assets.FindByUser(ctx, userID)
	}
	if err != nil {
		return err
	}
	if len(assets) == 0 {
		return nil
	}

	rate, err := au.prices.GetBRLToUSDRate(ctx)
	if err != nil {
		return err
	}

	usdValues := make([]float64, len(assets))
	var totalUsdValue float64
	for i, a := range assets {
		usd := float64(a.CurrentValueCents)
		if a.Currency == "BRL" {
			usd *= rate
		}
		usdValues[i] = usd
		totalUsdValue += usd
	}

	for i := range assets {
		if totalUsdValue > 0 {
			assets[i].PortfolioPercentage = roundTo2(usdValues[i] / totalUsdValue * 100)
		} else {
			assets[i].PortfolioPercentage = 0
		}
	}

	return au.assets.SaveAll(ctx, assets)
}
