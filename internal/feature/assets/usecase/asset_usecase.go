// Package usecase implements the business logic for the assets feature.
package usecase

import (
	"context"
	"fmt"
	"math"

	"portfolio_backend/internal/feature/assets/domain"
	"portfolio_backend/internal/feature/assets/domain/entity"
)

// AssetRepository abstracts holding persistence.
// FindByUserAndTicker returns (nil, nil) when the user holds no position in
// the ticker; the other finders translate misses to domain.ErrAssetNotFound.
// Following Go convention, the interface is defined by the consumer.
type AssetRepository interface {
	FindByUser(ctx context.Context, userID uint) ([]entity.Asset, error)
	FindAll(ctx context.Context) ([]entity.Asset, error)
	FindByID(ctx context.Context, id uint) (*entity.Asset, error)
	FindByUserAndTicker(ctx context.Context, userID uint, ticker string) (*entity.Asset, error)
	Save(ctx context.Context, asset *entity.Asset) error
	SaveAll(ctx context.Context, assets []entity.Asset) error
	Delete(ctx context.Context, asset *entity.Asset) error
	ReplaceForUser(ctx context.Context, userID uint, assets []entity.Asset) error
}

// AssetTypeRepository abstracts asset-type lookups. FindByName translates a
// miss to domain.ErrAssetTypeNotFound.
type AssetTypeRepository interface {
	FindByName(ctx context.Context, name string) (*entity.AssetType, error)
	List(ctx context.Context) ([]entity.AssetType, error)
	Create(ctx context.Context, t *entity.AssetType) error
}

// PriceService abstracts the price resolution feature: single and batch
// ticker resolution plus the BRL to USD conversion rate.
type PriceService interface {
	GetPriceCents(ctx context.Context, ticker string) (int64, error)
	GetPriceCentsBatch(ctx context.Context, tickers []string) (map[string]int64, error)
	GetBRLToUSDRate(ctx context.Context) (float64, error)
}

// AssetUsecase implements holding mutations. Every mutation that changes a
// holding's value or existence ends with a portfolio recalculation so that
// weights keep summing to 100%.
type AssetUsecase struct {
	assets AssetRepository
	types  AssetTypeRepository
	prices PriceService
}

// NewAssetUsecase creates a new AssetUsecase.
func NewAssetUsecase(assets AssetRepository, types AssetTypeRepository, prices PriceService) *AssetUsecase {
	return &AssetUsecase{assets: assets, types: types, prices: prices}
}

// BuyInput describes one purchase order.
type BuyInput struct {
	UserID      uint
	Ticker      string
	Quantity    float64
	PriceCents  int64
	Type        string
	Institution string
	Currency    string
}

// SellInput describes one sell order.
type SellInput struct {
	UserID   uint
	Ticker   string
	Quantity float64
}

// UpdateInput replaces a holding's position outright (quantity and average
// cost as given, not merged).
type UpdateInput struct {
	ID          uint
	UserID      uint
	Ticker      string
	Quantity    float64
	PriceCents  int64
	Type        string
	Institution string
	Currency    string
}

// GetByUser returns all of one user's holdings.
func (au *AssetUsecase) GetByUser(ctx context.Context, userID uint) ([]entity.Asset, error) {
	return au.assets.FindByUser(ctx, userID)
}

// GetByID returns one holding, scoped to its owner.
func (au *AssetUsecase) GetByID(ctx context.Context, userID, id uint) (*entity.Asset, error) {
	asset, err := au.assets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset.UserID != userID {
		return nil, domain.ErrAssetNotFound
	}
	return asset, nil
}

// Buy creates a position on first purchase of a ticker, or merges into the
// existing one with a weighted-average cost. A price resolution failure
// aborts the whole operation; nothing is persisted.
func (au *AssetUsecase) Buy(ctx context.Context, in BuyInput) (*entity.Asset, error) {
	if in.Quantity <= 0 || in.PriceCents <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	asset, err := au.assets.FindByUserAndTicker(ctx, in.UserID, in.Ticker)
	if err != nil {
		return nil, err
	}

	currentPriceCents, err := au.prices.GetPriceCents(ctx, in.Ticker)
	if err != nil {
		return nil, fmt.Errorf("buy %s: %w", in.Ticker, err)
	}

	if asset == nil {
		assetType, err := au.types.FindByName(ctx, in.Type)
		if err != nil {
			return nil, err
		}

		derived := CalculateDerivedFields(in.Quantity, in.PriceCents, currentPriceCents)

		currency := in.Currency
		if currency == "" {
			currency = "BRL"
		}
		asset = &entity.Asset{
			UserID:             in.UserID,
			TypeID:             assetType.ID,
			Type:               *assetType,
			Ticker:             in.Ticker,
			Quantity:           in.Quantity,
			AveragePriceCents:  in.PriceCents,
			CurrentPriceCents:  currentPriceCents,
			InvestedValueCents: derived.InvestedValueCents,
			CurrentValueCents:  derived.CurrentValueCents,
			ResultCents:        derived.ResultCents,
			ReturnPercentage:   derived.ReturnPercentage,
			Institution:        in.Institution,
			Currency:           currency,
		}
	} else {
		totalQuantity := math.Round(asset.Quantity + in.Quantity)
		newAverageCents := int64(math.Round(
			(asset.Quantity*float64(asset.AveragePriceCents) + in.Quantity*float64(in.PriceCents)) / totalQuantity,
		))

		derived := CalculateDerivedFields(totalQuantity, newAverageCents, currentPriceCents)

		asset.Quantity = totalQuantity
		asset.AveragePriceCents = newAverageCents
		asset.CurrentPriceCents = currentPriceCents
		asset.InvestedValueCents = derived.InvestedValueCents
		asset.CurrentValueCents = derived.CurrentValueCents
		asset.ResultCents = derived.ResultCents
		asset.ReturnPercentage = derived.ReturnPercentage
	}

	if err := au.assets.Save(ctx, asset); err != nil {
		return nil, err
	}
	if err := au.RecalculatePortfolio(ctx, in.UserID); err != nil {
		return nil, err
	}
	return asset, nil
}

// Sell reduces a position. Selling the exact held quantity deletes the
// holding entirely; a partial sell keeps the original average cost and only
// re-derives the value fields.
func (au *AssetUsecase) Sell(ctx context.Context, in SellInput) (*entity.Asset, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	asset, err := au.assets.FindByUserAndTicker(ctx, in.UserID, in.Ticker)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, in.Ticker)
	}
	if in.Quantity > asset.Quantity {
		return nil, fmt.Errorf("%w: %s", domain.ErrOversell, in.Ticker)
	}

	remaining := math.Round(asset.Quantity - in.Quantity)

	if remaining == 0 {
		if err := au.assets.Delete(ctx, asset); err != nil {
			return nil, err
		}
		if err := au.RecalculatePortfolio(ctx, in.UserID); err != nil {
			return nil, err
		}
		return asset, nil
	}

	currentPriceCents, err := au.prices.GetPriceCents(ctx, in.Ticker)
	if err != nil {
		return nil, fmt.Errorf("sell %s: %w", in.Ticker, err)
	}

	// Average cost is unchanged by a sell.
	derived := CalculateDerivedFields(remaining, asset.AveragePriceCents, currentPriceCents)

	asset.Quantity = remaining
	asset.CurrentPriceCents = currentPriceCents
	asset.InvestedValueCents = derived.InvestedValueCents
	asset.CurrentValueCents = derived.CurrentValueCents
	asset.ResultCents = derived.ResultCents
	asset.ReturnPercentage = derived.ReturnPercentage

	if err := au.assets.Save(ctx, asset); err != nil {
		return nil, err
	}
	if err := au.RecalculatePortfolio(ctx, in.UserID); err != nil {
		return nil, err
	}
	return asset, nil
}

// Update overwrites a holding's position and re-derives everything from a
// fresh market price.
func (au *AssetUsecase) Update(ctx context.Context, in UpdateInput) (*entity.Asset, error) {
	if in.Quantity <= 0 || in.PriceCents <= 0 {
		return nil, domain.ErrInvalidQuantity
	}

	asset, err := au.GetByID(ctx, in.UserID, in.ID)
	if err != nil {
		return nil, err
	}

	currentPriceCents, err := au.prices.GetPriceCents(ctx, in.Ticker)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", in.Ticker, err)
	}

	assetType, err := au.types.FindByName(ctx, in.Type)
	if err != nil {
		return nil, err
	}

	derived := CalculateDerivedFields(in.Quantity, in.PriceCents, currentPriceCents)

	asset.TypeID = assetType.ID
	asset.Type = *assetType
	asset.Ticker = in.Ticker
	asset.Quantity = in.Quantity
	asset.AveragePriceCents = in.PriceCents
	asset.CurrentPriceCents = currentPriceCents
	asset.InvestedValueCents = derived.InvestedValueCents
	asset.CurrentValueCents = derived.CurrentValueCents
	asset.ResultCents = derived.ResultCents
	asset.ReturnPercentage = derived.ReturnPercentage
	if in.Institution != "" {
		asset.Institution = in.Institution
	}
	if in.Currency != "" {
		asset.Currency = in.Currency
	}

	if err := au.assets.Save(ctx, asset); err != nil {
		return nil, err
	}
	if err := au.RecalculatePortfolio(ctx, in.UserID); err != nil {
		return nil, err
	}
	return asset, nil
}

// Delete removes a holding and rebalances the remaining weights.
func (au *AssetUsecase) Delete(ctx context.Context, userID, id uint) (*entity.Asset, error) {
	asset, err := au.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := au.assets.Delete(ctx, asset); err != nil {
		return nil, err
	}
	if err := au.RecalculatePortfolio(ctx, userID); err != nil {
		return nil, err
	}
	return asset, nil
}

// ListTypes returns all asset types.
func (au *AssetUsecase) ListTypes(ctx context.Context) ([]entity.AssetType, error) {
	return au.types.List(ctx)
}

// CreateType registers a new asset type.
func (au *AssetUsecase) CreateType(ctx context.Context, t *entity.AssetType) error {
	return au.types.Create(ctx, t)
}
