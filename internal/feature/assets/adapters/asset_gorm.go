// Package adapters provides repository implementations for the assets feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"portfolio_backend/internal/feature/assets/domain"
	"portfolio_backend/internal/feature/assets/domain/entity"
	"portfolio_backend/internal/feature/assets/usecase"
)

// assetGorm is the GORM implementation of the AssetRepository interface.
type assetGorm struct {
	db *gorm.DB
}

var _ usecase.AssetRepository = (*assetGorm)(nil)

// NewAssetRepository creates a new assetGorm with the given gorm.DB
// connection.
func NewAssetRepository(db *gorm.DB) *assetGorm {
	return &assetGorm{db: db}
}

// FindByUser returns the user's holdings with their types preloaded,
// ordered by ID for stable listings.
func (r *assetGorm) FindByUser(ctx context.Context, userID uint) ([]entity.Asset, error) {
	var assets []entity.Asset
	err := r.db.WithContext(ctx).
		Preload("Type").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// FindAll returns every holding across all users (bulk refresh path).
func (r *assetGorm) FindAll(ctx context.Context) ([]entity.Asset, error) {
	var assets []entity.Asset
	if err := r.db.WithContext(ctx).Preload("Type").Order("id ASC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// FindByID returns one holding or domain.ErrAssetNotFound.
func (r *assetGorm) FindByID(ctx context.Context, id uint) (*entity.Asset, error) {
	var asset entity.Asset
	if err := r.db.WithContext(ctx).Preload("Type").First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return &asset, nil
}

// FindByUserAndTicker returns (nil, nil) when the user holds no position in
// the ticker; the buy flow uses the miss to create a new holding.
func (r *assetGorm) FindByUserAndTicker(ctx context.Context, userID uint, ticker string) (*entity.Asset, error) {
	var asset entity.Asset
	err := r.db.WithContext(ctx).
		Preload("Type").
		Where("user_id = ? AND ticker = ?", userID, ticker).
		First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

func (r *assetGorm) Save(ctx context.Context, asset *entity.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

// SaveAll persists many holdings in one batch. Used by the recalculation
// engine to write updated weights.
func (r *assetGorm) SaveAll(ctx context.Context, assets []entity.Asset) error {
	if len(assets) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&assets).Error
}

func (r *assetGorm) Delete(ctx context.Context, asset *entity.Asset) error {
	return r.db.WithContext(ctx).Delete(asset).Error
}

// ReplaceForUser swaps the user's holdings for the given set inside one
// transaction (CSV import).
func (r *assetGorm) ReplaceForUser(ctx context.Context, userID uint, assets []entity.Asset) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&entity.Asset{}).Error; err != nil {
			return err
		}
		if len(assets) == 0 {
			return nil
		}
		return tx.Create(&assets).Error
	})
}
