package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"portfolio_backend/internal/feature/assets/domain"
	"portfolio_backend/internal/feature/assets/domain/entity"
	"portfolio_backend/internal/feature/assets/usecase"
)

// assetTypeGorm is the GORM implementation of the AssetTypeRepository
// interface.
type assetTypeGorm struct {
	db *gorm.DB
}

var _ usecase.AssetTypeRepository = (*assetTypeGorm)(nil)

// NewAssetTypeRepository creates a new assetTypeGorm with the given gorm.DB
// connection.
func NewAssetTypeRepository(db *gorm.DB) *assetTypeGorm {
	return &assetTypeGorm{db: db}
}

// FindByName returns the asset type with the given name, or
// domain.ErrAssetTypeNotFound.
func (r *assetTypeGorm) FindByName(ctx context.Context, name string) (*entity.AssetType, error) {
	var t entity.AssetType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAssetTypeNotFound, name)
		}
		return nil, err
	}
	return &t, nil
}

func (r *assetTypeGorm) List(ctx context.Context) ([]entity.AssetType, error) {
	var types []entity.AssetType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *assetTypeGorm) Create(ctx context.Context, t *entity.AssetType) error {
	return r.db.WithContext(ctx).Create(t).Error
}
