package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	assetadapters "portfolio_backend/internal/feature/assets/adapters"
	assetusecase "portfolio_backend/internal/feature/assets/usecase"
	summaryusecase "portfolio_backend/internal/feature/summary/usecase"
)

// NewAssetUsecase wires the holding repositories and the price service
// into the asset usecase.
func NewAssetUsecase(rdb *redis.Client, db *gorm.DB) *assetusecase.AssetUsecase {
	return assetusecase.NewAssetUsecase(
		assetadapters.NewAssetRepository(db),
		assetadapters.NewAssetTypeRepository(db),
		NewPriceUsecase(rdb, db),
	)
}

// NewSummaryUsecase wires the holdings and rate sources into the summary
// usecase.
func NewSummaryUsecase(rdb *redis.Client, db *gorm.DB) *summaryusecase.SummaryUsecase {
	return summaryusecase.NewSummaryUsecase(
		assetadapters.NewAssetRepository(db),
		NewPriceUsecase(rdb, db),
	)
}
