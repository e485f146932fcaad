// Package adapters provides repository implementations for the prices feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"portfolio_backend/internal/feature/prices/domain/entity"
	"portfolio_backend/internal/feature/prices/usecase"
)

// priceCacheGorm is the GORM implementation of the PriceCacheRepository
// interface. One row per ticker, overwritten on every successful fetch.
type priceCacheGorm struct {
	db *gorm.DB
}

var _ usecase.PriceCacheRepository = (*priceCacheGorm)(nil)

// NewPriceCacheRepository creates a new priceCacheGorm with the given
// gorm.DB connection.
func NewPriceCacheRepository(db *gorm.DB) *priceCacheGorm {
	return &priceCacheGorm{db: db}
}

// PriceCacheModel is the persistence model for one cached price.
type PriceCacheModel struct {
	Ticker     string    `gorm:"primaryKey;size:32"`
	ValueCents int64     `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (PriceCacheModel) TableName() string {
	return "price_cache"
}

// FindByTicker returns the cache entry for a ticker, or (nil, nil) when no
// entry exists. Freshness is the caller's concern.
func (r *priceCacheGorm) FindByTicker(ctx context.Context, ticker string) (*entity.CachedPrice, error) {
	var m PriceCacheModel
	if err := r.db.WithContext(ctx).Where("ticker = ?", ticker).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity.CachedPrice{Ticker: m.Ticker, ValueCents: m.ValueCents, UpdatedAt: m.UpdatedAt}, nil
}

// UpsertBatch writes all entries in a single statement, overwriting the
// value and timestamp of tickers that already exist.
func (r *priceCacheGorm) UpsertBatch(ctx context.Context, entries []entity.CachedPrice) error {
	if len(entries) == 0 {
		return nil
	}
	ms := make([]PriceCacheModel, 0, len(entries))
	for _, e := range entries {
		ms = append(ms, PriceCacheModel{Ticker: e.Ticker, ValueCents: e.ValueCents, UpdatedAt: e.UpdatedAt})
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{"value_cents", "updated_at"}),
	}).Create(&ms).Error
}

// Clear removes every cache entry. Used by the manual cache-clear path only.
func (r *priceCacheGorm) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&PriceCacheModel{}).Error
}
