// Package entity defines the domain models for the assets feature.
package entity

import "time"

// Asset represents one user's position in a given ticker. All monetary
// amounts are integer minor-currency units (cents) to avoid floating-point
// currency errors; only the two percentage fields are fractional.
type Asset struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;uniqueIndex:asset_user_ticker,priority:1"`

	TypeID uint      `gorm:"not null"`
	Type   AssetType `gorm:"foreignKey:TypeID"`

	Ticker   string  `gorm:"size:32;not null;uniqueIndex:asset_user_ticker,priority:2"`
	Quantity float64 `gorm:"type:numeric(20,8);not null"`

	AveragePriceCents  int64 `gorm:"not null"`
	CurrentPriceCents  int64 `gorm:"not null"`
	InvestedValueCents int64 `gorm:"not null"`
	CurrentValueCents  int64 `gorm:"not null"`
	ResultCents        int64 `gorm:"not null"`

	// ReturnPercentage and PortfolioPercentage are rounded to 2 decimals.
	ReturnPercentage    float64 `gorm:"type:numeric(8,2);not null"`
	PortfolioPercentage float64 `gorm:"type:numeric(5,2);not null"`

	Institution string `gorm:"size:255"`
	Currency    string `gorm:"size:3;not null;default:BRL"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AssetType classifies holdings (stock, FII, ETF, ...) and carries the
// target allocation used by the summary reports.
type AssetType struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:64;not null"`

	// Class is the broader bucket the type belongs to, e.g. "Renda
	// Variável" or "Renda Fixa".
	Class string `gorm:"size:64;not null"`

	TargetPercentage float64 `gorm:"type:numeric(5,2);not null;default:0"`
}
