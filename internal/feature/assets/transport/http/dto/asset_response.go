package dto

import "portfolio_backend/internal/feature/assets/domain/entity"

// AssetRes represents one holding in API responses.
type AssetRes struct {
	ID                  uint    `json:"id"`
	Ticker              string  `json:"ticker"`
	Quantity            float64 `json:"quantity"`
	AveragePrice        float64 `json:"averagePrice"`
	CurrentPrice        float64 `json:"currentPrice"`
	InvestedValue       float64 `json:"investedValue"`
	CurrentValue        float64 `json:"currentValue"`
	Result              float64 `json:"result"`
	ReturnPercentage    float64 `json:"returnPercentage"`
	PortfolioPercentage float64 `json:"portfolioPercentage"`
	Type                string  `json:"type"`
	Class               string  `json:"class"`
	Institution         string  `json:"institution"`
	Currency            string  `json:"currency"`
}

// ImportRes reports the outcome of a CSV import.
type ImportRes struct {
	Imported int `json:"imported"`
	Failed   int `json:"failed"`
}

// NewAssetRes converts a holding entity into its API representation.
func NewAssetRes(a *entity.Asset) AssetRes {
	return AssetRes{
		ID:                  a.ID,
		Ticker:              a.Ticker,
		Quantity:            a.Quantity,
		AveragePrice:        float64(a.AveragePriceCents) / 100,
		CurrentPrice:        float64(a.CurrentPriceCents) / 100,
		InvestedValue:       float64(a.InvestedValueCents) / 100,
		CurrentValue:        float64(a.CurrentValueCents) / 100,
		Result:              float64(a.ResultCents) / 100,
		ReturnPercentage:    a.ReturnPercentage,
		PortfolioPercentage: a.PortfolioPercentage,
		Type:                a.Type.Name,
		Class:               a.Type.Class,
		Institution:         a.Institution,
		Currency:            a.Currency,
	}
}
