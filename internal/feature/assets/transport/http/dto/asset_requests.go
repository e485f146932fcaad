// Package dto defines data transfer objects for the assets feature's HTTP
// transport layer. Monetary amounts cross the API as decimal currency
// units; the handlers convert them to integer cents.
package dto

// BuyReq represents the request body for the buy endpoint.
type BuyReq struct {
	Ticker       string  `json:"ticker" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
	AveragePrice float64 `json:"averagePrice" binding:"required,gt=0"`
	Type         string  `json:"type" binding:"required"`
	Institution  string  `json:"institution"`
	Currency     string  `json:"currency"`
}

// SellReq represents the request body for the sell endpoint.
type SellReq struct {
	Ticker   string  `json:"ticker" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

// UpdateReq represents the request body for the update endpoint. The
// position is overwritten as given, not merged.
type UpdateReq struct {
	Ticker       string  `json:"ticker" binding:"required"`
	Quantity     float64 `json:"quantity" binding:"required,gt=0"`
	AveragePrice float64 `json:"averagePrice" binding:"required,gt=0"`
	Type         string  `json:"type" binding:"required"`
	Institution  string  `json:"institution"`
	Currency     string  `json:"currency"`
}

// AssetTypeReq represents the request body for creating an asset type.
type AssetTypeReq struct {
	Name             string  `json:"name" binding:"required"`
	Class            string  `json:"class" binding:"required"`
	TargetPercentage float64 `json:"targetPercentage"`
}
