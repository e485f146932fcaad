// Package entity defines the domain models for the prices feature.
package entity

import "time"

// Quote is a single market quote as returned by the external provider.
// RegularMarketPrice is a pointer because the provider may return an entry
// for a known symbol without a usable price.
type Quote struct {
	Symbol             string
	RegularMarketPrice *float64
}

// CachedPrice is one price cache entry. Entries are keyed by the
// user-facing ticker, not the provider symbol, and are shared across all
// users since market price is owner-independent.
type CachedPrice struct {
	Ticker     string
	ValueCents int64
	UpdatedAt  time.Time
}
