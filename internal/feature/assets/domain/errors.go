// Package domain defines domain-level errors for the assets feature.
package domain

import "errors"

var (
	// ErrAssetNotFound is returned when a holding cannot be found by ID or
	// by user and ticker.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrAssetTypeNotFound is returned when a buy or update names an asset
	// type that does not exist.
	ErrAssetTypeNotFound = errors.New("asset type not found")

	// ErrOversell is returned when a sell order exceeds the held quantity.
	ErrOversell = errors.New("cannot sell more than available quantity")

	// ErrInvalidQuantity is returned for non-positive quantities or prices,
	// before any I/O happens.
	ErrInvalidQuantity = errors.New("quantity and price must be positive")
)
