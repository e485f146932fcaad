// Package domain defines domain-level errors for the prices feature.
package domain

import "errors"

var (
	// ErrInvalidTicker is returned when a ticker is empty or otherwise
	// unusable. It is rejected before any I/O happens.
	ErrInvalidTicker = errors.New("invalid ticker")

	// ErrPriceNotFound is returned when the provider has no usable quote
	// for a single-ticker resolution.
	ErrPriceNotFound = errors.New("price not found")

	// ErrRateUnavailable is returned when the USD/BRL conversion quote is
	// missing. Portfolio recalculation aborts without touching weights.
	ErrRateUnavailable = errors.New("currency conversion rate unavailable")
)
