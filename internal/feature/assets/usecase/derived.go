package usecase

import "math"

// DerivedFields holds the monetary fields computed from a position's
// quantity, average cost and current price.
type DerivedFields struct {
	InvestedValueCents int64
	CurrentValueCents  int64
	ResultCents        int64
	ReturnPercentage   float64
}

// roundTo2 rounds to 2 decimal places, half away from zero.
func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateDerivedFields computes invested value, current value, result and
// return percentage for a position. Pure and total: every input yields a
// complete result, including averagePriceCents == 0, which produces a zero
// return percentage instead of dividing by zero.
func CalculateDerivedFields(quantity float64, averagePriceCents, currentPriceCents int64) DerivedFields {
	invested := int64(math.Round(quantity * float64(averagePriceCents)))
	current := int64(math.Round(quantity * float64(currentPriceCents)))
	result := current - invested

	var returnPct float64
	if invested > 0 {
		returnPct = roundTo2(float64(result) / float64(invested) * 100)
	}

	return DerivedFields{
		InvestedValueCents: invested,
		CurrentValueCents:  current,
		ResultCents:        result,
		ReturnPercentage:   returnPct,
	}
}
