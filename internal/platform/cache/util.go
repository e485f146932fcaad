package cache

import (
	"time"
)

// TimeUntilNextMarketOpen returns the duration until the next 10:00 in
// Sao Paulo time, when B3 trading opens. The refresh daemon sleeps on it
// between runs.
func TimeUntilNextMarketOpen() time.Duration {
	loc, _ := time.LoadLocation("America/Sao_Paulo")
	now := time.Now().In(loc)

	nextOpen := time.Date(now.Year(), now.Month(), now.Day(), 10, 0, 0, 0, loc)

	if now.After(nextOpen) {
		nextOpen = nextOpen.Add(24 * time.Hour)
	}

	return nextOpen.Sub(now)
}
