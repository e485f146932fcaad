package usecase

import (
	"regexp"
	"strings"

	"portfolio_backend/internal/feature/prices/domain"
)

// b3EquityPattern matches B3 equity and ETF codes: a 4-letter root followed
// by a 1 or 2 digit suffix (PETR4, VALE3, ITUB11).
var b3EquityPattern = regexp.MustCompile(`^[A-Z]{4}[0-9]{1,2}$`)

// FormatProviderTicker maps a user-facing ticker to the symbol format the
// quote provider expects. B3 listed codes get the ".SA" exchange suffix,
// everything else is returned uppercased and unchanged.
// An empty ticker fails fast with domain.ErrInvalidTicker.
func FormatProviderTicker(ticker string) (string, error) {
	if ticker == "" {
		return "", domain.ErrInvalidTicker
	}

	ticker = strings.ToUpper(ticker)

	if b3EquityPattern.MatchString(ticker) {
		return ticker + ".SA", nil
	}

	// FII and unit codes, e.g. ITUB11, HGLG11.
	if len(ticker) == 6 && strings.HasSuffix(ticker, "11") {
		return ticker + ".SA", nil
	}

	return ticker, nil
}
