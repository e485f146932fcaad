package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"portfolio_backend/internal/feature/prices/adapters/yahoo/dto"
	"portfolio_backend/internal/feature/prices/domain/entity"
	"portfolio_backend/internal/feature/prices/usecase"
)

// YahooQuotes is a QuoteProvider implementation backed by the Yahoo Finance
// quote endpoint. One call resolves one or many symbols.
type YahooQuotes struct {
	cfg    Config
	client *http.Client
}

var _ usecase.QuoteProvider = (*YahooQuotes)(nil)

// NewYahooQuotes creates a new YahooQuotes with the given configuration and
// HTTP client.
func NewYahooQuotes(cfg Config, client *http.Client) *YahooQuotes {
	return &YahooQuotes{cfg: cfg, client: client}
}

// Quote fetches current market quotes for the given provider-formatted
// symbols. Symbols the provider does not know are simply missing from the
// result; entries without a price carry a nil RegularMarketPrice.
func (y *YahooQuotes) Quote(ctx context.Context, symbols []string) ([]entity.Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}

	q := url.Values{}
	q.Set("symbols", strings.Join(symbols, ","))

	u := fmt.Sprintf("%s/v7/finance/quote?%s", y.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	// Yahoo rejects requests without a browser-like user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	res, err := y.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("quote api http %d", res.StatusCode)
	}

	var body dto.QuoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("quote api: %s", body.QuoteResponse.Error.Description)
	}

	quotes := make([]entity.Quote, 0, len(body.QuoteResponse.Result))
	for _, r := range body.QuoteResponse.Result {
		quotes = append(quotes, entity.Quote{
			Symbol:             r.Symbol,
			RegularMarketPrice: r.RegularMarketPrice,
		})
	}
	return quotes, nil
}
