package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewYahooQuotes(t *testing.T) {
	t.Parallel()

	cfg := Config{BaseURL: "https://quotes.test", Timeout: 10 * time.Second}
	client := &http.Client{}

	y := NewYahooQuotes(cfg, client)

	if y == nil {
		t.Fatal("expected non-nil client")
	}
	if y.cfg.BaseURL != cfg.BaseURL {
		t.Errorf("expected base URL %q, got %q", cfg.BaseURL, y.cfg.BaseURL)
	}
}

func TestYahooQuotes_Quote_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v7/finance/quote" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("symbols"); got != "PETR4.SA,AAPL" {
			t.Errorf("expected symbols PETR4.SA,AAPL, got %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"quoteResponse": {
				"result": [
					{"symbol": "PETR4.SA", "regularMarketPrice": 37.25},
					{"symbol": "AAPL", "regularMarketPrice": 181.5}
				],
				"error": null
			}
		}`))
	}))
	defer server.Close()

	y := NewYahooQuotes(Config{BaseURL: server.URL}, server.Client())

	quotes, err := y.Quote(context.Background(), []string{"PETR4.SA", "AAPL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes[0].Symbol != "PETR4.SA" {
		t.Errorf("expected symbol PETR4.SA, got %s", quotes[0].Symbol)
	}
	if quotes[0].RegularMarketPrice == nil || *quotes[0].RegularMarketPrice != 37.25 {
		t.Errorf("unexpected price for PETR4.SA: %v", quotes[0].RegularMarketPrice)
	}
}

func TestYahooQuotes_Quote_MissingPrice(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"quoteResponse": {
				"result": [{"symbol": "NOPE"}],
				"error": null
			}
		}`))
	}))
	defer server.Close()

	y := NewYahooQuotes(Config{BaseURL: server.URL}, server.Client())

	quotes, err := y.Quote(context.Background(), []string{"NOPE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(quotes))
	}
	if quotes[0].RegularMarketPrice != nil {
		t.Errorf("expected nil price, got %v", *quotes[0].RegularMarketPrice)
	}
}

func TestYahooQuotes_Quote_APIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"quoteResponse": {
				"result": [],
				"error": {"code": "Bad Request", "description": "invalid symbols"}
			}
		}`))
	}))
	defer server.Close()

	y := NewYahooQuotes(Config{BaseURL: server.URL}, server.Client())

	if _, err := y.Quote(context.Background(), []string{"???"}); err == nil {
		t.Fatal("expected error from API error body")
	}
}

func TestYahooQuotes_Quote_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	y := NewYahooQuotes(Config{BaseURL: server.URL}, server.Client())

	if _, err := y.Quote(context.Background(), []string{"AAPL"}); err == nil {
		t.Fatal("expected error on http 429")
	}
}

func TestYahooQuotes_Quote_EmptySymbols(t *testing.T) {
	t.Parallel()

	y := NewYahooQuotes(Config{BaseURL: "http://unused"}, &http.Client{})

	quotes, err := y.Quote(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quotes != nil {
		t.Errorf("expected nil quotes for empty input, got %v", quotes)
	}
}
