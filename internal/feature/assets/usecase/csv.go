package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"

	"portfolio_backend/internal/feature/assets/domain/entity"
)

var csvHeader = []string{
	"ticker", "quantity", "averagePrice", "type", "institution", "currency",
}

// ImportResult reports how a CSV import went. Failed counts rows whose
// ticker could not be priced; those rows are skipped, not fatal.
type ImportResult struct {
	Imported int
	Failed   int
}

// ImportCSV replaces the user's holdings with the rows of a CSV file.
//
// Expected columns: ticker,quantity,averagePrice,type,institution,currency
// with prices in whole currency units. All tickers are priced through the
// batch resolution path, so the provider is hit once regardless of row
// count. Rows with malformed numbers, unknown types or unpriceable tickers
// are counted as failures and skipped. Ends with one batch write and one
// portfolio recalculation.
func (au *AssetUsecase) ImportCSV(ctx context.Context, userID uint, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return &ImportResult{}, nil
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, required := range []string{"ticker", "quantity", "averagePrice", "type"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("parse csv: missing column %q", required)
		}
	}

	rows := records[1:]

	tickers := make([]string, 0, len(rows))
	for _, row := range rows {
		tickers = append(tickers, row[col["ticker"]])
	}

	prices, err := au.prices.GetPriceCentsBatch(ctx, tickers)
	if err != nil {
		return nil, fmt.Errorf("resolve import prices: %w", err)
	}

	result := &ImportResult{}
	assets := make([]entity.Asset, 0, len(rows))
	for _, row := range rows {
		ticker := row[col["ticker"]]

		currentPriceCents, ok := prices[ticker]
		if !ok {
			slog.Warn("skipping csv row, price unresolved", "ticker", ticker)
			result.Failed++
			continue
		}

		quantity, err := strconv.ParseFloat(row[col["quantity"]], 64)
		if err != nil || quantity <= 0 {
			slog.Warn("skipping csv row, bad quantity", "ticker", ticker, "quantity", row[col["quantity"]])
			result.Failed++
			continue
		}
		averagePrice, err := strconv.ParseFloat(row[col["averagePrice"]], 64)
		if err != nil || averagePrice < 0 {
			slog.Warn("skipping csv row, bad average price", "ticker", ticker)
			result.Failed++
			continue
		}
		averagePriceCents := int64(math.Round(averagePrice * 100))

		assetType, err := au.types.FindByName(ctx, row[col["type"]])
		if err != nil {
			slog.Warn("skipping csv row, unknown asset type", "ticker", ticker, "type", row[col["type"]])
			result.Failed++
			continue
		}

		derived := CalculateDerivedFields(quantity, averagePriceCents, currentPriceCents)

		institution := ""
		if i, ok := col["institution"]; ok {
			institution = row[i]
		}
		currency := "BRL"
		if i, ok := col["currency"]; ok && row[i] != "" {
			currency = row[i]
		}

		assets = append(assets, entity.Asset{
			UserID:             userID,
			TypeID:             assetType.ID,
			Type:               *assetType,
			Ticker:             ticker,
			Quantity:           quantity,
			AveragePriceCents:  averagePriceCents,
			CurrentPriceCents:  currentPriceCents,
			InvestedValueCents: derived.InvestedValueCents,
			CurrentValueCents:  derived.CurrentValueCents,
			ResultCents:        derived.ResultCents,
			ReturnPercentage:   derived.ReturnPercentage,
			Institution:        institution,
			Currency:           currency,
		})
		result.Imported++
	}

	if err := au.assets.ReplaceForUser(ctx, userID, assets); err != nil {
		return nil, err
	}
	if err := au.RecalculatePortfolio(ctx, userID); err != nil {
		return nil, err
	}
	return result, nil
}

// ExportCSV writes the user's holdings as CSV.
func (au *AssetUsecase) ExportCSV(ctx context.Context, userID uint, w io.Writer) error {
	assets, err := au.assets.FindByUser(ctx, userID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, a := range assets {
		record := []string{
			a.Ticker,
			strconv.FormatFloat(a.Quantity, 'f', -1, 64),
			strconv.FormatFloat(float64(a.AveragePriceCents)/100, 'f', 2, 64),
			a.Type.Name,
			a.Institution,
			a.Currency,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
