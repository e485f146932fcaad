// Package handler provides HTTP handlers for the prices feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/prices/domain"
)

// PricesUsecase defines the quote operations the handler needs.
// Following Go convention, the interface is defined by the consumer.
type PricesUsecase interface {
	GetPriceCents(ctx context.Context, ticker string) (int64, error)
	GetBRLToUSDRate(ctx context.Context) (float64, error)
}

// PriceHandler handles HTTP requests for market quotes.
type PriceHandler struct {
	uc PricesUsecase
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(uc PricesUsecase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

// GetPrice returns the current quote for a ticker in integer cents.
//
// GET /prices/:ticker
func (h *PriceHandler) GetPrice(c *gin.Context) {
	ticker := c.Param("ticker")

	cents, err := h.uc.GetPriceCents(c.Request.Context(), ticker)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTicker):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrPriceNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ticker":     ticker,
		"priceCents": cents,
		"price":      float64(cents) / 100,
	})
}

// GetBRLToUSDRate returns the current BRL to USD conversion rate.
//
// GET /rates/brlusd
func (h *PriceHandler) GetBRLToUSDRate(c *gin.Context) {
	rate, err := h.uc.GetBRLToUSDRate(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rate": rate})
}
