// Package handler provides HTTP handlers for the summary feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	pricedomain "portfolio_backend/internal/feature/prices/domain"
	"portfolio_backend/internal/feature/summary/usecase"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// SummaryUsecase defines the report operations the handler needs.
// Following Go convention, the interface is defined by the consumer.
type SummaryUsecase interface {
	GetAllocation(ctx context.Context, userID uint) ([]usecase.AllocationItem, error)
	GetCurrencyOverview(ctx context.Context, userID uint) ([]usecase.CurrencyOverviewItem, error)
}

// SummaryHandler handles HTTP requests for portfolio reports.
type SummaryHandler struct {
	uc SummaryUsecase
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(uc SummaryUsecase) *SummaryHandler {
	return &SummaryHandler{uc: uc}
}

// GetAllocation returns the allocation report grouped by asset class, type
// and currency.
//
// GET /summary/allocation
func (h *SummaryHandler) GetAllocation(c *gin.Context) {
	items, err := h.uc.GetAllocation(c.Request.Context(), c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		c.JSON(statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetCurrencyOverview returns per-currency totals normalized to USD.
//
// GET /summary/currencies
func (h *SummaryHandler) GetCurrencyOverview(c *gin.Context) {
	items, err := h.uc.GetCurrencyOverview(c.Request.Context(), c.GetUint(jwtmw.ContextUserID))
	if err != nil {
		c.JSON(statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

func statusFor(err error) int {
	if errors.Is(err, pricedomain.ErrRateUnavailable) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
