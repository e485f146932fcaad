// Package handler provides HTTP handlers for the assets feature.
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/assets/domain"
	"portfolio_backend/internal/feature/assets/domain/entity"
	"portfolio_backend/internal/feature/assets/transport/http/dto"
	"portfolio_backend/internal/feature/assets/usecase"
	pricedomain "portfolio_backend/internal/feature/prices/domain"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// AssetsUsecase defines the holding operations the handler needs.
// Following Go convention, the interface is defined by the consumer.
type AssetsUsecase interface {
	GetByUser(ctx context.Context, userID uint) ([]entity.Asset, error)
	GetByID(ctx context.Context, userID, id uint) (*entity.Asset, error)
	Buy(ctx context.Context, in usecase.BuyInput) (*entity.Asset, error)
	Sell(ctx context.Context, in usecase.SellInput) (*entity.Asset, error)
	Update(ctx context.Context, in usecase.UpdateInput) (*entity.Asset, error)
	Delete(ctx context.Context, userID, id uint) (*entity.Asset, error)
	ListTypes(ctx context.Context) ([]entity.AssetType, error)
	CreateType(ctx context.Context, t *entity.AssetType) error
	ImportCSV(ctx context.Context, userID uint, r io.Reader) (*usecase.ImportResult, error)
	ExportCSV(ctx context.Context, userID uint, w io.Writer) error
}

// AssetHandler handles HTTP requests for holdings and asset types.
type AssetHandler struct {
	uc AssetsUsecase
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(uc AssetsUsecase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// statusFor maps domain errors to HTTP status codes. Price provider
// failures surface as 502 because the upstream quote API is at fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, pricedomain.ErrInvalidTicker):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAssetNotFound),
		errors.Is(err, domain.ErrAssetTypeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOversell):
		return http.StatusConflict
	case errors.Is(err, pricedomain.ErrPriceNotFound),
		errors.Is(err, pricedomain.ErrRateUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func userID(c *gin.Context) uint {
	return c.GetUint(jwtmw.ContextUserID)
}

func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// GetAssets returns all of the authenticated user's holdings.
//
// GET /assets
func (h *AssetHandler) GetAssets(c *gin.Context) {
	assets, err := h.uc.GetByUser(c.Request.Context(), userID(c))
	if err != nil {
		slog.Error("list assets failed", "error", err, "user_id", userID(c))
		c.JSON(statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]dto.AssetRes, 0, len(assets))
	for i := range assets {
		out = append(out, dto.NewAssetRes(&assets[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetAsset returns a single holding by ID.
//
// GET /assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	asset, err := h.uc.GetByID(c.Request.Context(), userID(c), id)
	if err != nil {
		c.JSON(statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewAssetRes(asset))
}

// Buy records a purchase, creating or merging the position.
//
// POST /assets/buy
func (h *AssetHandler) Buy(c *gin.Context) {
	var req dto.BuyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	asset, err := h.uc.Buy(c.Request.Context(), usecase.BuyInput{
		UserID:      userID(c),
		Ticker:      req.Ticker,
		Quantity:    req.Quantity,
		PriceCents:  toCents(req.AveragePrice),
		Type:        req.Type,
		Institution: req.Institution,
		Currency:    req.Currency,
	})
	if err != nil {
		slog.Warn("buy failed", "error", err, "ticker", req.Ticker, "user_id", userID(c))
		c.JSON(statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, dto.NewAssetRes(asset))
}

// Sell records a sale. Selling the whole position removes the holding.
//
// POST /assets/sell
func (h *AssetHandler) Sell(c *gin.Context) {
	var req dto.SellReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	asset, err := h.uc.Sell(c.Request.Context(), usecase.SellInput{
		UserID:   userID(c),
		Ticker:   req.Ticker,
		Quantity: req.Quantity,
	})
	if err != nil {
		slog.Warn("sell failed", "error", err, "ticker", req.Ticker, "user_id", userID(c))
		c.JSON(statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewAssetRes(asset))
}

// Update overwrites a holding's position.
//
// PUT /assets/:id
func (h *AssetHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	asset, err := h.uc.Update(c.Request.Context(), usecase.UpdateInput{
		ID:          id,
		UserID:      userID(c),
		Ticker:      req.Ticker,
		Quantity:    req.Quantity,
		PriceCents:  toCents(req.AveragePrice),
		Type:        req.Type,
		Institution: req.Institution,
		Currency:    req.Currency,
	})
	if err != nil {
		slog.Warn("update failed", "error", err, "asset_id", id, "user_id", userID(c))
		c.JSON(statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.NewAssetRes(asset))
}

// Delete removes a holding.
//
// DELETE /assets/:id
func (h *AssetHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := h.uc.Delete(c.Request.Context(), userID(c), id); err != nil {
		c.JSON(statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// ListTypes returns all registered asset types.
//
// GET /asset-types
func (h *AssetHandler) ListTypes(c *gin.Context) {
	types, err := h.uc.ListTypes(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, types)
}

// CreateType registers a new asset type.
//
// POST /asset-types
func (h *AssetHandler) CreateType(c *gin.Context) {
	var req dto.AssetTypeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	t := entity.AssetType{
		Name:             req.Name,
		Class:            req.Class,
		TargetPercentage: req.TargetPercentage,
	}
	if err := h.uc.CreateType(c.Request.Context(), &t); err != nil {
		c.JSON(statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

// ImportCSV replaces the user's holdings with the uploaded CSV file.
//
// POST /assets/import (multipart field "file")
func (h *AssetHandler) ImportCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "missing csv file"})
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.uc.ImportCSV(c.Request.Context(), userID(c), file)
	if err != nil {
		slog.Warn("csv import failed", "error", err, "user_id", userID(c))
		c.JSON(statusFor(err), api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ImportRes{Imported: result.Imported, Failed: result.Failed})
}

// ExportCSV streams the user's holdings as a CSV download.
//
// GET /assets/export
func (h *AssetHandler) ExportCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="portfolio.csv"`)
	if err := h.uc.ExportCSV(c.Request.Context(), userID(c), c.Writer); err != nil {
		slog.Error("csv export failed", "error", err, "user_id", userID(c))
		// Headers are already written; nothing more we can do.
		return
	}
}

// parseID reads the :id path parameter, responding 400 on garbage.
func parseID(c *gin.Context) (uint, bool) {
	var uri struct {
		ID uint `uri:"id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return uri.ID, true
}
