// Package router assembles the HTTP routes of the API.
package router

import (
	"github.com/gin-gonic/gin"

	assethandler "portfolio_backend/internal/feature/assets/transport/handler"
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	pricehandler "portfolio_backend/internal/feature/prices/transport/handler"
	summaryhandler "portfolio_backend/internal/feature/summary/transport/handler"
	"portfolio_backend/internal/platform/http/handler"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// NewRouter builds the Gin engine with all routes registered. Everything
// except the health check, signup and login requires a valid JWT.
func NewRouter(
	auth *authhandler.AuthHandler,
	assets *assethandler.AssetHandler,
	prices *pricehandler.PriceHandler,
	summary *summaryhandler.SummaryHandler,
) *gin.Engine {
	r := gin.Default()

	// Public routes.
	r.GET("/healthz", handler.Health)
	r.POST("/signup", auth.Signup)
	r.POST("/login", auth.Login)

	// Authenticated routes.
	protected := r.Group("/")
	protected.Use(jwtmw.AuthRequired())
	{
		protected.GET("/assets", assets.GetAssets)
		protected.GET("/assets/export", assets.ExportCSV)
		protected.GET("/assets/:id", assets.GetAsset)
		protected.POST("/assets/buy", assets.Buy)
		protected.POST("/assets/sell", assets.Sell)
		protected.POST("/assets/import", assets.ImportCSV)
		protected.PUT("/assets/:id", assets.Update)
		protected.DELETE("/assets/:id", assets.Delete)

		protected.GET("/asset-types", assets.ListTypes)
		protected.POST("/asset-types", assets.CreateType)

		protected.GET("/prices/:ticker", prices.GetPrice)
		protected.GET("/rates/brlusd", prices.GetBRLToUSDRate)

		protected.GET("/summary/allocation", summary.GetAllocation)
		protected.GET("/summary/currencies", summary.GetCurrencyOverview)
	}

	return r
}
