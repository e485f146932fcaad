package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"portfolio_backend/internal/app/di"
	"portfolio_backend/internal/app/router"
	assethandler "portfolio_backend/internal/feature/assets/transport/handler"
	pricehandler "portfolio_backend/internal/feature/prices/transport/handler"
	summaryhandler "portfolio_backend/internal/feature/summary/transport/handler"
	infradb "portfolio_backend/internal/platform/db"
	infraredis "portfolio_backend/internal/platform/redis"
)

func main() {
	// Local development reads .env; in production the variables are set
	// by the environment and the file simply does not exist.
	_ = godotenv.Load()

	db := infradb.OpenDB()

	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	authH := di.NewAuthHandler(db)
	assetsH := assethandler.NewAssetHandler(di.NewAssetUsecase(rdb, db))
	pricesH := pricehandler.NewPriceHandler(di.NewPriceUsecase(rdb, db))
	summaryH := summaryhandler.NewSummaryHandler(di.NewSummaryUsecase(rdb, db))

	r := router.NewRouter(authH, assetsH, pricesH, summaryH)

	if os.Getenv("JWT_SECRET") == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
