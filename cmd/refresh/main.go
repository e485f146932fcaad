// Command refresh re-prices every holding and rebalances the portfolio
// weights. It runs once and exits, or keeps running daily at market open
// when REFRESH_DAEMON=true.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"portfolio_backend/internal/app/di"
	"portfolio_backend/internal/platform/cache"
	infradb "portfolio_backend/internal/platform/db"
	infraredis "portfolio_backend/internal/platform/redis"
	"portfolio_backend/internal/shared/ratelimiter"
)

// refreshTimeout bounds one full refresh run.
const refreshTimeout = 5 * time.Minute

func main() {
	_ = godotenv.Load()

	db := infradb.OpenDB()

	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	assets := di.NewAssetUsecase(rdb, db)
	limiter := ratelimiter.NewRateLimiter(10, time.Minute)

	runOnce := func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		updated, err := assets.RefreshAll(ctx, limiter)
		if err != nil {
			log.Println("[ERROR] refresh failed:", err)
			return
		}
		log.Printf("refresh ok: %d holdings updated", updated)
	}

	runOnce()

	if os.Getenv("REFRESH_DAEMON") != "true" {
		return
	}
	for {
		sleep := cache.TimeUntilNextMarketOpen()
		log.Printf("next refresh in %v", sleep)
		time.Sleep(sleep)
		runOnce()
	}
}
