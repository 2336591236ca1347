package main

import (
	"context"
	"fmt"
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"product_backend/internal/app/di"
	"product_backend/internal/app/router"
	scanhandler "product_backend/internal/feature/videoscan/transport/handler"
	"product_backend/internal/platform/config"
	infradb "product_backend/internal/platform/db"
	infraredis "product_backend/internal/platform/redis"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// db
	db := infradb.OpenDB()

	// Redis
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

	// スキャンパイプライン（Gemini / yt-dlp / ffmpeg / 永続化 / キャッシュ）
	scanService, err := di.NewScanService(ctx, cfg, db, rdb)
	if err != nil {
		log.Fatalf("failed to build scan service: %v", err)
	}

	authHandler := di.NewAuthHandler(cfg, db)
	scanH := scanhandler.NewScanHandler(scanService)

	r := router.NewRouter(authHandler, scanH)
	if err := r.Run(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
