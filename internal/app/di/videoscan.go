// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"product_backend/internal/feature/videoscan/adapters/ffmpeg"
	"product_backend/internal/feature/videoscan/adapters/gemini"
	"product_backend/internal/feature/videoscan/adapters/store"
	"product_backend/internal/feature/videoscan/adapters/vision"
	"product_backend/internal/feature/videoscan/adapters/ytdlp"
	scanhandler "product_backend/internal/feature/videoscan/transport/handler"
	"product_backend/internal/feature/videoscan/usecase"
	"product_backend/internal/platform/cache"
	"product_backend/internal/platform/config"
	infrahttp "product_backend/internal/platform/http"
	"product_backend/internal/shared/ratelimiter"
)

// NewScanService assembles the full scan pipeline: yt-dlp download, ffmpeg
// extraction, Gemini classification, Imagen enhancement, optional Cloud
// Vision brand hints, GORM persistence, and Redis result caching.
// Redis (rdb) and the database (db) may be nil; the service then runs
// without caching or persistence.
func NewScanService(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client) (scanhandler.ScanUsecase, error) {
	geminiCfg := gemini.LoadConfig()

	classifier, err := gemini.NewFrameClassifier(ctx, geminiCfg)
	if err != nil {
		return nil, err
	}

	opts := []usecase.Option{
		usecase.WithEnhancedDir(cfg.EnhancedDir),
		usecase.WithRateLimiter(ratelimiter.NewRateLimiter(cfg.ClassifierRPM, time.Minute)),
	}

	// 画像生成は任意機能: クライアント生成に失敗しても主要パスは動かす
	if enhancer, err := gemini.NewStudioEnhancer(ctx, geminiCfg); err != nil {
		slog.Warn("studio enhancer unavailable, scans will skip image generation", "error", err)
	} else {
		opts = append(opts, usecase.WithStudioEnhancer(enhancer))
	}

	if cfg.BrandDetection {
		if brands, err := vision.NewBrandDetector(ctx); err != nil {
			slog.Warn("brand detector unavailable, scans will skip brand hints", "error", err)
		} else {
			opts = append(opts, usecase.WithBrandDetector(brands))
		}
	}

	if db != nil {
		opts = append(opts, usecase.WithScanRecorder(store.NewScanGorm(db)))
	}

	uc := usecase.NewVideoScanUsecase(
		ytdlp.NewDownloader(ytdlp.LoadConfig(), infrahttp.NewHTTPClient(cfg.ProbeTimeout)),
		ffmpeg.NewExtractor(ffmpeg.LoadConfig()),
		classifier,
		opts...,
	)

	if rdb == nil {
		return uc, nil
	}
	return cache.NewCachingScanService(rdb, cfg.ScanCacheTTL, uc, "scans"), nil
}
