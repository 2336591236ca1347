// Package handler はvideoscanフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"product_backend/internal/api"
	"product_backend/internal/feature/videoscan/domain/entity"
	"product_backend/internal/feature/videoscan/usecase"
)

// ScanUsecase は動画スキャンのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ScanUsecase interface {
	// Scan はurlの動画を解析し、ランキング済みの製品リストを返します。
	Scan(ctx context.Context, url, targetTitle string) (*entity.ScanResult, error)
}

// ScanHandler は動画スキャンのHTTPリクエストを処理します。
type ScanHandler struct {
	uc ScanUsecase
}

// NewScanHandler はScanHandlerの新しいインスタンスを生成します。
func NewScanHandler(uc ScanUsecase) *ScanHandler {
	return &ScanHandler{uc: uc}
}

// Scan は動画スキャンAPIエンドポイントを処理します。
//
// エンドポイント: POST /v1/scan
// Content-Type: application/json
//
// エラーマッピング:
//   - URL欠落・非対応URL → 400
//   - ダウンロード・フレーム抽出の失敗 → 502
//   - その他の失敗 → 500
func (h *ScanHandler) Scan(c *gin.Context) {
	var req api.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("スキャンリクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "video url is required"})
		return
	}

	result, err := h.uc.Scan(c.Request.Context(), req.URL, req.ProductTitle)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, usecase.ErrURLRequired), errors.Is(err, usecase.ErrUnsupportedURL):
			status = http.StatusBadRequest
		case errors.Is(err, usecase.ErrDownloadFailed), errors.Is(err, usecase.ErrNoFrames):
			status = http.StatusBadGateway
		}
		slog.Error("スキャンに失敗", "error", err, "url", req.URL)
		c.JSON(status, api.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, toScanResponse(result))
}

// toScanResponse はドメインの結果をAPIレスポンスに変換します。
// 画像はここでbase64化します。
func toScanResponse(result *entity.ScanResult) api.ScanResponse {
	products := make([]api.ScanProductResponse, 0, len(result.Products))
	for _, p := range result.Products {
		out := api.ScanProductResponse{
			Title: p.Title,
			Name:  p.Name,
			BestFrame: api.BestFrameResponse{
				FrameNumber:  p.BestFrame.FrameNumber,
				Timestamp:    p.BestFrame.Timestamp,
				QualityScore: p.BestFrame.QualityScore,
				ImageBase64:  base64.StdEncoding.EncodeToString(p.BestFrame.Image),
			},
			EnhancedImagePath: p.EnhancedImagePath,
			BrandHints:        p.BrandHints,
		}
		if len(p.EnhancedImage) > 0 {
			out.EnhancedImageB64 = base64.StdEncoding.EncodeToString(p.EnhancedImage)
		}
		products = append(products, out)
	}

	return api.ScanResponse{
		Success:             true,
		TotalFramesAnalyzed: result.TotalFrames,
		Products:            products,
	}
}
