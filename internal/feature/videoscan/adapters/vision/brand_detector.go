// Package vision はGoogle Cloud Vision APIを使用したブランド検出クライアントを提供します。
package vision

import (
	"context"
	"fmt"

	gvision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"

	"product_backend/internal/feature/videoscan/usecase"
)

// minLogoConfidence はヒントとして採用するロゴ検出スコアの下限です。
const minLogoConfidence = 0.5

// BrandDetector はGoogle Cloud Vision APIのロゴ検出を使い、
// 最良フレームに写り込んだブランド名のヒントを返します。
type BrandDetector struct {
	client *gvision.ImageAnnotatorClient
}

// BrandDetectorがusecase.BrandDetectorを実装していることをコンパイル時に検証します。
var _ usecase.BrandDetector = (*BrandDetector)(nil)

// NewBrandDetector はADCを使用してBrandDetectorの新しいインスタンスを生成します。
func NewBrandDetector(ctx context.Context) (*BrandDetector, error) {
	client, err := gvision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}
	return &BrandDetector{client: client}, nil
}

// Close はVision APIクライアントを解放します。
func (d *BrandDetector) Close() error {
	return d.client.Close()
}

// DetectBrands は画像バイト列からブランド名を検出します。
// スコアがminLogoConfidence未満のロゴは除外します。
func (d *BrandDetector) DetectBrands(ctx context.Context, image []byte) ([]string, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_LOGO_DETECTION},
				},
			},
		},
	}

	resp, err := d.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision API request failed: %w", err)
	}

	if len(resp.Responses) == 0 {
		return nil, nil
	}
	if resp.Responses[0].Error != nil {
		return nil, fmt.Errorf("vision API error: %s", resp.Responses[0].Error.Message)
	}

	var brands []string
	for _, logo := range resp.Responses[0].LogoAnnotations {
		if logo.Score < minLogoConfidence {
			continue
		}
		brands = append(brands, logo.Description)
	}
	return brands, nil
}
