// Package gemini はGoogle Gemini APIを使用したフレーム分類クライアントを提供します。
package gemini

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"product_backend/internal/feature/videoscan/usecase"
)

const (
	// DefaultAnalysisModel はフレーム分類のデフォルトモデルです。
	DefaultAnalysisModel = "gemini-2.0-flash-lite"

	// frameMIMEType は抽出フレームのMIMEタイプです（ffmpegはJPEGで出力）。
	frameMIMEType = "image/jpeg"
)

// Config holds configuration for the Gemini API adapters.
type Config struct {
	AnalysisModel string // Vision model for per-frame classification and prompt building
	ImagenModel   string // Text-to-image model for studio enhancement
}

// LoadConfig loads Gemini configuration from environment variables,
// falling back to the default models.
func LoadConfig() Config {
	cfg := Config{
		AnalysisModel: os.Getenv("GEMINI_ANALYSIS_MODEL"),
		ImagenModel:   os.Getenv("GEMINI_IMAGEN_MODEL"),
	}
	if cfg.AnalysisModel == "" {
		cfg.AnalysisModel = DefaultAnalysisModel
	}
	if cfg.ImagenModel == "" {
		cfg.ImagenModel = DefaultImagenModel
	}
	return cfg
}

// FrameClassifier はGemini APIを使用して動画フレームを分類します。
type FrameClassifier struct {
	client *genai.Client
	model  string
}

// FrameClassifierがusecase.FrameClassifierを実装していることをコンパイル時に検証します。
var _ usecase.FrameClassifier = (*FrameClassifier)(nil)

// NewFrameClassifier はADCを使用してFrameClassifierの新しいインスタンスを生成します。
// 認証は環境変数（GEMINI_API_KEY または Vertex AI設定）から解決されます。
func NewFrameClassifier(ctx context.Context, cfg Config) (*FrameClassifier, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &FrameClassifier{client: client, model: cfg.AnalysisModel}, nil
}

// ClassifyFrame はプロンプトとフレーム画像をモデルに渡し、生テキスト応答を返します。
// 応答の構造化はResponseParser（usecase.ParseDetections）の責務です。
func (c *FrameClassifier) ClassifyFrame(ctx context.Context, prompt string, image []byte) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromBytes(image, frameMIMEType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
