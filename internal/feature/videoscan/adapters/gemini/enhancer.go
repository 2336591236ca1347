package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"product_backend/internal/feature/videoscan/usecase"
)

const (
	// DefaultImagenModel はスタジオ画像生成のデフォルトモデルです。
	DefaultImagenModel = "imagen-4.0-generate-001"

	// studioPromptTemplate は最良フレームから画像生成プロンプトを組み立てる指示です。
	studioPromptTemplate = "You will see a video frame showing a product. " +
		"Identify %s and write a SINGLE concise text-to-image prompt to generate a photorealistic studio shot. " +
		"Include: product name and color, materials/finish, angle (e.g., 3/4 view), framing (full product, centered), " +
		"lighting (soft studio), neutral gradient background, soft shadow, no people, no text, no extra objects. " +
		`Return ONLY JSON: {"prompt": "..."}`
)

// ErrNoImageGenerated は画像生成モデルが画像を1枚も返さなかった場合のエラーです。
// 呼び出し側ではエラー扱いではなく「生成なし」として縮退します。
var ErrNoImageGenerated = errors.New("no image generated")

// StudioEnhancer はGeminiでプロンプトを構築し、Imagenでスタジオ風画像を生成します。
type StudioEnhancer struct {
	client        *genai.Client
	analysisModel string
	imagenModel   string
}

// StudioEnhancerがusecase.StudioEnhancerを実装していることをコンパイル時に検証します。
var _ usecase.StudioEnhancer = (*StudioEnhancer)(nil)

// NewStudioEnhancer はADCを使用してStudioEnhancerの新しいインスタンスを生成します。
func NewStudioEnhancer(ctx context.Context, cfg Config) (*StudioEnhancer, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &StudioEnhancer{
		client:        client,
		analysisModel: cfg.AnalysisModel,
		imagenModel:   cfg.ImagenModel,
	}, nil
}

// BuildStudioPrompt は最良フレームを視覚モデルに見せ、画像生成用のプロンプトを
// 1つ組み立てさせます。応答は {"prompt": "..."} 形式のJSONを期待しますが、
// フェンスや散文に包まれていても許容します（usecase.ExtractJSONObject）。
func (e *StudioEnhancer) BuildStudioPrompt(ctx context.Context, image []byte, productName string) (string, error) {
	subject := productName
	if subject == "" {
		subject = "the product"
	}
	instruction := fmt.Sprintf(studioPromptTemplate, subject)

	parts := []*genai.Part{
		genai.NewPartFromText(instruction),
		genai.NewPartFromBytes(image, frameMIMEType),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := e.client.Models.GenerateContent(ctx, e.analysisModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	candidate, ok := usecase.ExtractJSONObject(resp.Text())
	if !ok {
		return "", errors.New("no JSON payload in prompt response")
	}

	var payload struct {
		Prompt string `json:"prompt"`
	}
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return "", fmt.Errorf("failed to decode prompt payload: %w", err)
	}
	if payload.Prompt == "" {
		return "", errors.New("empty prompt in response")
	}
	return payload.Prompt, nil
}

// GenerateStudioImage はテキストプロンプトからスタジオ風画像を生成します。
func (e *StudioEnhancer) GenerateStudioImage(ctx context.Context, prompt string) ([]byte, error) {
	resp, err := e.client.Models.GenerateImages(ctx, e.imagenModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("imagen API request failed: %w", err)
	}

	for _, img := range resp.GeneratedImages {
		if img.Image != nil && len(img.Image.ImageBytes) > 0 {
			return img.Image.ImageBytes, nil
		}
	}
	return nil, ErrNoImageGenerated
}
