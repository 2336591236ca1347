package usecase

import "fmt"

// openEndedPrompt はターゲット未指定時の分類プロンプトです。
// フレーム内のすべての製品を識別・採点させます。
const openEndedPrompt = `Analyze this video frame from a product review/unboxing video.

For EACH product visible in this frame:
1. Identify the product title/name clearly (use the exact product name, brand, and model if visible)
2. Rate the quality (1-10) where 10 is perfect:
   - 9-10: Product is crystal clear, well-lit, fully visible, professional shot
   - 7-8: Product is clear and visible, good lighting
   - 5-6: Product is somewhat visible but not optimal
   - 1-4: Product is blurry, poorly lit, or mostly obscured

Return ONLY valid JSON in this exact format:
{
  "products": [
    {
      "name": "Product Title/Name (e.g., iPhone 15 Pro, Samsung Galaxy Watch)",
      "quality_score": 8,
      "visible": true
    }
  ]
}

If NO products are clearly visible, return: {"products": []}`

// targetedPromptTemplate はターゲット指定時の分類プロンプトです。
// 指定製品のみを識別・採点させます。
const targetedPromptTemplate = `Analyze this video frame from a product review/unboxing video.

You are looking specifically for: %[1]s

Only identify and rate frames that show this specific product. Ignore other objects in the background.

For the product "%[1]s" visible in this frame:
1. Confirm this is the correct product (must match "%[1]s")
2. Rate the quality (1-10) where 10 is perfect:
   - 9-10: Product is crystal clear, well-lit, fully visible, professional shot
   - 7-8: Product is clear and visible, good lighting
   - 5-6: Product is somewhat visible but not optimal
   - 1-4: Product is blurry, poorly lit, or mostly obscured

Return ONLY valid JSON in this exact format:
{
  "products": [
    {
      "name": "%[1]s",
      "quality_score": 8,
      "visible": true
    }
  ]
}

If the product "%[1]s" is NOT clearly visible in this frame, return: {"products": []}`

// BuildAnalysisPrompt はターゲット指定の有無に応じた分類プロンプトを返します。
func BuildAnalysisPrompt(targetTitle string) string {
	if targetTitle == "" {
		return openEndedPrompt
	}
	return fmt.Sprintf(targetedPromptTemplate, targetTitle)
}

// FallbackStudioPrompt はプロンプト生成に失敗した場合の画像生成プロンプトです。
func FallbackStudioPrompt(productName string) string {
	if productName == "" {
		productName = "the product"
	}
	return fmt.Sprintf(
		"Photorealistic studio shot of %s, centered, full product, "+
			"neutral gradient background, soft shadow, high detail, no text, no extra objects.",
		productName,
	)
}
