package usecase

import (
	"encoding/json"
	"strings"

	"product_backend/internal/feature/videoscan/domain/entity"
)

// UnknownProductName は分類器の応答にnameフィールドが無い場合の既定値です。
const UnknownProductName = "Unknown Product"

// classifierPayload は分類器が返すJSONペイロードの期待形です。
type classifierPayload struct {
	Products []classifierProduct `json:"products"`
}

// classifierProduct は1件の検出です。モデル出力は欠損し得るため、
// 欠損と明示的なゼロ値を区別できるようポインタで受けます。
type classifierProduct struct {
	Name         *string `json:"name"`
	QualityScore *int    `json:"quality_score"`
	Visible      bool    `json:"visible"`
}

// ExtractJSONObject はモデルの自由形式テキストからJSONオブジェクト候補を切り出します。
//
// 手順:
//  1. Markdownコードフェンス（```json または ```）があれば、最初のフェンスと
//     次の閉じフェンスの間にスライスする
//  2. 最初の '{' と最後の '}' の区間を候補として返す
//
// 候補が見つからない場合は ok=false を返します。デコードの成否は関知しません。
func ExtractJSONObject(text string) (string, bool) {
	text = strings.TrimSpace(text)

	if i := strings.Index(text, "```json"); i >= 0 {
		rest := text[i+len("```json"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			text = strings.TrimSpace(rest[:j])
		}
	} else if i := strings.Index(text, "```"); i >= 0 {
		rest := text[i+len("```"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			text = strings.TrimSpace(rest[:j])
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// ParseDetections は分類器の生テキスト応答から検出リストを取り出します。
//
// モデル出力は信頼できないため、この関数は決して失敗しません。フェンスや
// 前後の散文に埋もれたJSONを許容し、デコード失敗・productsフィールド欠損は
// すべて「このフレームの検出ゼロ件」に縮退します。欠損フィールドは
// name→UnknownProductName、quality_score→0 で補完します。
func ParseDetections(raw string) []entity.Detection {
	candidate, ok := ExtractJSONObject(raw)
	if !ok {
		return nil
	}

	var payload classifierPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil
	}

	detections := make([]entity.Detection, 0, len(payload.Products))
	for _, p := range payload.Products {
		name := UnknownProductName
		if p.Name != nil {
			name = *p.Name
		}
		score := 0
		if p.QualityScore != nil {
			score = *p.QualityScore
		}
		detections = append(detections, entity.Detection{
			Name:         name,
			QualityScore: score,
			Visible:      p.Visible,
		})
	}
	return detections
}
