package usecase

import (
	"sort"

	"product_backend/internal/feature/videoscan/domain/entity"
)

// RankProducts は製品リストをBestFrame.QualityScoreの降順に並べ替えます。
// 同点の場合は入力順（＝最初に検出された順）を保持します。入力は変更せず、
// 新しいスライスを返す純粋関数です。
func RankProducts(products []entity.Product) []entity.Product {
	ranked := make([]entity.Product, len(products))
	copy(ranked, products)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].BestFrame.QualityScore > ranked[j].BestFrame.QualityScore
	})

	return ranked
}
