package usecase

import (
	"strings"

	"product_backend/internal/feature/videoscan/domain/entity"
)

// offTargetPenalty はターゲット製品名に部分一致しない検出への減点です。
// 減点後のスコアは0未満にはなりません（検出自体は破棄しない）。
const offTargetPenalty = 3

// ProductAggregator はフレームごとの検出を畳み込み、製品名ごとの
// 最良フレームを保持します。1回のスキャン実行につき1インスタンスを生成し、
// 実行終了後に破棄します。
//
// Observe は可換ではありません（同点時は先に観測したフレームが勝つため）。
// 呼び出しは必ずフレームの時系列順・単一ゴルーチンで行ってください。
type ProductAggregator struct {
	target string
	byName map[string]*entity.Product
	order  []string
}

// NewProductAggregator は空の状態のProductAggregatorを生成します。
// targetTitle が空でない場合、名前が部分一致しない検出はスコアを減点されます。
func NewProductAggregator(targetTitle string) *ProductAggregator {
	return &ProductAggregator{
		target: targetTitle,
		byName: make(map[string]*entity.Product),
	}
}

// adjustScore はターゲット指定時の減点を適用します。
// ターゲット名が検出名の部分文字列（大文字小文字無視）でなければ
// offTargetPenalty を引き、0でフロアします。
func (a *ProductAggregator) adjustScore(name string, score int) int {
	if a.target == "" {
		return score
	}
	if strings.Contains(strings.ToLower(name), strings.ToLower(a.target)) {
		return score
	}
	score -= offTargetPenalty
	if score < 0 {
		score = 0
	}
	return score
}

// Observe は1件の検出を畳み込みます。
//
//   - 未知の製品名なら新しいProductを挿入する（挿入順を記録）
//   - 既知の製品名で調整後スコアが厳密に大きい場合のみBestFrameを置き換え、
//     Titleを現在の検出名に更新する（フレーム間の表記ゆれ対策）
//   - それ以外は何も変更しない
//
// この規則により、任意の時点でBestFrame.QualityScoreはその名前について
// 観測済みの最大調整後スコアに等しく、同点は最初に達成したフレームが保持されます。
func (a *ProductAggregator) Observe(det entity.Detection, frame entity.Frame) {
	score := a.adjustScore(det.Name, det.QualityScore)

	best := entity.BestFrame{
		FrameNumber:  frame.Index,
		Timestamp:    frame.Timestamp,
		QualityScore: score,
		Image:        frame.Image,
	}

	p, ok := a.byName[det.Name]
	if !ok {
		a.byName[det.Name] = &entity.Product{
			Title:     det.Name,
			Name:      det.Name,
			BestFrame: best,
		}
		a.order = append(a.order, det.Name)
		return
	}

	if score > p.BestFrame.QualityScore {
		p.BestFrame = best
		p.Title = det.Name
	}
}

// Products は挿入順のProductスナップショットを返します。
func (a *ProductAggregator) Products() []entity.Product {
	out := make([]entity.Product, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, *a.byName[name])
	}
	return out
}
