package usecase

import "product_backend/internal/feature/videoscan/domain/entity"

const (
	// frameSkip は一次サンプリングの間引き間隔です（N > frameSkip のとき5枚に1枚）。
	frameSkip = 5

	// MaxSampledFrames は1回のスキャンで分類器に渡すフレーム数の上限です。
	MaxSampledFrames = 50
)

// SampleFrames は抽出済みフレーム列から分類対象のサブシーケンスを選びます。
//
// 選択規則:
//  1. N > 5 の場合は5枚ごとに1枚を取り、それ以外は全フレームを使う
//  2. それでも50枚を超える場合は stride = count/50 で等間隔に間引き、50枚に切り詰める
//
// 元の時系列順は常に保たれます。副作用のない純粋関数で、同じ入力に対して
// 常に同じ結果を返します。
func SampleFrames(frames []entity.Frame) []entity.Frame {
	sampled := frames
	if len(frames) > frameSkip {
		sampled = make([]entity.Frame, 0, (len(frames)+frameSkip-1)/frameSkip)
		for i := 0; i < len(frames); i += frameSkip {
			sampled = append(sampled, frames[i])
		}
	}

	if len(sampled) > MaxSampledFrames {
		stride := len(sampled) / MaxSampledFrames
		strided := make([]entity.Frame, 0, MaxSampledFrames)
		for i := 0; i < len(sampled); i += stride {
			strided = append(strided, sampled[i])
		}
		// strideの切り捨てにより50枚を超え得るため、末尾を落とす
		if len(strided) > MaxSampledFrames {
			strided = strided[:MaxSampledFrames]
		}
		sampled = strided
	}

	return sampled
}
