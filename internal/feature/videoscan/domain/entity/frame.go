// Package entity はvideoscanフィーチャーのドメインエンティティを定義します。
package entity

// Frame は動画から抽出された1枚のフレームです。
// デコーダーによってIndex/Timestampの昇順で生成され、生成後は不変です。
type Frame struct {
	// Index は元動画内のフレーム番号（0始まり）です。
	Index int

	// Timestamp は動画先頭からの経過秒数です。
	Timestamp float64

	// Image はJPEGエンコード済みの画像バイト列です。
	Image []byte
}

// Detection は分類器が1フレームから報告した製品候補1件です。
// ResponseParserの出力からProductAggregatorの消費までの間のみ存在します。
type Detection struct {
	// Name は製品名です。分類器の応答にnameが無い場合は
	// "Unknown Product" が設定されます。
	Name string

	// QualityScore は分類器が付けた品質スコアです。
	// プロンプト上は1〜10ですが、モデル出力は信頼できないため範囲外の値も
	// そのまま保持します（クランプしない）。
	QualityScore int

	// Visible は製品がフレーム内で明瞭に視認できるかを示します。
	Visible bool
}
