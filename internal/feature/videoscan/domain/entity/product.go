package entity

import "time"

// BestFrame は1つの製品名に対してこれまでに観測された最高スコアのフレームです。
// 同点の場合は先に観測されたフレームが保持されます（置き換えはスコアが
// 厳密に大きい場合のみ）。
type BestFrame struct {
	// FrameNumber は元動画内のフレーム番号です。
	FrameNumber int

	// Timestamp は動画先頭からの経過秒数です。
	Timestamp float64

	// QualityScore は調整後（ターゲット減点適用後）の品質スコアです。
	QualityScore int

	// Image はJPEGエンコード済みの画像バイト列です。
	Image []byte
}

// Product は動画内で検出された1つの製品と、その最良フレームです。
type Product struct {
	// Title は最良フレームを生んだ検出の製品名です。
	// フレーム間で表記ゆれがあった場合、最後にスコアを更新した検出の名前を反映します。
	Title string

	// Name は製品名です（Titleと同じ値。APIレスポンス互換のため保持）。
	Name string

	// BestFrame はこの製品の最高スコアフレームです。
	BestFrame BestFrame

	// EnhancedImage はスタジオ風に生成された画像です（最上位製品のみ、任意）。
	EnhancedImage []byte

	// EnhancedImagePath は生成画像の保存先パスです（生成・保存成功時のみ）。
	EnhancedImagePath string

	// BrandHints はVision APIによるブランド/ロゴ検出の補助情報です（任意）。
	BrandHints []string
}

// ScanResult は1回のスキャン実行の最終結果です。
// Products はbestFrame.QualityScoreの降順でソート済みです。
type ScanResult struct {
	// TotalFrames は動画から抽出された全フレーム数です。
	TotalFrames int

	// SampledFrames は分類器に渡されたフレーム数です。
	SampledFrames int

	// Products は検出された製品のランキング済みリストです。
	Products []Product
}

// ScanRun は永続化用のスキャン実行レコードです。
type ScanRun struct {
	// ID はスキャン実行の一意な識別子（UUID）です。
	ID string

	// URL は解析対象の動画URLです。
	URL string

	// TargetTitle は検索対象の製品名です（未指定の場合は空文字列）。
	TargetTitle string

	// Status は実行結果（"completed" / "failed"）です。
	Status string

	// TotalFrames / SampledFrames はScanResultと同じ意味です。
	TotalFrames   int
	SampledFrames int

	// TopProduct は最上位製品のタイトルです（製品ゼロ件の場合は空文字列）。
	TopProduct string

	// EnhancedImagePath は生成画像の保存先パスです。
	EnhancedImagePath string

	// CreatedAt は実行開始時刻です。
	CreatedAt time.Time
}
