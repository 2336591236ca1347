package usecase_test

import (
	"testing"

	"product_backend/internal/feature/videoscan/domain/entity"
	"product_backend/internal/feature/videoscan/usecase"
)

func frameAt(index int) entity.Frame {
	return entity.Frame{Index: index, Timestamp: float64(index) * 5, Image: []byte{byte(index)}}
}

// TestAggregator_Monotonicity は同一製品名のスコアが観測を重ねても
// 決して下がらないこと（＝常に観測済み最大値）を検証します。
func TestAggregator_Monotonicity(t *testing.T) {
	t.Parallel()

	agg := usecase.NewProductAggregator("")
	scores := []int{6, 9, 4, 9, 2, 8}

	maxSeen := 0
	for i, s := range scores {
		agg.Observe(entity.Detection{Name: "Kettle", QualityScore: s, Visible: true}, frameAt(i))
		if s > maxSeen {
			maxSeen = s
		}

		products := agg.Products()
		if len(products) != 1 {
			t.Fatalf("expected 1 product, got %d", len(products))
		}
		if got := products[0].BestFrame.QualityScore; got != maxSeen {
			t.Fatalf("after observing %v: expected best score %d, got %d", scores[:i+1], maxSeen, got)
		}
	}
}

// TestAggregator_TieKeepsEarlierFrame は同点のとき先に観測したフレームが
// 保持されることを検証します（置き換えは厳密に大きい場合のみ）。
func TestAggregator_TieKeepsEarlierFrame(t *testing.T) {
	t.Parallel()

	agg := usecase.NewProductAggregator("")
	agg.Observe(entity.Detection{Name: "Lamp", QualityScore: 7, Visible: true}, frameAt(2))
	agg.Observe(entity.Detection{Name: "Lamp", QualityScore: 7, Visible: true}, frameAt(7))

	products := agg.Products()
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if got := products[0].BestFrame.FrameNumber; got != 2 {
		t.Errorf("expected earlier frame 2 to be kept, got %d", got)
	}
}

func TestAggregator_TargetDemotion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		target        string
		detection     entity.Detection
		expectedScore int
	}{
		{
			name:          "off-target name is demoted by 3",
			target:        "iPhone 15",
			detection:     entity.Detection{Name: "Phone Case", QualityScore: 8, Visible: true},
			expectedScore: 5,
		},
		{
			name:          "case-insensitive substring match keeps score",
			target:        "iPhone 15",
			detection:     entity.Detection{Name: "iPhone 15 Pro", QualityScore: 8, Visible: true},
			expectedScore: 8,
		},
		{
			name:          "lowercase detection still matches",
			target:        "iPhone 15",
			detection:     entity.Detection{Name: "the iphone 15 in black", QualityScore: 6, Visible: true},
			expectedScore: 6,
		},
		{
			name:          "demotion floors at zero",
			target:        "iPhone 15",
			detection:     entity.Detection{Name: "Charger", QualityScore: 2, Visible: true},
			expectedScore: 0,
		},
		{
			name:          "no target applies no demotion",
			target:        "",
			detection:     entity.Detection{Name: "Phone Case", QualityScore: 8, Visible: true},
			expectedScore: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			agg := usecase.NewProductAggregator(tt.target)
			agg.Observe(tt.detection, frameAt(0))

			products := agg.Products()
			if len(products) != 1 {
				t.Fatalf("expected 1 product, got %d", len(products))
			}
			if got := products[0].BestFrame.QualityScore; got != tt.expectedScore {
				t.Errorf("expected adjusted score %d, got %d", tt.expectedScore, got)
			}
		})
	}
}

// TestAggregator_OutOfRangeScores はプロンプトが主張する1〜10の範囲外の
// スコアもクランプせずそのまま保持することを検証します（モデルは信頼できない）。
func TestAggregator_OutOfRangeScores(t *testing.T) {
	t.Parallel()

	agg := usecase.NewProductAggregator("")
	agg.Observe(entity.Detection{Name: "Mug", QualityScore: 15, Visible: true}, frameAt(0))
	agg.Observe(entity.Detection{Name: "Bowl", QualityScore: -4, Visible: true}, frameAt(1))

	products := agg.Products()
	if got := products[0].BestFrame.QualityScore; got != 15 {
		t.Errorf("expected score 15 passed through, got %d", got)
	}
	if got := products[1].BestFrame.QualityScore; got != -4 {
		t.Errorf("expected score -4 passed through, got %d", got)
	}
}

// TestAggregator_TitleRefreshOnImprovement はスコア更新時にTitleが
// 最良フレームを生んだ検出の名前へ更新されることを検証します。
func TestAggregator_TitleRefreshOnImprovement(t *testing.T) {
	t.Parallel()

	agg := usecase.NewProductAggregator("")
	agg.Observe(entity.Detection{Name: "Kettle", QualityScore: 4, Visible: true}, frameAt(0))
	agg.Observe(entity.Detection{Name: "Kettle", QualityScore: 9, Visible: true}, frameAt(3))

	products := agg.Products()
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	p := products[0]
	if p.Title != "Kettle" {
		t.Errorf("expected title Kettle, got %q", p.Title)
	}
	if p.BestFrame.FrameNumber != 3 || p.BestFrame.QualityScore != 9 {
		t.Errorf("expected best frame 3 with score 9, got frame %d score %d",
			p.BestFrame.FrameNumber, p.BestFrame.QualityScore)
	}
}

// TestAggregator_InsertionOrder は製品が最初に観測された順で列挙されることを検証します。
func TestAggregator_InsertionOrder(t *testing.T) {
	t.Parallel()

	agg := usecase.NewProductAggregator("")
	agg.Observe(entity.Detection{Name: "B", QualityScore: 1, Visible: true}, frameAt(0))
	agg.Observe(entity.Detection{Name: "A", QualityScore: 9, Visible: true}, frameAt(1))
	agg.Observe(entity.Detection{Name: "B", QualityScore: 5, Visible: true}, frameAt(2))

	products := agg.Products()
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Title != "B" || products[1].Title != "A" {
		t.Errorf("expected insertion order [B A], got [%s %s]", products[0].Title, products[1].Title)
	}
}

// TestAggregator_BestFrameImage は最良フレームの画像が保持されることを検証します。
func TestAggregator_BestFrameImage(t *testing.T) {
	t.Parallel()

	agg := usecase.NewProductAggregator("")
	agg.Observe(entity.Detection{Name: "Mug", QualityScore: 3, Visible: true}, frameAt(1))
	agg.Observe(entity.Detection{Name: "Mug", QualityScore: 8, Visible: true}, frameAt(4))
	agg.Observe(entity.Detection{Name: "Mug", QualityScore: 6, Visible: true}, frameAt(9))

	p := agg.Products()[0]
	if len(p.BestFrame.Image) != 1 || p.BestFrame.Image[0] != 4 {
		t.Errorf("expected image from frame 4, got %v", p.BestFrame.Image)
	}
}
