package usecase_test

import (
	"reflect"
	"testing"

	"product_backend/internal/feature/videoscan/domain/entity"
	"product_backend/internal/feature/videoscan/usecase"
)

// makeFrames はテスト用にn枚の連番フレームを生成するヘルパー関数です。
func makeFrames(n int) []entity.Frame {
	frames := make([]entity.Frame, n)
	for i := range frames {
		frames[i] = entity.Frame{Index: i, Timestamp: float64(i)}
	}
	return frames
}

// indices はフレーム列のIndexフィールドだけを取り出します。
func indices(frames []entity.Frame) []int {
	out := make([]int, len(frames))
	for i, f := range frames {
		out[i] = f.Index
	}
	return out
}

func TestSampleFrames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		frameCount      int
		expectedLen     int
		expectedIndices []int // nilの場合は長さのみ検証
	}{
		{
			name:            "empty input returns empty",
			frameCount:      0,
			expectedLen:     0,
			expectedIndices: []int{},
		},
		{
			name:            "N<=5 returns all frames unmodified",
			frameCount:      3,
			expectedLen:     3,
			expectedIndices: []int{0, 1, 2},
		},
		{
			name:            "N=5 boundary returns all frames",
			frameCount:      5,
			expectedLen:     5,
			expectedIndices: []int{0, 1, 2, 3, 4},
		},
		{
			name:            "N=12 takes every 5th frame",
			frameCount:      12,
			expectedLen:     3,
			expectedIndices: []int{0, 5, 10},
		},
		{
			name:        "N=300 is capped at exactly 50",
			frameCount:  300,
			expectedLen: 50,
		},
		{
			name:        "N=1000 is capped at exactly 50",
			frameCount:  1000,
			expectedLen: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sampled := usecase.SampleFrames(makeFrames(tt.frameCount))

			if len(sampled) != tt.expectedLen {
				t.Fatalf("expected %d frames, got %d", tt.expectedLen, len(sampled))
			}
			if tt.expectedIndices != nil && !reflect.DeepEqual(indices(sampled), tt.expectedIndices) {
				t.Errorf("expected indices %v, got %v", tt.expectedIndices, indices(sampled))
			}

			// 時系列順が保たれていること
			for i := 1; i < len(sampled); i++ {
				if sampled[i].Index <= sampled[i-1].Index {
					t.Errorf("temporal order violated at %d: %v", i, indices(sampled))
				}
			}
		})
	}
}

// TestSampleFrames_Deterministic は同じ入力に対して常に同じ結果を返すことを検証します。
func TestSampleFrames_Deterministic(t *testing.T) {
	t.Parallel()

	frames := makeFrames(300)
	first := usecase.SampleFrames(frames)
	for i := 0; i < 5; i++ {
		again := usecase.SampleFrames(frames)
		if !reflect.DeepEqual(indices(first), indices(again)) {
			t.Fatalf("sampling is not deterministic: run %d differs", i)
		}
	}
}
