package ffmpeg

import (
	"math"
	"testing"
)

func TestParseFrameRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		expected    float64
		expectError bool
	}{
		{"integer fraction", "30/1", 30, false},
		{"ntsc fraction", "30000/1001", 29.97002997002997, false},
		{"plain decimal", "25", 25, false},
		{"decimal with fraction part", "23.976", 23.976, false},
		{"zero denominator", "30/0", 0, true},
		{"garbage numerator", "abc/1", 0, true},
		{"empty string", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseFrameRate(tt.input)

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestNewExtractor_Defaults は不正なintervalがデフォルト値へフォールバックすることを検証します。
func TestNewExtractor_Defaults(t *testing.T) {
	t.Parallel()

	e := NewExtractor(Config{FFmpegBinary: "ffmpeg", FFprobeBinary: "ffprobe", IntervalSeconds: 0})
	if e.interval != DefaultIntervalSeconds {
		t.Errorf("expected default interval %d, got %d", DefaultIntervalSeconds, e.interval)
	}

	e = NewExtractor(Config{FFmpegBinary: "ffmpeg", FFprobeBinary: "ffprobe", IntervalSeconds: 10})
	if e.interval != 10 {
		t.Errorf("expected interval 10, got %d", e.interval)
	}
}

// TestLoadConfig はFRAME_INTERVAL_SECONDS環境変数の読み込みを検証します。
func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("FFMPEG_BINARY", "")
		t.Setenv("FFPROBE_BINARY", "")
		t.Setenv("FRAME_INTERVAL_SECONDS", "")

		cfg := LoadConfig()
		if cfg.FFmpegBinary != "ffmpeg" || cfg.FFprobeBinary != "ffprobe" {
			t.Errorf("unexpected binaries: %q %q", cfg.FFmpegBinary, cfg.FFprobeBinary)
		}
		if cfg.IntervalSeconds != DefaultIntervalSeconds {
			t.Errorf("expected default interval, got %d", cfg.IntervalSeconds)
		}
	})

	t.Run("custom interval", func(t *testing.T) {
		t.Setenv("FRAME_INTERVAL_SECONDS", "3")

		cfg := LoadConfig()
		if cfg.IntervalSeconds != 3 {
			t.Errorf("expected interval 3, got %d", cfg.IntervalSeconds)
		}
	})

	t.Run("invalid interval falls back to default", func(t *testing.T) {
		t.Setenv("FRAME_INTERVAL_SECONDS", "zero")

		cfg := LoadConfig()
		if cfg.IntervalSeconds != DefaultIntervalSeconds {
			t.Errorf("expected default interval, got %d", cfg.IntervalSeconds)
		}
	})
}
