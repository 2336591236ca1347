// Package ffmpeg はffmpeg/ffprobeコマンドを使用したフレーム抽出アダプターを提供します。
package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"product_backend/internal/feature/videoscan/domain/entity"
	"product_backend/internal/feature/videoscan/usecase"
)

const (
	// DefaultIntervalSeconds はフレーム抽出間隔のデフォルト値です。
	DefaultIntervalSeconds = 5

	// maxFrameWidth は分類モデルに渡すフレーム幅の上限です。
	// これを超える動画はffmpeg側で縮小します（Go側で再エンコードしない）。
	maxFrameWidth = 1024
)

// Config holds configuration for the ffmpeg extractor.
type Config struct {
	FFmpegBinary    string // Path to the ffmpeg executable
	FFprobeBinary   string // Path to the ffprobe executable
	IntervalSeconds int    // Seconds between extracted frames
}

// LoadConfig loads extractor configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		FFmpegBinary:    os.Getenv("FFMPEG_BINARY"),
		FFprobeBinary:   os.Getenv("FFPROBE_BINARY"),
		IntervalSeconds: DefaultIntervalSeconds,
	}
	if cfg.FFmpegBinary == "" {
		cfg.FFmpegBinary = "ffmpeg"
	}
	if cfg.FFprobeBinary == "" {
		cfg.FFprobeBinary = "ffprobe"
	}
	if v := os.Getenv("FRAME_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.IntervalSeconds = n
		}
	}
	return cfg
}

// Extractor はffmpegを子プロセスとして起動し、一定間隔でフレームをJPEG抽出します。
type Extractor struct {
	ffmpeg   string
	ffprobe  string
	interval int
}

// Extractorがusecase.FrameExtractorを実装していることをコンパイル時に検証します。
var _ usecase.FrameExtractor = (*Extractor)(nil)

// NewExtractor はExtractorの新しいインスタンスを生成します。
func NewExtractor(cfg Config) *Extractor {
	interval := cfg.IntervalSeconds
	if interval <= 0 {
		interval = DefaultIntervalSeconds
	}
	return &Extractor{
		ffmpeg:   cfg.FFmpegBinary,
		ffprobe:  cfg.FFprobeBinary,
		interval: interval,
	}
}

// ExtractFrames は動画からinterval秒ごとに1枚のフレームを取り出します。
// 戻り値はフレーム番号・タイムスタンプの昇順で、各フレームは元動画での
// フレーム番号（fps × 経過秒数）とタイムスタンプを持ちます。
func (e *Extractor) ExtractFrames(ctx context.Context, videoPath string) ([]entity.Frame, error) {
	fps, err := e.videoFrameRate(ctx, videoPath)
	if err != nil {
		// fpsが取れなくてもタイムスタンプは抽出間隔から決まる。
		// フレーム番号の換算だけ1fps相当に縮退する。
		fps = 1
	}

	framesDir := filepath.Join(filepath.Dir(videoPath), "frames")
	if err := os.MkdirAll(framesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create frames dir: %w", err)
	}

	framePattern := filepath.Join(framesDir, "frame_%06d.jpg")
	filter := fmt.Sprintf("fps=1/%d,scale='min(%d,iw)':-2", e.interval, maxFrameWidth)
	cmd := exec.CommandContext(ctx, e.ffmpeg,
		"-i", videoPath,
		"-vf", filter,
		"-y",
		framePattern,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w, output: %s", err, string(output))
	}

	paths, err := filepath.Glob(filepath.Join(framesDir, "frame_*.jpg"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob frames: %w", err)
	}
	sort.Strings(paths)

	frames := make([]entity.Frame, 0, len(paths))
	for i, p := range paths {
		image, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read frame %s: %w", p, err)
		}
		timestamp := float64(i * e.interval)
		frames = append(frames, entity.Frame{
			Index:     int(timestamp * fps),
			Timestamp: timestamp,
			Image:     image,
		})
	}
	return frames, nil
}

// videoFrameRate はffprobeで動画のフレームレートを取得します。
func (e *Extractor) videoFrameRate(ctx context.Context, videoPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, e.ffprobe,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=avg_frame_rate",
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}
	return ParseFrameRate(strings.TrimSpace(string(output)))
}

// ParseFrameRate はffprobeの "num/den" 形式（例: "30000/1001"）または
// 小数表記のフレームレートをfloat64に変換します。
func ParseFrameRate(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid frame rate %q: %w", s, err)
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("invalid frame rate %q", s)
		}
		return n / d, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate %q: %w", s, err)
	}
	return f, nil
}
