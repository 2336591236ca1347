package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"product_backend/internal/feature/videoscan/domain/entity"
	"product_backend/internal/platform/metrics"
)

// VideoDownloader は動画URLからローカルファイルへのダウンロードを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type VideoDownloader interface {
	// Download はurlの動画をdir配下にダウンロードし、ファイルパスを返します。
	Download(ctx context.Context, url, dir string) (string, error)
}

// FrameExtractor は動画ファイルからのフレーム抽出を抽象化します。
type FrameExtractor interface {
	// ExtractFrames は動画から一定間隔でフレームを取り出し、
	// フレーム番号・タイムスタンプの昇順で返します。
	ExtractFrames(ctx context.Context, videoPath string) ([]entity.Frame, error)
}

// FrameClassifier は視覚モデルによるフレーム分類を抽象化します。
// 応答は自由形式のテキストで、構造化されている保証はありません。
type FrameClassifier interface {
	// ClassifyFrame はプロンプトと画像を渡し、モデルの生テキスト応答を返します。
	ClassifyFrame(ctx context.Context, prompt string, image []byte) (string, error)
}

// StudioEnhancer は最上位製品のスタジオ風画像生成を抽象化します。
type StudioEnhancer interface {
	// BuildStudioPrompt は最良フレームから画像生成用プロンプトを組み立てます。
	BuildStudioPrompt(ctx context.Context, image []byte, productName string) (string, error)

	// GenerateStudioImage はテキストプロンプトから画像を生成します。
	// 画像が得られない場合はエラーを返します。
	GenerateStudioImage(ctx context.Context, prompt string) ([]byte, error)
}

// BrandDetector は画像からのブランド/ロゴ検出を抽象化します。
type BrandDetector interface {
	// DetectBrands は画像内で検出されたブランド名を返します。
	DetectBrands(ctx context.Context, image []byte) ([]string, error)
}

// ScanRecorder はスキャン実行レコードの永続化を抽象化します。
type ScanRecorder interface {
	// RecordRun は実行レコードと製品リストを保存します。
	RecordRun(ctx context.Context, run *entity.ScanRun, products []entity.Product) error
}

// RateLimiter は分類器呼び出しの頻度制限を抽象化します。
type RateLimiter interface {
	WaitIfNeeded()
}

// supportedVideoURL は受け付ける動画URLのパターンです。
var supportedVideoURL = regexp.MustCompile(`(youtube\.com|youtu\.be)`)

// slugPattern はファイル名に使えない文字の連続にマッチします。
var slugPattern = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// videoScanUsecase は動画スキャンのビジネスロジックを実装します。
//
// パイプライン:
//
//	download → extract → sample → (classify → parse → observe) × frame → rank → enhance
//
// 集約はフレームの時系列順に単一ゴルーチンで畳み込みます（ProductAggregator参照）。
// フレーム単位の分類・パース失敗は実行を中断せず、そのフレームの検出ゼロ件として扱います。
type videoScanUsecase struct {
	downloader  VideoDownloader
	extractor   FrameExtractor
	classifier  FrameClassifier
	enhancer    StudioEnhancer
	brands      BrandDetector
	recorder    ScanRecorder
	limiter     RateLimiter
	enhancedDir string
}

// Option はvideoScanUsecaseの任意依存を設定します。
type Option func(*videoScanUsecase)

// WithStudioEnhancer は画像生成コラボレーターを設定します。未設定なら生成をスキップします。
func WithStudioEnhancer(e StudioEnhancer) Option {
	return func(u *videoScanUsecase) { u.enhancer = e }
}

// WithBrandDetector はブランド検出コラボレーターを設定します。未設定なら検出をスキップします。
func WithBrandDetector(b BrandDetector) Option {
	return func(u *videoScanUsecase) { u.brands = b }
}

// WithScanRecorder は実行レコードの永続化先を設定します。未設定なら保存をスキップします。
func WithScanRecorder(r ScanRecorder) Option {
	return func(u *videoScanUsecase) { u.recorder = r }
}

// WithRateLimiter は分類器呼び出しのレートリミッターを設定します。
func WithRateLimiter(l RateLimiter) Option {
	return func(u *videoScanUsecase) { u.limiter = l }
}

// WithEnhancedDir は生成画像の保存ディレクトリを設定します。
func WithEnhancedDir(dir string) Option {
	return func(u *videoScanUsecase) { u.enhancedDir = dir }
}

// NewVideoScanUsecase はvideoScanUsecaseの新しいインスタンスを生成します。
// downloader / extractor / classifier は必須で、それ以外はOptionで注入します。
func NewVideoScanUsecase(d VideoDownloader, e FrameExtractor, c FrameClassifier, opts ...Option) *videoScanUsecase {
	u := &videoScanUsecase{
		downloader:  d,
		extractor:   e,
		classifier:  c,
		enhancedDir: "enhanced_images",
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Scan は1本の動画に対してスキャンを実行し、ランキング済みの製品リストを返します。
//
// エラー方針:
//   - URL不正はErrURLRequired / ErrUnsupportedURLを即時返却（実行を開始しない）
//   - ダウンロード・フレーム抽出の失敗は実行全体のエラー（部分結果は返さない）
//   - フレーム単位の失敗と生成・ブランド検出の失敗はログに残して続行
func (u *videoScanUsecase) Scan(ctx context.Context, url, targetTitle string) (*entity.ScanResult, error) {
	if url == "" {
		return nil, ErrURLRequired
	}
	if !supportedVideoURL.MatchString(url) {
		return nil, ErrUnsupportedURL
	}

	metrics.ActiveScans.Inc()
	defer metrics.ActiveScans.Dec()

	started := time.Now()
	log := slog.With("url", url, "target", targetTitle)

	tempDir, err := os.MkdirTemp("", "videoscan-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			log.Warn("一時ディレクトリの削除に失敗", "error", err, "dir", tempDir)
		}
	}()

	dlStart := time.Now()
	videoPath, err := u.downloader.Download(ctx, url, tempDir)
	if err != nil {
		metrics.ScansTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	metrics.StageDuration.WithLabelValues("download").Observe(time.Since(dlStart).Seconds())
	log.Info("動画のダウンロード完了", "path", videoPath)

	exStart := time.Now()
	frames, err := u.extractor.ExtractFrames(ctx, videoPath)
	if err != nil {
		metrics.ScansTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to extract frames: %w", err)
	}
	if len(frames) == 0 {
		metrics.ScansTotal.WithLabelValues("failed").Inc()
		return nil, ErrNoFrames
	}
	metrics.StageDuration.WithLabelValues("extract").Observe(time.Since(exStart).Seconds())

	sampled := SampleFrames(frames)
	log.Info("フレームをサンプリング", "total", len(frames), "sampled", len(sampled))

	prompt := BuildAnalysisPrompt(targetTitle)
	agg := NewProductAggregator(targetTitle)

	clStart := time.Now()
	for i, frame := range sampled {
		if u.limiter != nil {
			u.limiter.WaitIfNeeded()
		}

		raw, err := u.classifier.ClassifyFrame(ctx, prompt, frame.Image)
		if err != nil {
			// 1フレームの分類失敗は検出ゼロ件と同じ扱いで続行する
			metrics.ClassifierFailuresTotal.Inc()
			log.Warn("フレーム分類に失敗", "error", err, "frame", frame.Index)
			continue
		}
		metrics.FramesClassifiedTotal.Inc()

		detections := ParseDetections(raw)
		log.Debug("フレーム解析",
			"frame", frame.Index,
			"timestamp", frame.Timestamp,
			"progress", fmt.Sprintf("%d/%d", i+1, len(sampled)),
			"detections", len(detections),
		)

		for _, det := range detections {
			agg.Observe(det, frame)
		}
	}
	metrics.StageDuration.WithLabelValues("classify").Observe(time.Since(clStart).Seconds())

	ranked := RankProducts(agg.Products())
	log.Info("スキャン完了", "products", len(ranked), "elapsed", time.Since(started))

	if len(ranked) > 0 {
		u.enhanceTopProduct(ctx, &ranked[0], log)
		u.attachBrandHints(ctx, &ranked[0], log)
	}

	result := &entity.ScanResult{
		TotalFrames:   len(frames),
		SampledFrames: len(sampled),
		Products:      ranked,
	}

	u.recordRun(ctx, url, targetTitle, result, log)
	metrics.ScansTotal.WithLabelValues("completed").Inc()

	return result, nil
}

// enhanceTopProduct は最上位製品の最良フレームからスタジオ風画像を生成します。
// ベストエフォートの副次処理であり、失敗しても主結果には影響しません。
func (u *videoScanUsecase) enhanceTopProduct(ctx context.Context, top *entity.Product, log *slog.Logger) {
	if u.enhancer == nil {
		return
	}

	prompt, err := u.enhancer.BuildStudioPrompt(ctx, top.BestFrame.Image, top.Title)
	if err != nil || prompt == "" {
		if err != nil {
			log.Warn("生成プロンプトの構築に失敗、フォールバックを使用", "error", err)
		}
		prompt = FallbackStudioPrompt(top.Title)
	}

	enhanced, err := u.enhancer.GenerateStudioImage(ctx, prompt)
	if err != nil {
		metrics.EnhancementsTotal.WithLabelValues("failed").Inc()
		log.Warn("スタジオ画像の生成に失敗", "error", err, "product", top.Title)
		return
	}
	top.EnhancedImage = enhanced
	metrics.EnhancementsTotal.WithLabelValues("generated").Inc()

	path, err := u.saveEnhancedImage(top.Title, enhanced)
	if err != nil {
		// 保存失敗でも生成画像自体はレスポンスに含める
		log.Warn("生成画像の保存に失敗", "error", err, "product", top.Title)
		return
	}
	top.EnhancedImagePath = path
	log.Info("生成画像を保存", "path", path, "product", top.Title)
}

// attachBrandHints は最良フレームに対するロゴ検出結果を添付します。
// こちらもベストエフォートで、失敗は無視されます。
func (u *videoScanUsecase) attachBrandHints(ctx context.Context, top *entity.Product, log *slog.Logger) {
	if u.brands == nil {
		return
	}
	hints, err := u.brands.DetectBrands(ctx, top.BestFrame.Image)
	if err != nil {
		log.Warn("ブランド検出に失敗", "error", err, "product", top.Title)
		return
	}
	top.BrandHints = hints
}

// saveEnhancedImage は生成画像を enhancedDir/<slug>-<unixtime>.jpg として保存します。
func (u *videoScanUsecase) saveEnhancedImage(title string, image []byte) (string, error) {
	if err := os.MkdirAll(u.enhancedDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create enhanced dir: %w", err)
	}
	slug := strings.ToLower(strings.Trim(slugPattern.ReplaceAllString(title, "-"), "-"))
	if slug == "" {
		slug = "product"
	}
	path := filepath.Join(u.enhancedDir, fmt.Sprintf("%s-%d.jpg", slug, time.Now().Unix()))
	if err := os.WriteFile(path, image, 0644); err != nil {
		return "", fmt.Errorf("failed to write enhanced image: %w", err)
	}
	return path, nil
}

// recordRun はスキャン実行レコードを永続化します。ベストエフォートです。
func (u *videoScanUsecase) recordRun(ctx context.Context, url, targetTitle string, result *entity.ScanResult, log *slog.Logger) {
	if u.recorder == nil {
		return
	}

	run := &entity.ScanRun{
		ID:            uuid.NewString(),
		URL:           url,
		TargetTitle:   targetTitle,
		Status:        "completed",
		TotalFrames:   result.TotalFrames,
		SampledFrames: result.SampledFrames,
		CreatedAt:     time.Now(),
	}
	if len(result.Products) > 0 {
		run.TopProduct = result.Products[0].Title
		run.EnhancedImagePath = result.Products[0].EnhancedImagePath
	}

	if err := u.recorder.RecordRun(ctx, run, result.Products); err != nil {
		log.Warn("スキャン実行レコードの保存に失敗", "error", err, "run_id", run.ID)
	}
}
