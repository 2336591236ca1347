// Package ytdlp はyt-dlpコマンドを使用した動画ダウンロードアダプターを提供します。
package ytdlp

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"

	"product_backend/internal/feature/videoscan/usecase"
)

const (
	// DefaultBinary はyt-dlp実行ファイルのデフォルト名です（PATHから解決）。
	DefaultBinary = "yt-dlp"

	// formatSelector は720p以下の最良フォーマットを選択します。
	// 分類モデルには720pで十分で、ダウンロード時間を抑えられます。
	formatSelector = "best[height<=720]"
)

// Config holds configuration for the yt-dlp downloader.
type Config struct {
	Binary string // Path to the yt-dlp executable
}

// LoadConfig loads downloader configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{Binary: os.Getenv("YTDLP_BINARY")}
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	return cfg
}

// Downloader はyt-dlpを子プロセスとして起動し動画を取得します。
type Downloader struct {
	binary     string
	httpClient *http.Client
}

// Downloaderがusecase.VideoDownloaderを実装していることをコンパイル時に検証します。
var _ usecase.VideoDownloader = (*Downloader)(nil)

// NewDownloader はDownloaderの新しいインスタンスを生成します。
// httpClientはダウンロード前のURL到達性チェックに使用します（nil可）。
func NewDownloader(cfg Config, httpClient *http.Client) *Downloader {
	return &Downloader{binary: cfg.Binary, httpClient: httpClient}
}

// Download はurlの動画をdir配下に video.<ext> としてダウンロードし、
// 実ファイルのパスを返します。拡張子はyt-dlpのフォーマット選択に依存するため、
// ダウンロード後にglobで解決します。
func (d *Downloader) Download(ctx context.Context, url, dir string) (string, error) {
	if err := d.probe(ctx, url); err != nil {
		return "", err
	}

	outputTemplate := filepath.Join(dir, "video.%(ext)s")
	cmd := exec.CommandContext(ctx, d.binary,
		"-f", formatSelector,
		"-o", outputTemplate,
		"--no-progress",
		"--no-playlist",
		"-q",
		url,
	)

	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w, output: %s", err, string(output))
	}

	matches, err := filepath.Glob(filepath.Join(dir, "video.*"))
	if err != nil {
		return "", fmt.Errorf("failed to glob downloaded file: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("yt-dlp produced no output file in %s", dir)
	}
	return matches[0], nil
}

// probe はyt-dlpを起動する前にURLの到達性を軽く確認します。
// HTTPクライアント未設定の場合はスキップします。
func (d *Downloader) probe(ctx context.Context, url string) error {
	if d.httpClient == nil {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return fmt.Errorf("invalid video url: %w", err)
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("video url unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("video source returned status %d", resp.StatusCode)
	}
	return nil
}
