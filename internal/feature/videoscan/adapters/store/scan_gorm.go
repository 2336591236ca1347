// Package store はvideoscanフィーチャーの永続化実装を提供します。
package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"product_backend/internal/feature/videoscan/domain/entity"
	"product_backend/internal/feature/videoscan/usecase"
)

// ScanRunModel はスキャン実行のDBモデルです。
type ScanRunModel struct {
	ID                string `gorm:"primaryKey;size:36"`
	URL               string `gorm:"size:2048;not null"`
	TargetTitle       string `gorm:"size:255"`
	Status            string `gorm:"size:32;not null"`
	TotalFrames       int
	SampledFrames     int
	TopProduct        string `gorm:"size:255"`
	EnhancedImagePath string `gorm:"size:1024"`
	CreatedAt         time.Time
}

// TableName はGORMのテーブル名を指定します。
func (ScanRunModel) TableName() string { return "scan_runs" }

// ScanProductModel は1実行内で検出された製品のDBモデルです。
// フレーム画像そのものは保存しません（レスポンス専用）。
type ScanProductModel struct {
	ID           uint   `gorm:"primaryKey"`
	RunID        string `gorm:"size:36;index;not null"`
	Title        string `gorm:"size:255;not null"`
	QualityScore int
	FrameNumber  int
	Timestamp    float64
	CreatedAt    time.Time
}

// TableName はGORMのテーブル名を指定します。
func (ScanProductModel) TableName() string { return "scan_products" }

// scanGorm はScanRecorderインターフェースのGORM実装です。
type scanGorm struct {
	db *gorm.DB
}

// scanGormがScanRecorderを実装していることをコンパイル時に検証します。
var _ usecase.ScanRecorder = (*scanGorm)(nil)

// NewScanGorm は指定されたgorm.DB接続でscanGormの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewScanGorm(db *gorm.DB) *scanGorm {
	return &scanGorm{db: db}
}

// RecordRun は実行レコードと製品行を1トランザクションで保存します。
func (r *scanGorm) RecordRun(ctx context.Context, run *entity.ScanRun, products []entity.Product) error {
	model := ScanRunModel{
		ID:                run.ID,
		URL:               run.URL,
		TargetTitle:       run.TargetTitle,
		Status:            run.Status,
		TotalFrames:       run.TotalFrames,
		SampledFrames:     run.SampledFrames,
		TopProduct:        run.TopProduct,
		EnhancedImagePath: run.EnhancedImagePath,
		CreatedAt:         run.CreatedAt,
	}

	rows := make([]ScanProductModel, 0, len(products))
	for _, p := range products {
		rows = append(rows, ScanProductModel{
			RunID:        run.ID,
			Title:        p.Title,
			QualityScore: p.BestFrame.QualityScore,
			FrameNumber:  p.BestFrame.FrameNumber,
			Timestamp:    p.BestFrame.Timestamp,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return fmt.Errorf("failed to create scan run: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to create scan products: %w", err)
		}
		return nil
	})
}
