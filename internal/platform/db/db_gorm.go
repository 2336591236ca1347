// Package db opens the GORM database connection for the service.
package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "product_backend/internal/feature/auth/domain/entity"
	"product_backend/internal/feature/videoscan/adapters/store"
)

// OpenDB opens the database selected by DB_DRIVER ("sqlite" by default,
// "postgres" for a shared deployment) and runs migrations when
// RUN_MIGRATIONS=true. Postgres connections are retried because the
// database container may still be starting.
func OpenDB() *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	switch os.Getenv("DB_DRIVER") {
	case "postgres":
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				os.Getenv("DB_HOST"), os.Getenv("DB_PORT"),
				os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
		}
		deadline := time.Now().Add(60 * time.Second)
		for {
			db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{TranslateError: true})
			if err == nil {
				break
			}
			if time.Now().After(deadline) {
				log.Fatalf("DB connect failed after 60s: %v", err)
			}
			log.Printf("DB connect failed, retrying...: %v", err)
			time.Sleep(3 * time.Second)
		}
	default:
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "data/product_backend.db"
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			log.Fatalf("failed to create data dir: %v", err)
		}
		db, err = gorm.Open(gsqlite.Open(path), &gorm.Config{TranslateError: true})
		if err != nil {
			log.Fatalf("failed to open sqlite db: %v", err)
		}
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, ScanRun, ScanProduct）
		if err := db.AutoMigrate(
			&authentity.User{},
			&store.ScanRunModel{},
			&store.ScanProductModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
