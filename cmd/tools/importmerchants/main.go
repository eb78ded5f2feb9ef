package main

import (
	"context"
	"flag"
	"log"
	"os"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"aurumpay.com/app/internal/modules/merchants"
	"aurumpay.com/app/internal/storage"
)

func main() {
	key := flag.String("file", "", "CSV file path (local driver) or object key (s3 driver)")
	flag.Parse()

	if *key == "" {
		log.Fatal("usage: importmerchants -file <path or object key>")
	}

	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	ctx := context.Background()

	src, err := storage.FromEnv(ctx)
	if err != nil {
		log.Fatalf("failed to configure storage: %v", err)
	}

	rc, err := src.Open(ctx, *key)
	if err != nil {
		log.Fatalf("failed to open %s: %v", *key, err)
	}
	defer rc.Close()

	count, err := merchants.NewImportService(db, logger).Import(ctx, rc)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	log.Printf("✓ imported %d merchants", count)
}
