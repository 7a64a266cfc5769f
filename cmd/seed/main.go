package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"bookhub/database"
	"bookhub/internal/config"
	"bookhub/internal/logging"
)

func main() {
	file := flag.String("file", "database/seed/books.json", "JSON array of books to load")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall time limit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	books, err := database.LoadSeedFile(*file)
	if err != nil {
		logger.Error("seed_file_invalid", "file", *file, "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		logger.Error("database_connect_failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	start := time.Now()
	n, err := database.SeedBooks(ctx, db, books)
	if err != nil {
		logger.Error("seed_failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed_completed", "books", n, "driver", cfg.DBDriver, "duration", time.Since(start))
}
