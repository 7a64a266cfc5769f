package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookhub/database"
	"bookhub/internal/cache"
	"bookhub/internal/config"
	"bookhub/internal/http-api/middleware"
	"bookhub/internal/http-api/repository"
	"bookhub/internal/http-api/server"
	"bookhub/internal/logging"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Setup structured logging
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server_error", "error", err)
		os.Exit(1)
	}
}

// run serves until a shutdown signal or a listener failure. Every resource
// it opens is released before it returns.
func run(cfg *config.Config, logger *slog.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	booksCache, closeCache, err := newCache(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("connect cache: %w", err)
	}
	defer closeCache()

	var limiter *middleware.IPRateLimiter
	if cfg.ReserveRateLimit > 0 {
		limiter = middleware.NewIPRateLimiter(cfg.ReserveRateLimit, cfg.ReserveRateBurst)
		go limiter.RunSweeper(ctx, time.Minute)
	}

	if !cfg.AdminEnabled() {
		logger.Warn("admin_routes_disabled", "reason", "JWT_SECRET not set")
	}

	router := server.NewRouter(server.Deps{
		Store:              repository.NewStore(db.DB),
		Cache:              booksCache,
		Logger:             logger,
		BooksCacheTTL:      cfg.BooksCacheTTL,
		ExposeErrorDetails: cfg.ExposeErrorDetails,
		JWTSecret:          cfg.JWTSecret,
		ReserveLimiter:     limiter,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_http_server", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		return fmt.Errorf("listen: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server_stopped_gracefully")
	return nil
}

func newCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Cache, func(), error) {
	switch cfg.CacheDriver {
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("cache_connected", "driver", "redis")
		return rc, func() { rc.Close() }, nil
	default:
		mc := cache.NewMemoryCache()
		sweepCtx, cancel := context.WithCancel(ctx)
		go mc.RunSweeper(sweepCtx, time.Minute)
		logger.Info("cache_connected", "driver", "memory")
		return mc, cancel, nil
	}
}
