package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"salestrack/backend/internal/config"
	"salestrack/backend/internal/httpapi"
	"salestrack/backend/internal/logging"
	"salestrack/backend/internal/report"
	"salestrack/backend/internal/service"
	"salestrack/backend/internal/store"
	"salestrack/backend/internal/store/memory"
	pgstore "salestrack/backend/internal/store/postgres"
	"salestrack/backend/internal/store/redisstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := validateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, closers, err := openRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("repository unavailable", zap.String("backend", cfg.Backend()), zap.Error(err))
	}

	svc := service.New(repo, report.NewEngine(), logger, cfg.TransactionListLimit)
	api := httpapi.New(svc, logger, httpapi.Options{
		AllowedOrigin:      cfg.AllowedOrigin,
		RequestTimeout:     cfg.RequestTimeout,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Production:         cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("sales tracking backend listening", zap.String("addr", cfg.Address()), zap.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			logger.Error("close error", zap.Error(err))
		}
	}

	logger.Info("server stopped")
}

// openRepository connects the backend chosen by cfg. A configured backend
// that cannot be reached is an error; there is no in-memory fallback.
func openRepository(ctx context.Context, cfg config.Config, logger *zap.Logger) (store.Repository, []func() error, error) {
	switch cfg.Backend() {
	case config.BackendPostgres:
		pg, err := pgstore.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			_ = pg.Close()
			return nil, nil, err
		}
		logger.Info("repository: postgres")
		return pg, []func() error{pg.Close}, nil

	case config.BackendRedis:
		rs, err := redisstore.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisKeyPrefix)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("repository: redis", zap.String("addr", cfg.RedisAddr), zap.String("prefix", cfg.RedisKeyPrefix))
		return rs, []func() error{rs.Close}, nil

	default:
		if cfg.SeedDemoData {
			logger.Info("repository: in-memory (seeded)")
			return memory.NewSeeded(), nil, nil
		}
		logger.Info("repository: in-memory")
		return memory.New(), nil, nil
	}
}

func validateConfig(cfg config.Config) error {
	if cfg.Port == "" {
		return errors.New("PORT must be set")
	}
	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if cfg.LogFormat != logging.FormatJSON && cfg.LogFormat != logging.FormatConsole {
		return fmt.Errorf("LOG_FORMAT must be %q or %q, got %q", logging.FormatJSON, logging.FormatConsole, cfg.LogFormat)
	}
	if cfg.TransactionListLimit < 1 {
		return fmt.Errorf("TRANSACTION_LIST_LIMIT must be positive, got %d", cfg.TransactionListLimit)
	}
	if cfg.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.RequestTimeout <= 0 {
		return errors.New("APP_REQUEST_TIMEOUT must be positive")
	}
	if cfg.IsProduction() && cfg.AllowedOrigin == "*" {
		return errors.New("ALLOWED_ORIGIN must name an origin in production")
	}
	return nil
}
