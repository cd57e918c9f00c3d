package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"salestrack/backend/internal/config"
	"salestrack/backend/internal/store/memory"
	"salestrack/backend/internal/store/redisstore"
)

func validConfig() config.Config {
	return config.Config{
		AppEnv:               "development",
		Port:                 "8001",
		AllowedOrigin:        "*",
		RequestTimeout:       15 * time.Second,
		LogLevel:             "info",
		LogFormat:            "json",
		RateLimitPerMinute:   300,
		TransactionListLimit: 1000,
		RedisKeyPrefix:       "salestrack:",
	}
}

func TestValidateConfigAcceptsDefaults(t *testing.T) {
	if err := validateConfig(validConfig()); err != nil {
		t.Fatalf("expected defaults to pass, got %v", err)
	}
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	cases := map[string]func(*config.Config){
		"log level":     func(c *config.Config) { c.LogLevel = "chatty" },
		"log format":    func(c *config.Config) { c.LogFormat = "xml" },
		"list limit":    func(c *config.Config) { c.TransactionListLimit = 0 },
		"rate limit":    func(c *config.Config) { c.RateLimitPerMinute = -1 },
		"timeout":       func(c *config.Config) { c.RequestTimeout = 0 },
		"port":          func(c *config.Config) { c.Port = "" },
		"wildcard prod": func(c *config.Config) { c.AppEnv = "production" },
	}

	for name, mutate := range cases {
		cfg := validConfig()
		mutate(&cfg)
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("%s: expected config to be rejected", name)
		}
	}
}

func TestOpenRepositoryDefaultsToMemory(t *testing.T) {
	cfg := validConfig()

	repo, closers, err := openRepository(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	if _, ok := repo.(*memory.Store); !ok {
		t.Fatalf("expected memory store, got %T", repo)
	}
	if len(closers) != 0 {
		t.Fatalf("memory store needs no closers, got %d", len(closers))
	}

	items, err := repo.ListStockItems(context.Background(), 0)
	if err != nil {
		t.Fatalf("list stock items: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty store without seeding, got %d items", len(items))
	}
}

func TestOpenRepositorySeedsDemoData(t *testing.T) {
	cfg := validConfig()
	cfg.SeedDemoData = true

	repo, _, err := openRepository(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	items, err := repo.ListStockItems(context.Background(), 0)
	if err != nil {
		t.Fatalf("list stock items: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("expected seeded stock items")
	}
}

func TestOpenRepositoryUsesRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := validConfig()
	cfg.RedisAddr = mr.Addr()

	repo, closers, err := openRepository(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() {
		for _, closeFn := range closers {
			_ = closeFn()
		}
	})
	if _, ok := repo.(*redisstore.Store); !ok {
		t.Fatalf("expected redis store, got %T", repo)
	}
	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestOpenRepositoryFailsWithoutRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := validConfig()
	cfg.RedisAddr = addr

	if _, _, err := openRepository(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatalf("expected unreachable redis to fail startup")
	}
}
