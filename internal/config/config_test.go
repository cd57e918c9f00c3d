package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var configKeys = []string{
	"APP_ENV", "PORT", "ALLOWED_ORIGIN",
	"APP_READ_TIMEOUT", "APP_WRITE_TIMEOUT", "APP_REQUEST_TIMEOUT",
	"DATABASE_URL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_KEY_PREFIX",
	"LOG_LEVEL", "LOG_FORMAT", "RATE_LIMIT_PER_MINUTE", "TRANSACTION_LIST_LIMIT", "SEED_DEMO_DATA",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Port != "8001" || cfg.Address() != ":8001" {
		t.Fatalf("unexpected port %q", cfg.Port)
	}
	if cfg.AllowedOrigin != "*" {
		t.Fatalf("unexpected allowed origin %q", cfg.AllowedOrigin)
	}
	if cfg.TransactionListLimit != 1000 {
		t.Fatalf("expected list limit 1000, got %d", cfg.TransactionListLimit)
	}
	if cfg.RateLimitPerMinute != 300 {
		t.Fatalf("expected rate limit 300, got %d", cfg.RateLimitPerMinute)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("expected 15s request timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected log settings %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.RedisKeyPrefix != "salestrack:" {
		t.Fatalf("unexpected redis prefix %q", cfg.RedisKeyPrefix)
	}
	if cfg.SeedDemoData || cfg.IsProduction() {
		t.Fatalf("expected development defaults")
	}
	if cfg.Backend() != BackendMemory {
		t.Fatalf("expected memory backend, got %s", cfg.Backend())
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("TRANSACTION_LIST_LIMIT", "50")
	t.Setenv("APP_REQUEST_TIMEOUT", "3s")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.IsProduction() || cfg.Port != "9000" || cfg.TransactionListLimit != 50 || !cfg.SeedDemoData {
		t.Fatalf("environment not applied: %+v", cfg)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("expected 3s request timeout, got %s", cfg.RequestTimeout)
	}
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRANSACTION_LIST_LIMIT", "lots")

	if _, err := LoadFrom(""); err == nil {
		t.Fatalf("expected error for non-numeric list limit")
	}
}

func TestLoadEnvFileDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9100\nLOG_LEVEL=debug\nREDIS_ADDR=127.0.0.1:6379\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Port != "9100" {
		t.Fatalf("expected port from env file, got %q", cfg.Port)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected environment to win over env file, got %q", cfg.LogLevel)
	}
	if cfg.Backend() != BackendRedis {
		t.Fatalf("expected redis backend, got %s", cfg.Backend())
	}
}

func TestLoadIgnoresMissingEnvFile(t *testing.T) {
	clearEnv(t)

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing env file must be ignored, got %v", err)
	}
}

func TestBackendPrefersPostgres(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://localhost/sales", RedisAddr: "127.0.0.1:6379"}
	if cfg.Backend() != BackendPostgres {
		t.Fatalf("expected postgres backend, got %s", cfg.Backend())
	}
}
