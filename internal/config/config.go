package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

type Config struct {
	AppEnv        string `envconfig:"APP_ENV" default:"development"`
	Port          string `envconfig:"PORT" default:"8001"`
	AllowedOrigin string `envconfig:"ALLOWED_ORIGIN" default:"*"`

	ReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	WriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"30s"`
	RequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"15s"`

	DatabaseURL string `envconfig:"DATABASE_URL"`

	RedisAddr      string `envconfig:"REDIS_ADDR"`
	RedisPassword  string `envconfig:"REDIS_PASSWORD"`
	RedisDB        int    `envconfig:"REDIS_DB" default:"0"`
	RedisKeyPrefix string `envconfig:"REDIS_KEY_PREFIX" default:"salestrack:"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	RateLimitPerMinute   int  `envconfig:"RATE_LIMIT_PER_MINUTE" default:"300"`
	TransactionListLimit int  `envconfig:"TRANSACTION_LIST_LIMIT" default:"1000"`
	SeedDemoData         bool `envconfig:"SEED_DEMO_DATA" default:"false"`
}

// Load reads an optional .env file from the working directory and then the
// process environment.
func Load() (Config, error) {
	return LoadFrom(".env")
}

// LoadFrom is Load with an explicit env file. Variables already present in
// the environment take precedence over the file; a missing file is ignored.
func LoadFrom(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Backend names the store selected by the connection settings: postgres when
// DATABASE_URL is set, then redis when REDIS_ADDR is set, else memory.
func (c Config) Backend() string {
	switch {
	case c.DatabaseURL != "":
		return BackendPostgres
	case c.RedisAddr != "":
		return BackendRedis
	default:
		return BackendMemory
	}
}
