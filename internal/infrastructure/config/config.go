package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// StorageDriver selects the persistence backend: "mysql" or "memory".
	// The memory backend seeds demo data and is meant for local development.
	StorageDriver string `env:"STORAGE_DRIVER, default=memory"`

	MySQL MySQLConfig
	Redis RedisConfig
}

type MySQLConfig struct {
	DSN string `env:"MYSQL_DSN, default=root:root@tcp(localhost:3306)/learnhub?parseTime=true&multiStatements=true"`
}

type RedisConfig struct {
	// Addr left empty disables the course cache entirely.
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return &cfg, nil
}

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
