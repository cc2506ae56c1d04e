package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	RegistryPath string `env:"REGISTRY_PATH" envDefault:"datasets.yaml"`
	Port         string `env:"PORT" envDefault:"8001"`
	MaxDocs      int    `env:"MAX_DOCS" envDefault:"0"`
	DedupeIndex  bool   `env:"DEDUPE_INDEX" envDefault:"false"`
	CacheDir     string `env:"CACHE_DIR" envDefault:"./dataset-cache"`
	// PreloadWorkers > 0 loads every dataset at startup instead of on first use.
	PreloadWorkers int `env:"PRELOAD_WORKERS" envDefault:"0"`

	S3EndpointURL     string `env:"S3_ENDPOINT_URL"`
	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.MaxDocs < 0 {
		return nil, fmt.Errorf("MAX_DOCS must not be negative, got %d", cfg.MaxDocs)
	}

	if cfg.S3EndpointURL != "" && (cfg.S3AccessKeyID == "" || cfg.S3SecretAccessKey == "") {
		slog.Warn("S3_ENDPOINT_URL is set, but AWS_ACCESS_KEY_ID or AWS_SECRET_ACCESS_KEY are missing")
	}

	return &cfg, nil
}
