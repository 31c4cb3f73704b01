package app

import (
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the host-shell configuration, loadable from environment
// variables (SHOP_ prefix), flags, or YAML config files. The core packages
// never read it directly; everything reaches them through constructors.
type Config struct {
	CatalogBaseURL string        `default:"https://fakestoreapi.com" usage:"Base URL of the product catalog API" flag:"catalog-base-url"`
	HTTPTimeout    time.Duration `default:"15s" usage:"Outbound HTTP request timeout" flag:"http-timeout"`
	UserAgent      string        `default:"shopcore/1.0" usage:"User-Agent for catalog requests" flag:"user-agent"`
	Storage        StorageConfig
}

// StorageConfig selects and configures the favorites storage backend.
type StorageConfig struct {
	// Backend is one of: memory, file, redis, postgres.
	Backend     string `default:"file" usage:"Favorites storage backend (memory|file|redis|postgres)"`
	Dir         string `default:".shopcore" usage:"Directory for the file backend" flag:"storage-dir"`
	RedisAddr   string `default:"localhost:6379" usage:"Redis address for the redis backend" flag:"redis-addr"`
	DatabaseURL string `usage:"PostgreSQL connection URL for the postgres backend" flag:"database-url"`
}

// LoadConfig loads configuration from environment variables and YAML files.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SHOP",
		Files:     []string{"config.yaml", "/etc/shopcore/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	switch cfg.Storage.Backend {
	case "memory", "file", "redis":
	case "postgres":
		if cfg.Storage.DatabaseURL == "" {
			return nil, errors.New("database URL is required: set SHOP_STORAGE_DATABASE_URL")
		}
	default:
		return nil, errors.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return &cfg, nil
}
