// Package config holds the application configuration, loaded from SEENLY_*
// environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/seenlyhq/seenly/internal/env"
)

// Storage type values.
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Asset store type values.
const (
	AssetStoreFS  = "fs"
	AssetStoreGCS = "gcs"
)

// Config holds the application configuration.
type Config struct {
	Server   Server
	Storage  Storage
	Assets   Assets
	Auth     Auth
	Paging   Paging
	Otel     Otel
	Billing  Billing
	Env      string `env:"SEENLY_ENV" default:"dev"` // dev, prod
}

// Server configures the HTTP listener.
type Server struct {
	Port            string        `env:"SEENLY_HTTP_PORT" default:"8080"`
	ReadTimeout     time.Duration `env:"SEENLY_HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `env:"SEENLY_HTTP_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SEENLY_HTTP_IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `env:"SEENLY_SHUTDOWN_TIMEOUT" default:"15s"`
	MaxBodyBytes    int64         `env:"SEENLY_MAX_BODY_BYTES" default:"1048576"`
}

// Storage configures the relational store.
type Storage struct {
	Type            string        `env:"SEENLY_STORAGE_TYPE" default:"postgres"` // postgres, sqlite
	PostgresURL     string        `env:"SEENLY_POSTGRES_URL"`
	SQLitePath      string        `env:"SEENLY_SQLITE_PATH" default:"./seenly.db"`
	MaxOpenConns    int           `env:"SEENLY_DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `env:"SEENLY_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `env:"SEENLY_DB_CONN_MAX_LIFETIME" default:"5m"`
	ConnMaxIdleTime time.Duration `env:"SEENLY_DB_CONN_MAX_IDLE_TIME" default:"1m"`
}

// Validate checks storage settings for the selected backend.
func (s *Storage) Validate() error {
	switch s.Type {
	case StoragePostgres:
		if s.PostgresURL == "" {
			return fmt.Errorf("SEENLY_POSTGRES_URL is required when SEENLY_STORAGE_TYPE is %q", StoragePostgres)
		}
	case StorageSQLite:
		if s.SQLitePath == "" {
			return fmt.Errorf("SEENLY_SQLITE_PATH is required when SEENLY_STORAGE_TYPE is %q", StorageSQLite)
		}
	default:
		return fmt.Errorf("unknown SEENLY_STORAGE_TYPE: %s", s.Type)
	}
	return nil
}

// Assets configures the content asset blob store.
type Assets struct {
	Type      string `env:"SEENLY_ASSET_STORE_TYPE" default:"fs"` // fs, gcs
	FSDir     string `env:"SEENLY_ASSET_FS_DIR" default:"./seenly-assets"`
	GCSBucket string `env:"SEENLY_ASSET_GCS_BUCKET"`
}

// Validate checks asset store settings for the selected backend.
func (a *Assets) Validate() error {
	switch a.Type {
	case AssetStoreFS:
		if a.FSDir == "" {
			return fmt.Errorf("SEENLY_ASSET_FS_DIR is required when SEENLY_ASSET_STORE_TYPE is %q", AssetStoreFS)
		}
	case AssetStoreGCS:
		if a.GCSBucket == "" {
			return fmt.Errorf("SEENLY_ASSET_GCS_BUCKET is required when SEENLY_ASSET_STORE_TYPE is %q", AssetStoreGCS)
		}
	default:
		return fmt.Errorf("unknown SEENLY_ASSET_STORE_TYPE: %s", a.Type)
	}
	return nil
}

// Auth configures API-key authentication.
type Auth struct {
	OperationTimeout time.Duration `env:"SEENLY_AUTH_OP_TIMEOUT" default:"5s"`
	UpdateQueueSize  int           `env:"SEENLY_AUTH_UPDATE_QUEUE" default:"1000"`
}

// Paging configures list pagination bounds.
type Paging struct {
	DefaultPageSize int `env:"SEENLY_DEFAULT_PAGE_SIZE" default:"50"`
	MaxPageSize     int `env:"SEENLY_MAX_PAGE_SIZE" default:"200"`
}

// Validate keeps the bounds sane.
func (p *Paging) Validate() error {
	if p.DefaultPageSize <= 0 || p.MaxPageSize <= 0 {
		return fmt.Errorf("page sizes must be positive")
	}
	if p.DefaultPageSize > p.MaxPageSize {
		return fmt.Errorf("SEENLY_DEFAULT_PAGE_SIZE (%d) exceeds SEENLY_MAX_PAGE_SIZE (%d)", p.DefaultPageSize, p.MaxPageSize)
	}
	return nil
}

// Otel configures observability export.
type Otel struct {
	Enabled     bool   `env:"SEENLY_OTEL_ENABLED" default:"false"`
	ServiceName string `env:"SEENLY_OTEL_SERVICE_NAME" default:"seenly"`
}

// Billing configures the billing webhook path.
type Billing struct {
	WebhookSecret string `env:"SEENLY_BILLING_WEBHOOK_SECRET"`
}

// Load parses environment variables into a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
