package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seenlyhq/seenly/internal/auth"
	"github.com/seenlyhq/seenly/internal/config"
	seenlyhttp "github.com/seenlyhq/seenly/internal/http"
	"github.com/seenlyhq/seenly/internal/http/handler"
	"github.com/seenlyhq/seenly/internal/infrastructure/persistence/postgres"
	"github.com/seenlyhq/seenly/internal/infrastructure/persistence/sqlite"
	"github.com/seenlyhq/seenly/internal/service"
	"github.com/seenlyhq/seenly/internal/storage"
	fsstore "github.com/seenlyhq/seenly/internal/storage/fs"
	"github.com/seenlyhq/seenly/internal/storage/gcs"
	"github.com/seenlyhq/seenly/pkg/observability"
)

func main() {
	if err := run(); err != nil {
		// slog may not be initialized yet if config loading fails
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

// appStore is the combined storage surface the server needs.
type appStore interface {
	service.Store
	auth.Repository
	Close() error
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Storage.Validate(); err != nil {
		return err
	}
	if err := cfg.Assets.Validate(); err != nil {
		return err
	}
	if err := cfg.Paging.Validate(); err != nil {
		return err
	}

	// Root context for all normal operations, cancelled on SIGTERM/SIGINT.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Observability: logger, tracer, meter. Endpoint and auth come from the
	// standard OTEL_* env vars.
	lp, logger, err := observability.InitLogger(ctx, cfg.Otel.ServiceName, cfg.Otel.Enabled)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := newShutdownContext()
		defer cancel()
		if err := lp.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown logger provider", "error", err)
		}
	}()
	slog.SetDefault(logger)

	tp, err := observability.InitTracerProvider(ctx, cfg.Otel.ServiceName, cfg.Otel.Enabled)
	if err != nil {
		return fmt.Errorf("failed to init tracer provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := newShutdownContext()
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown tracer provider", "error", err)
		}
	}()

	mp, err := observability.InitMeterProvider(ctx, cfg.Otel.ServiceName, cfg.Otel.Enabled)
	if err != nil {
		return fmt.Errorf("failed to init meter provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := newShutdownContext()
		defer cancel()
		if err := mp.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown meter provider", "error", err)
		}
	}()

	slog.InfoContext(ctx, "starting seenly server", "env", cfg.Env)

	store, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close store", "error", err)
		}
	}()

	assets, err := newAssetStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create asset store: %w", err)
	}

	svc := service.New(store, cfg.Paging.DefaultPageSize, cfg.Paging.MaxPageSize)

	authenticator := auth.NewAuthenticator(ctx, store, auth.Config{
		OperationTimeout: cfg.Auth.OperationTimeout,
		UpdateQueueSize:  cfg.Auth.UpdateQueueSize,
	})
	slog.InfoContext(ctx, "API key authentication enabled")

	if cfg.Billing.WebhookSecret == "" {
		slog.WarnContext(ctx, "billing webhook secret not set, webhook endpoint disabled")
	}

	apiServer := seenlyhttp.NewAPIServer(
		handler.NewServer(svc),
		handler.NewBillingWebhook(svc, cfg.Billing.WebhookSecret),
		handler.NewAssets(svc, assets),
		authenticator,
		seenlyhttp.ServerConfig{
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
			MaxBodyBytes: cfg.Server.MaxBodyBytes,
		},
	)

	errResult := make(chan error, 1)
	go func() {
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(shutdownCtx, "HTTP server shutdown timed out", "error", err)
		} else {
			slog.InfoContext(shutdownCtx, "HTTP server shutdown complete")
		}

		// Drains pending last_used_at updates before the store closes.
		if err := authenticator.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(shutdownCtx, "authenticator shutdown timeout", "error", err)
		} else {
			slog.InfoContext(shutdownCtx, "authenticator shutdown complete")
		}

		return nil
	case err := <-errResult:
		return err
	}
}

// newStore creates the relational store selected by configuration.
func newStore(ctx context.Context, cfg *config.Config) (appStore, error) {
	switch cfg.Storage.Type {
	case config.StoragePostgres:
		store, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:             cfg.Storage.PostgresURL,
			MaxOpenConns:    cfg.Storage.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.MaxIdleConns,
			ConnMaxLifetime: cfg.Storage.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Storage.ConnMaxIdleTime,
		})
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "storage initialized", "type", "postgres", "url", maskPassword(cfg.Storage.PostgresURL))
		return store, nil
	case config.StorageSQLite:
		store, err := sqlite.NewStore(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "storage initialized", "type", "sqlite", "path", cfg.Storage.SQLitePath)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Storage.Type)
	}
}

// newAssetStore creates the content asset blob store selected by configuration.
func newAssetStore(ctx context.Context, cfg *config.Config) (storage.AssetStore, error) {
	switch cfg.Assets.Type {
	case config.AssetStoreFS:
		store, err := fsstore.NewStore(cfg.Assets.FSDir)
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "asset store initialized", "type", "fs", "dir", cfg.Assets.FSDir)
		return store, nil
	case config.AssetStoreGCS:
		store, err := gcs.NewStore(ctx, cfg.Assets.GCSBucket)
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "asset store initialized", "type", "gcs", "bucket", cfg.Assets.GCSBucket)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown asset store type: %s", cfg.Assets.Type)
	}
}

// newShutdownContext creates a fresh context with timeout for cleanup work.
// Uses Background() since the main context is already cancelled at that point.
func newShutdownContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// maskPassword masks the password in a connection string for logging.
func maskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		// Full redaction when the DSN cannot be parsed.
		return "[REDACTED]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxxx")
		}
	}
	return u.String()
}
