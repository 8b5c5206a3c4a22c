// Package main implements seenlyctl, the admin CLI for workspace onboarding,
// API key minting, and prompt bootstrap. Not a production surface; it talks to
// the database directly using the same configuration as the server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seenlyhq/seenly/internal/auth"
	"github.com/seenlyhq/seenly/internal/config"
	"github.com/seenlyhq/seenly/internal/domain"
	"github.com/seenlyhq/seenly/internal/infrastructure/persistence/postgres"
	"github.com/seenlyhq/seenly/internal/infrastructure/persistence/sqlite"
	"github.com/seenlyhq/seenly/internal/service"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "seenlyctl",
	Short:         "Seenly admin tool",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(apikeyCmd)
	rootCmd.AddCommand(promptCmd)
}

// adminStore is the storage surface the CLI needs.
type adminStore interface {
	service.Store
	auth.Repository
	CreateWorkspace(ctx context.Context, workspace *domain.Workspace) error
	Close() error
}

// openStore connects to the store selected by SEENLY_* env config.
func openStore(ctx context.Context) (adminStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Storage.Validate(); err != nil {
		return nil, err
	}

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
		return store, nil
	case config.StorageSQLite:
		store, err := sqlite.NewStore(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Storage.Type)
	}
}
