package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SEENLY_STORAGE_TYPE", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(1048576), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "./seenly.db", cfg.Storage.SQLitePath)
	assert.Equal(t, AssetStoreFS, cfg.Assets.Type)
	assert.Equal(t, 50, cfg.Paging.DefaultPageSize)
	assert.Equal(t, "dev", cfg.Env)
	assert.False(t, cfg.Otel.Enabled)
}

func TestLoadPostgresRequiresURL(t *testing.T) {
	t.Setenv("SEENLY_STORAGE_TYPE", "postgres")
	t.Setenv("SEENLY_POSTGRES_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEENLY_POSTGRES_URL")
}

func TestLoadRejectsUnknownStorageType(t *testing.T) {
	t.Setenv("SEENLY_STORAGE_TYPE", "cassandra")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown SEENLY_STORAGE_TYPE")
}

func TestLoadGCSAssetsRequireBucket(t *testing.T) {
	t.Setenv("SEENLY_STORAGE_TYPE", "sqlite")
	t.Setenv("SEENLY_ASSET_STORE_TYPE", "gcs")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEENLY_ASSET_GCS_BUCKET")
}

func TestLoadPagingBounds(t *testing.T) {
	t.Setenv("SEENLY_STORAGE_TYPE", "sqlite")
	t.Setenv("SEENLY_DEFAULT_PAGE_SIZE", "500")
	t.Setenv("SEENLY_MAX_PAGE_SIZE", "200")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEENLY_DEFAULT_PAGE_SIZE")
}
