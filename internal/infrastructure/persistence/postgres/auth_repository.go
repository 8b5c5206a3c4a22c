package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/seenlyhq/seenly/internal/domain"
)

// Create persists a new API key.
func (s *Store) Create(ctx context.Context, key *domain.APIKey) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO api_keys (id, workspace_id, key_type, service, version,
			short_token, long_secret_hash, name, is_active, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		key.ID, key.WorkspaceID, key.KeyType, key.Service, key.Version,
		key.ShortToken, key.LongSecretHash, key.Name, key.IsActive,
		key.CreatedAt, key.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create API key: %w", err)
	}
	return nil
}

// FindByShortToken retrieves an active API key by its short token.
func (s *Store) FindByShortToken(ctx context.Context, shortToken string) (*domain.APIKey, error) {
	var key domain.APIKey
	err := s.pool.QueryRow(ctx, `
		SELECT id, workspace_id, key_type, service, version,
			short_token, long_secret_hash, name, is_active,
			created_at, last_used_at, expires_at
		FROM api_keys
		WHERE short_token = $1 AND is_active = true`,
		shortToken).Scan(&key.ID, &key.WorkspaceID, &key.KeyType, &key.Service, &key.Version,
		&key.ShortToken, &key.LongSecretHash, &key.Name, &key.IsActive,
		&key.CreatedAt, &key.LastUsedAt, &key.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: API key", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}

	key.CreatedAt = key.CreatedAt.UTC()
	return &key, nil
}

// UpdateLastUsed records when the key was last used. Only moves the timestamp
// forward; an older timestamp is an idempotent no-op.
func (s *Store) UpdateLastUsed(ctx context.Context, keyID string, usedAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE api_keys
		SET last_used_at = $1
		WHERE id = $2 AND (last_used_at IS NULL OR last_used_at < $1)`,
		usedAt, keyID)
	if err != nil {
		return fmt.Errorf("failed to update last used: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Either the key is gone or the timestamp was not later.
		var exists bool
		if err := s.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM api_keys WHERE id = $1)`, keyID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check key existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: API key", domain.ErrNotFound)
		}
	}
	return nil
}
