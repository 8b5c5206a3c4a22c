package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/seenlyhq/seenly/internal/domain"
)

// Create persists a new API key.
func (s *Store) Create(ctx context.Context, key *domain.APIKey) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO api_keys (id, workspace_id, key_type, service, version,
			short_token, long_secret_hash, name, is_active, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		key.ID, key.WorkspaceID, key.KeyType, key.Service, key.Version,
		key.ShortToken, key.LongSecretHash, key.Name, key.IsActive,
		key.CreatedAt.UTC(), nullTime(key.ExpiresAt))
	if err != nil {
		return fmt.Errorf("failed to create API key: %w", err)
	}
	return nil
}

// FindByShortToken retrieves an active API key by its short token.
func (s *Store) FindByShortToken(ctx context.Context, shortToken string) (*domain.APIKey, error) {
	var (
		key               domain.APIKey
		lastUsed, expires sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, key_type, service, version,
			short_token, long_secret_hash, name, is_active,
			created_at, last_used_at, expires_at
		FROM api_keys
		WHERE short_token = ? AND is_active = 1`,
		shortToken).Scan(&key.ID, &key.WorkspaceID, &key.KeyType, &key.Service, &key.Version,
		&key.ShortToken, &key.LongSecretHash, &key.Name, &key.IsActive,
		&key.CreatedAt, &lastUsed, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: API key", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}

	key.CreatedAt = key.CreatedAt.UTC()
	key.LastUsedAt = timePtr(lastUsed)
	key.ExpiresAt = timePtr(expires)
	return &key, nil
}

// UpdateLastUsed records when the key was last used. Only moves the timestamp
// forward; an older timestamp is an idempotent no-op.
func (s *Store) UpdateLastUsed(ctx context.Context, keyID string, usedAt time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE api_keys
		SET last_used_at = ?
		WHERE id = ? AND (last_used_at IS NULL OR last_used_at < ?)`,
		usedAt.UTC(), keyID, usedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to update last used: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM api_keys WHERE id = ?)`, keyID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check key existence: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: API key", domain.ErrNotFound)
		}
	}
	return nil
}
