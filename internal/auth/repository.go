package auth

import (
	"context"
	"time"

	"github.com/seenlyhq/seenly/internal/domain"
)

// Repository is the storage surface the authenticator needs.
type Repository interface {
	// Create persists a new API key.
	Create(ctx context.Context, key *domain.APIKey) error

	// FindByShortToken looks up an active API key by its indexed short token.
	// Returns domain.ErrNotFound if no active key matches.
	FindByShortToken(ctx context.Context, shortToken string) (*domain.APIKey, error)

	// UpdateLastUsed records when the key was last used for authentication.
	UpdateLastUsed(ctx context.Context, keyID string, usedAt time.Time) error
}
