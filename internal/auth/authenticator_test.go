package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenlyhq/seenly/internal/domain"
)

// fakeRepo is an in-memory Repository keyed by short token.
type fakeRepo struct {
	mu       sync.Mutex
	keys     map[string]*domain.APIKey
	lastUsed map[string]time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		keys:     make(map[string]*domain.APIKey),
		lastUsed: make(map[string]time.Time),
	}
}

func (r *fakeRepo) Create(_ context.Context, key *domain.APIKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[key.ShortToken] = key
	return nil
}

func (r *fakeRepo) FindByShortToken(_ context.Context, shortToken string) (*domain.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key, ok := r.keys[shortToken]
	if !ok || !key.IsActive {
		return nil, domain.ErrNotFound
	}
	return key, nil
}

func (r *fakeRepo) UpdateLastUsed(_ context.Context, keyID string, usedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastUsed[keyID] = usedAt
	return nil
}

func newTestAuthenticator(t *testing.T, repo Repository) *Authenticator {
	t.Helper()
	a := NewAuthenticator(context.Background(), repo, Config{})
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = a.Shutdown(ctx)
	})
	return a
}

func TestValidateAPIKeyHappyPath(t *testing.T) {
	repo := newFakeRepo()
	plainKey, err := CreateAPIKey(context.Background(), repo, "ws-1", "ci key", nil)
	require.NoError(t, err)

	a := newTestAuthenticator(t, repo)

	key, err := a.ValidateAPIKey(context.Background(), plainKey)
	require.NoError(t, err)
	assert.Equal(t, "ws-1", key.WorkspaceID)
	assert.Equal(t, "ci key", key.Name)
}

func TestValidateAPIKeyRejectsTamperedSecret(t *testing.T) {
	repo := newFakeRepo()
	plainKey, err := CreateAPIKey(context.Background(), repo, "ws-1", "key", nil)
	require.NoError(t, err)

	a := newTestAuthenticator(t, repo)

	tampered := plainKey[:len(plainKey)-1] + "x"
	_, err = a.ValidateAPIKey(context.Background(), tampered)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateAPIKeyRejectsGarbageAndUnknown(t *testing.T) {
	a := newTestAuthenticator(t, newFakeRepo())

	_, err := a.ValidateAPIKey(context.Background(), "not-a-key")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = a.ValidateAPIKey(context.Background(), "sk-seenly-v1-000000000000-aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidateAPIKeyRejectsExpired(t *testing.T) {
	repo := newFakeRepo()
	expired := time.Now().UTC().Add(-time.Hour)
	plainKey, err := CreateAPIKey(context.Background(), repo, "ws-1", "old key", &expired)
	require.NoError(t, err)

	a := newTestAuthenticator(t, repo)

	_, err = a.ValidateAPIKey(context.Background(), plainKey)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestShutdownDrainsQueuedUpdates(t *testing.T) {
	repo := newFakeRepo()
	plainKey, err := CreateAPIKey(context.Background(), repo, "ws-1", "key", nil)
	require.NoError(t, err)

	a := NewAuthenticator(context.Background(), repo, Config{})
	validated, err := a.ValidateAPIKey(context.Background(), plainKey)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, a.Shutdown(ctx))

	repo.mu.Lock()
	_, recorded := repo.lastUsed[validated.ID]
	repo.mu.Unlock()
	assert.True(t, recorded, "queued last_used_at update should be applied before shutdown returns")
}

func TestShutdownIsIdempotent(t *testing.T) {
	a := NewAuthenticator(context.Background(), newFakeRepo(), Config{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, a.Shutdown(ctx))
	require.NoError(t, a.Shutdown(ctx))
}
