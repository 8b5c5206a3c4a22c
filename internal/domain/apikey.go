package domain

import "time"

// APIKey is a workspace-scoped credential using a split-token pattern:
//   - ShortToken: indexed portion for lookup
//   - LongSecretHash: BLAKE2b-256 hash of the long secret for verification
//
// The full plaintext key is only visible once, at creation. The key carries
// the workspace scope used by every authenticated request.
type APIKey struct {
	ID             string
	WorkspaceID    string
	KeyType        string // "sk" = secret key
	Service        string // "seenly"
	Version        string // "v1"
	ShortToken     string
	LongSecretHash string
	Name           string
	IsActive       bool
	CreatedAt      time.Time
	LastUsedAt     *time.Time
	ExpiresAt      *time.Time
}
