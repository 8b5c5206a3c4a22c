// Package keygen generates and parses Seenly API keys.
package keygen

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/seenlyhq/seenly/internal/domain"
)

// APIKeyParts represents the components of an API key.
type APIKeyParts struct {
	KeyType    string // "sk" (secret key)
	Service    string // "seenly"
	Version    string // "v1"
	ShortToken string // 12 hex chars from the BLAKE2b hash prefix, used for lookup
	LongSecret string // 43 chars base64, used for verification
	FullKey    string // complete assembled key
}

// GenerateAPIKey creates a new API key following the pattern:
// {key_type}-{service}-{version}-{short_token}-{long_secret}
// Example: sk-seenly-v1-a3f5d8c2b4e6-8h3k2jf9s7d6f5g4h3j2k1m0n9p8q7r6s5t4u3v2w1x
func GenerateAPIKey(keyType, service, version string) (*APIKeyParts, error) {
	// 32 random bytes = 43 chars in raw URL base64
	longBytes := make([]byte, 32)
	if _, err := rand.Read(longBytes); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	longSecret := base64.RawURLEncoding.EncodeToString(longBytes)

	// Derive the short token from the BLAKE2b hash of the long secret.
	// 48 bits from a 256-bit hash backed by crypto/rand entropy is enough
	// for a collision-resistant lookup index.
	hash := blake2b.Sum256([]byte(longSecret))
	shortToken := hex.EncodeToString(hash[:6])

	fullKey := fmt.Sprintf("%s-%s-%s-%s-%s", keyType, service, version, shortToken, longSecret)

	return &APIKeyParts{
		KeyType:    keyType,
		Service:    service,
		Version:    version,
		ShortToken: shortToken,
		LongSecret: longSecret,
		FullKey:    fullKey,
	}, nil
}

// ParseAPIKey parses an API key string into its components.
// The long secret uses base64 URL encoding and may itself contain hyphens,
// so the key is split into at most 5 parts.
func ParseAPIKey(apiKey string) (*APIKeyParts, error) {
	parts := strings.SplitN(apiKey, "-", 5)
	if len(parts) != 5 {
		return nil, fmt.Errorf("%w: expected 5 parts, got %d", domain.ErrInvalidAPIKeyFormat, len(parts))
	}

	return &APIKeyParts{
		KeyType:    parts[0],
		Service:    parts[1],
		Version:    parts[2],
		ShortToken: parts[3],
		LongSecret: parts[4],
		FullKey:    apiKey,
	}, nil
}

// HashSecret computes the BLAKE2b-256 hash of the secret, hex-encoded.
func HashSecret(secret string) string {
	hash := blake2b.Sum256([]byte(secret))
	return hex.EncodeToString(hash[:])
}

// GetDisplayKey returns a safe-to-display version showing only prefix and
// short token, e.g. "sk-seenly-v1-a3f5d8c2b4e6-****".
func (k *APIKeyParts) GetDisplayKey() string {
	return fmt.Sprintf("%s-%s-%s-%s-****", k.KeyType, k.Service, k.Version, k.ShortToken)
}

// MaskAPIKey returns a safe-to-log version of an API key, e.g. "sk-***".
func MaskAPIKey(apiKey string) string {
	parts, err := ParseAPIKey(apiKey)
	if err != nil {
		return "***"
	}
	return parts.KeyType + "-***"
}
