// Package storage defines the blob store used for content assets.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/seenlyhq/seenly/internal/domain"
)

// ErrAssetNotFound is returned when the named object does not exist.
var ErrAssetNotFound = fmt.Errorf("asset: %w", domain.ErrNotFound)

// AssetStore stores content assets as named binary objects. Object names may
// contain slashes to namespace objects (e.g. "content/<id>").
type AssetStore interface {
	// Put writes the object, overwriting any existing object with that name.
	Put(ctx context.Context, name string, r io.Reader) error
	// Get opens the object for reading. The caller must close the reader.
	Get(ctx context.Context, name string) (io.ReadCloser, error)
	// Delete removes the object. Deleting a missing object returns ErrAssetNotFound.
	Delete(ctx context.Context, name string) error
	// List returns the names of all objects with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// ValidateObjectName rejects names that could escape the store's namespace.
func ValidateObjectName(name string) error {
	if name == "" {
		return fmt.Errorf("object name must not be empty")
	}
	if strings.HasPrefix(name, "/") || strings.Contains(name, "..") {
		return fmt.Errorf("invalid object name: %s", name)
	}
	return nil
}
