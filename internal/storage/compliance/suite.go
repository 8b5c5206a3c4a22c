// Package compliance holds a shared behavioral test suite that every
// AssetStore implementation must pass.
package compliance

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seenlyhq/seenly/internal/domain"
	"github.com/seenlyhq/seenly/internal/storage"
)

// RunAssetStoreComplianceTest runs a standard set of tests against an
// AssetStore implementation. setup returns a fresh (empty) store plus a
// cleanup function called after each subtest.
func RunAssetStoreComplianceTest(t *testing.T, setup func() (storage.AssetStore, func())) {
	t.Run("PutAndGet", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		err := store.Put(ctx, "content/a1", strings.NewReader("hero image bytes"))
		require.NoError(t, err)

		r, err := store.Get(ctx, "content/a1")
		require.NoError(t, err)
		defer r.Close()

		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "hero image bytes", string(data))
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		require.NoError(t, store.Put(ctx, "content/a1", strings.NewReader("v1")))
		require.NoError(t, store.Put(ctx, "content/a1", strings.NewReader("v2")))

		r, err := store.Get(ctx, "content/a1")
		require.NoError(t, err)
		defer r.Close()

		data, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, "v2", string(data))
	})

	t.Run("GetMissing", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()

		_, err := store.Get(context.Background(), "content/missing")
		require.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrAssetNotFound))
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("Delete", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		require.NoError(t, store.Put(ctx, "content/a1", bytes.NewReader([]byte{0x89, 0x50})))
		require.NoError(t, store.Delete(ctx, "content/a1"))

		_, err := store.Get(ctx, "content/a1")
		assert.True(t, errors.Is(err, storage.ErrAssetNotFound))

		err = store.Delete(ctx, "content/a1")
		assert.True(t, errors.Is(err, storage.ErrAssetNotFound))
	})

	t.Run("ListByPrefix", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		require.NoError(t, store.Put(ctx, "content/a1", strings.NewReader("x")))
		require.NoError(t, store.Put(ctx, "content/a2", strings.NewReader("y")))
		require.NoError(t, store.Put(ctx, "exports/report", strings.NewReader("z")))

		names, err := store.List(ctx, "content/")
		require.NoError(t, err)
		assert.Equal(t, []string{"content/a1", "content/a2"}, names)

		all, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("RejectsTraversal", func(t *testing.T) {
		store, teardown := setup()
		defer teardown()
		ctx := context.Background()

		err := store.Put(ctx, "../escape", strings.NewReader("x"))
		require.Error(t, err)

		err = store.Put(ctx, "/absolute", strings.NewReader("x"))
		require.Error(t, err)

		err = store.Put(ctx, "", strings.NewReader("x"))
		require.Error(t, err)
	})
}
