package fs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seenlyhq/seenly/internal/storage"
	"github.com/seenlyhq/seenly/internal/storage/compliance"
)

func TestFSStore_Compliance(t *testing.T) {
	compliance.RunAssetStoreComplianceTest(t, func() (storage.AssetStore, func()) {
		store, err := NewStore(t.TempDir())
		require.NoError(t, err)
		return store, func() {}
	})
}
