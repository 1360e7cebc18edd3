package sql

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"daylight/internal/storage"
	"daylight/internal/storage/compliance"
)

func TestSQLiteStoreCompliance(t *testing.T) {
	compliance.RunStoreComplianceTest(t, func(t *testing.T) (storage.Store, func()) {
		store, err := Open(context.Background(), Config{
			Driver: DriverSQLite,
			DSN:    filepath.Join(t.TempDir(), "daylight.db"),
		})
		require.NoError(t, err)
		return store, func() { _ = store.Close() }
	})
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "oracle", DSN: "whatever"})
	require.Error(t, err)
}
