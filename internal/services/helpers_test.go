package services

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"sitecms-backend-go/internal/db"
	"sitecms-backend-go/internal/migrations"
)

func newTestGateway(t *testing.T) *db.Gateway {
	t.Helper()
	database, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "site.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, migrations.Apply(database))
	return db.NewGateway(database)
}

func patch(t *testing.T, raw string) map[string]json.RawMessage {
	t.Helper()
	parsed, err := UpdateBody([]byte(raw))
	require.NoError(t, err)
	return parsed
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, status, StatusOf(err), "error: %v", err)
}

