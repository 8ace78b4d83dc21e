package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/kotoba/internal/client/client"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// openDB returns a migrated temp database with a users row per id.
func openDB(t *testing.T, userIDs ...string) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "kotoba.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, id := range userIDs {
		_, err := db.ExecContext(ctx, `INSERT INTO users (id, email) VALUES (?, ?)`, id, id+"@example.com")
		require.NoError(t, err)
	}
	return db
}
