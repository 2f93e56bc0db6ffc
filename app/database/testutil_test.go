package database

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"school-gate/app/config"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := config.OpenDB(":memory:")
	require.NoError(t, err)
	// Every pooled connection would get its own in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, RunMigrations(db))
	return db
}
