// Package dbtest opens throwaway in-memory databases for repository and
// service tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"

	"bikerental/util/database"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// Open returns a fresh SQLite database with the application schema and
// foreign keys enforced. A single connection keeps the in-memory data alive.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open(database.DriverSQLite, "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.EnsureSchema(context.Background(), db))
	return db
}

// Exec runs seed statements, failing the test on error.
func Exec(t *testing.T, db *sql.DB, stmts ...string) {
	t.Helper()
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err, s)
	}
}
