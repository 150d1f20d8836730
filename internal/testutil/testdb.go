package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/kanri/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory board database that is closed when
// the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return openTestDB(t, db.MemoryPath)
}

// NewTestFileDB opens a migrated on-disk database under t.TempDir, for tests
// that need WAL mode or a reopen.
func NewTestFileDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board", "kanri.db")
	return openTestDB(t, path), path
}

// NewTestUoW creates a UnitOfWork backed by the given test database.
func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}

func openTestDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}
