package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// OpenTestSQLite opens a migrated SQLite database in a per-test temp
// directory and closes it when the test finishes.
func OpenTestSQLite(t *testing.T) *sql.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "runs.sqlite"))
	if err != nil {
		t.Fatalf("open test sqlite: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := Migrate(context.Background(), database); err != nil {
		t.Fatalf("migrate test sqlite: %v", err)
	}
	return database
}
