package db

import (
	"context"
	"database/sql"
	"fmt"
)

// runHistorySchema is the run-history table. Kept as a single idempotent
// statement — the store holds one table and needs no migration tooling.
const runHistorySchema = `
CREATE TABLE IF NOT EXISTS ingestion_runs (
	id             TEXT PRIMARY KEY,
	collection     TEXT NOT NULL,
	status         TEXT NOT NULL,
	rows_ingested  INTEGER NOT NULL DEFAULT 0,
	train_rows     INTEGER NOT NULL DEFAULT 0,
	test_rows      INTEGER NOT NULL DEFAULT 0,
	raw_path       TEXT,
	train_path     TEXT,
	test_path      TEXT,
	error_message  TEXT,
	started_at     TIMESTAMP NOT NULL,
	finished_at    TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_ingestion_runs_started_at ON ingestion_runs(started_at);
`

// Migrate creates the run-history schema if it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, runHistorySchema); err != nil {
		return fmt.Errorf("migrate run history schema: %w", err)
	}
	return nil
}
