// Package repository implements persistence for ingestion run history.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"mlingest/internal/domain"
)

// RunRepo persists ingestion runs in SQLite. It implements
// domain.RunRepository.
type RunRepo struct {
	db *sql.DB
}

// NewRunRepo creates a RunRepo.
func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

// InsertRun records a newly started run.
func (r *RunRepo) InsertRun(ctx context.Context, run *domain.IngestionRun) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ingestion_runs (id, collection, status, started_at)
		VALUES (?, ?, ?, ?)`,
		run.ID, run.Collection, run.Status, run.StartedAt)
	if err != nil {
		return fmt.Errorf("insert ingestion run %s: %w", run.ID, err)
	}
	return nil
}

// FinishRun records the outcome of a run.
func (r *RunRepo) FinishRun(ctx context.Context, run *domain.IngestionRun) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE ingestion_runs
		SET status = ?, rows_ingested = ?, train_rows = ?, test_rows = ?,
		    raw_path = ?, train_path = ?, test_path = ?,
		    error_message = ?, finished_at = ?
		WHERE id = ?`,
		run.Status, run.RowsIngested, run.TrainRows, run.TestRows,
		run.RawPath, run.TrainPath, run.TestPath,
		run.ErrorMessage, run.FinishedAt, run.ID)
	if err != nil {
		return fmt.Errorf("finish ingestion run %s: %w", run.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish ingestion run %s: %w", run.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("finish ingestion run %s: run not found", run.ID)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (r *RunRepo) ListRuns(ctx context.Context, limit int) ([]domain.IngestionRun, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, collection, status, rows_ingested, train_rows, test_rows,
		       raw_path, train_path, test_path, error_message, started_at, finished_at
		FROM ingestion_runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list ingestion runs: %w", err)
	}
	defer rows.Close()

	var out []domain.IngestionRun
	for rows.Next() {
		var run domain.IngestionRun
		if err := rows.Scan(
			&run.ID, &run.Collection, &run.Status,
			&run.RowsIngested, &run.TrainRows, &run.TestRows,
			&run.RawPath, &run.TrainPath, &run.TestPath,
			&run.ErrorMessage, &run.StartedAt, &run.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ingestion run: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
