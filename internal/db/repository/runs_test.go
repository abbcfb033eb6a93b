package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mlingest/internal/db"
	"mlingest/internal/domain"
)

func newRun() *domain.IngestionRun {
	return &domain.IngestionRun{
		ID:         uuid.NewString(),
		Collection: "data",
		Status:     domain.RunStatusRunning,
		StartedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

func TestInsertAndFinishRun(t *testing.T) {
	repo := NewRunRepo(db.OpenTestSQLite(t))
	ctx := context.Background()

	run := newRun()
	require.NoError(t, repo.InsertRun(ctx, run))

	now := time.Now().UTC().Truncate(time.Second)
	raw, train, test := "raw.parquet", "train.parquet", "test.parquet"
	run.Status = domain.RunStatusSucceeded
	run.RowsIngested, run.TrainRows, run.TestRows = 9, 7, 2
	run.RawPath, run.TrainPath, run.TestPath = &raw, &train, &test
	run.FinishedAt = &now
	require.NoError(t, repo.FinishRun(ctx, run))

	runs, err := repo.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	got := runs[0]
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, domain.RunStatusSucceeded, got.Status)
	assert.Equal(t, int64(9), got.RowsIngested)
	assert.Equal(t, int64(7), got.TrainRows)
	assert.Equal(t, int64(2), got.TestRows)
	require.NotNil(t, got.RawPath)
	assert.Equal(t, "raw.parquet", *got.RawPath)
	require.NotNil(t, got.FinishedAt)
	assert.Nil(t, got.ErrorMessage)
}

func TestFinishRunRecordsFailure(t *testing.T) {
	repo := NewRunRepo(db.OpenTestSQLite(t))
	ctx := context.Background()

	run := newRun()
	require.NoError(t, repo.InsertRun(ctx, run))

	now := time.Now().UTC()
	msg := "cleaned dataset for collection \"data\" is empty"
	run.Status = domain.RunStatusFailed
	run.ErrorMessage = &msg
	run.FinishedAt = &now
	require.NoError(t, repo.FinishRun(ctx, run))

	runs, err := repo.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.RunStatusFailed, runs[0].Status)
	require.NotNil(t, runs[0].ErrorMessage)
	assert.Equal(t, msg, *runs[0].ErrorMessage)
}

func TestFinishRunUnknownID(t *testing.T) {
	repo := NewRunRepo(db.OpenTestSQLite(t))

	run := newRun()
	now := time.Now().UTC()
	run.FinishedAt = &now

	err := repo.FinishRun(context.Background(), run)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListRunsOrdersNewestFirst(t *testing.T) {
	repo := NewRunRepo(db.OpenTestSQLite(t))
	ctx := context.Background()

	older := newRun()
	older.StartedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.InsertRun(ctx, older))

	newer := newRun()
	require.NoError(t, repo.InsertRun(ctx, newer))

	runs, err := repo.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.ID, runs[0].ID)
	assert.Equal(t, older.ID, runs[1].ID)
}
