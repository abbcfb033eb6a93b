// Package ingestion implements the data-ingestion orchestrator.
package ingestion

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mlingest/internal/domain"
)

// splitSeed fixes the pseudo-random seed for the train/test split so that
// the same input always yields the same partition.
const splitSeed = 42

// DatasetProvider yields the cleaned dataset for a collection.
type DatasetProvider interface {
	CleanDataset(ctx context.Context, collection, database string) (*domain.Dataset, error)
}

// Config holds the per-run settings of the ingestion stage.
type Config struct {
	Collection          string
	Database            string // empty selects the connector default
	FeatureStorePath    string
	TrainFilePath       string
	TestFilePath        string
	TrainTestSplitRatio float64  // test fraction, in (0,1)
	DropColumns         []string // schema-listed columns pruned before the split
}

// Service runs the ingestion sequence: fetch+clean, persist the feature-store
// snapshot, prune schema-listed columns, split train/test, persist both
// splits, emit the artifact. Linear, no retries; any failure aborts the run
// and already-written files are left in place.
type Service struct {
	cfg      Config
	provider DatasetProvider
	saver    domain.DataSaver
	runs     domain.RunRepository
	logger   *slog.Logger
}

// NewService creates a Service.
func NewService(cfg Config, provider DatasetProvider, saver domain.DataSaver, runs domain.RunRepository, logger *slog.Logger) *Service {
	return &Service{cfg: cfg, provider: provider, saver: saver, runs: runs, logger: logger}
}

// Run executes one ingestion run and records it in the run history.
func (s *Service) Run(ctx context.Context) (*domain.IngestionArtifact, error) {
	run := &domain.IngestionRun{
		ID:         uuid.NewString(),
		Collection: s.cfg.Collection,
		Status:     domain.RunStatusRunning,
		StartedAt:  time.Now().UTC(),
	}
	logger := s.logger.With("run_id", run.ID)

	if err := s.runs.InsertRun(ctx, run); err != nil {
		logger.Error("insert run record", "error", err)
		return nil, err
	}

	artifact, err := s.ingest(ctx, run, logger)

	now := time.Now().UTC()
	run.FinishedAt = &now
	if err != nil {
		run.Status = domain.RunStatusFailed
		msg := err.Error()
		run.ErrorMessage = &msg
	} else {
		run.Status = domain.RunStatusSucceeded
		run.RawPath = &artifact.FeatureStorePath
		run.TrainPath = &artifact.TrainFilePath
		run.TestPath = &artifact.TestFilePath
	}
	if ferr := s.runs.FinishRun(ctx, run); ferr != nil {
		logger.Error("finish run record", "error", ferr)
	}

	return artifact, err
}

func (s *Service) ingest(ctx context.Context, run *domain.IngestionRun, logger *slog.Logger) (*domain.IngestionArtifact, error) {
	// Fetch and clean. An empty cleaned set is a hard error, raised before
	// any file is written — this covers both an empty collection and a
	// non-empty one that collapses to zero rows after deduplication.
	ds, err := s.provider.CleanDataset(ctx, s.cfg.Collection, s.cfg.Database)
	if err != nil {
		logger.Error("fetch and clean failed", "error", err)
		return nil, err
	}
	if ds.NumRows() == 0 {
		err := domain.ErrValidation("cleaned dataset for collection %q is empty", s.cfg.Collection)
		logger.Error("empty-result gate failed", "error", err)
		return nil, err
	}
	run.RowsIngested = int64(ds.NumRows())

	// Persist the feature-store snapshot.
	if err := s.saver.Save(ds, s.cfg.FeatureStorePath); err != nil {
		logger.Error("persist feature store failed", "error", err)
		return nil, err
	}
	logger.Info("feature store written", "path", s.cfg.FeatureStorePath, "rows", ds.NumRows())

	// Prune schema-listed columns. Missing names are a no-op.
	if len(s.cfg.DropColumns) > 0 {
		ds = ds.DropColumns(s.cfg.DropColumns)
		logger.Info("columns pruned", "drop_columns", s.cfg.DropColumns)
	}

	// Deterministic split.
	train, test := ds.Split(splitSeed, s.cfg.TrainTestSplitRatio)
	run.TrainRows = int64(train.NumRows())
	run.TestRows = int64(test.NumRows())
	logger.Info("dataset split", "train_rows", train.NumRows(), "test_rows", test.NumRows(), "ratio", s.cfg.TrainTestSplitRatio)

	// Persist the splits.
	if err := s.saver.Save(train, s.cfg.TrainFilePath); err != nil {
		logger.Error("persist train split failed", "error", err)
		return nil, err
	}
	if err := s.saver.Save(test, s.cfg.TestFilePath); err != nil {
		logger.Error("persist test split failed", "error", err)
		return nil, err
	}

	artifact := &domain.IngestionArtifact{
		FeatureStorePath: s.cfg.FeatureStorePath,
		TrainFilePath:    s.cfg.TrainFilePath,
		TestFilePath:     s.cfg.TestFilePath,
	}
	logger.Info("ingestion artifact created",
		"feature_store", artifact.FeatureStorePath,
		"train", artifact.TrainFilePath,
		"test", artifact.TestFilePath)
	return artifact, nil
}
