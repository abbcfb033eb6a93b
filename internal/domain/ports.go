package domain

import "context"

// DataExtractor materializes every document of a named collection as a
// dataset. An empty database name selects the extractor's default database.
type DataExtractor interface {
	ExportDataset(ctx context.Context, collection, database string) (*Dataset, error)
}

// RecordCleaner applies the fixed cleaning transforms. Each method returns
// a new dataset and leaves its input untouched.
type RecordCleaner interface {
	RemoveObjectID(ds *Dataset) *Dataset
	NormalizeMissing(ds *Dataset) *Dataset
	DropDuplicates(ds *Dataset) *Dataset
}

// DataSaver persists a dataset to a file, creating parent directories and
// overwriting any existing file at the path.
type DataSaver interface {
	Save(ds *Dataset, path string) error
}

// RunRepository records ingestion run history.
type RunRepository interface {
	InsertRun(ctx context.Context, run *IngestionRun) error
	FinishRun(ctx context.Context, run *IngestionRun) error
	ListRuns(ctx context.Context, limit int) ([]IngestionRun, error)
}
