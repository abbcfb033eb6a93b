package domain

import "time"

// Ingestion run status constants.
const (
	RunStatusRunning   = "RUNNING"
	RunStatusSucceeded = "SUCCEEDED"
	RunStatusFailed    = "FAILED"
)

// IngestionArtifact is the output contract of one ingestion run: the three
// files the stage produced. It is created once, at the end of a successful
// run, and consumed by downstream stages.
type IngestionArtifact struct {
	FeatureStorePath string
	TrainFilePath    string
	TestFilePath     string
}

// IngestionRun is the persisted record of a single ingestion attempt,
// successful or not.
type IngestionRun struct {
	ID           string
	Collection   string
	Status       string
	RowsIngested int64
	TrainRows    int64
	TestRows     int64
	RawPath      *string
	TrainPath    *string
	TestPath     *string
	ErrorMessage *string
	StartedAt    time.Time
	FinishedAt   *time.Time
}
