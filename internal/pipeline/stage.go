// Package pipeline runs pipeline stages and schedules recurring executions.
package pipeline

import (
	"context"
	"log/slog"

	"mlingest/internal/domain"
)

// StageName identifies the data-ingestion stage in logs.
const StageName = "data-ingestion"

// Orchestrator executes one ingestion run.
type Orchestrator interface {
	Run(ctx context.Context) (*domain.IngestionArtifact, error)
}

// Stage wraps an orchestrator with stage boundary logging. Pure delegation —
// it adds no logic beyond the start/completion markers and error logging.
type Stage struct {
	name   string
	orch   Orchestrator
	logger *slog.Logger
}

// NewStage creates a Stage.
func NewStage(name string, orch Orchestrator, logger *slog.Logger) *Stage {
	return &Stage{name: name, orch: orch, logger: logger}
}

// Run logs the stage start marker, runs the orchestrator, and logs the
// completion marker. Failures are logged and propagated unchanged.
func (s *Stage) Run(ctx context.Context) (*domain.IngestionArtifact, error) {
	s.logger.Info(">>> stage started", "stage", s.name)

	artifact, err := s.orch.Run(ctx)
	if err != nil {
		s.logger.Error(">>> stage failed", "stage", s.name, "error", err)
		return nil, err
	}

	s.logger.Info(">>> stage completed", "stage", s.name)
	return artifact, nil
}
