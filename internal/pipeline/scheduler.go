package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a stage on a cron schedule. Each firing is a full
// ingestion run; a failed run is logged and the schedule keeps going.
type Scheduler struct {
	cron   *cron.Cron
	stage  *Stage
	logger *slog.Logger
}

// NewScheduler creates a Scheduler for the given stage.
func NewScheduler(stage *Stage, logger *slog.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), stage: stage, logger: logger}
}

// Schedule registers the stage under the given cron expression.
func (s *Scheduler) Schedule(spec string) error {
	_, err := s.cron.AddFunc(spec, func() {
		if _, err := s.stage.Run(context.Background()); err != nil {
			s.logger.Error("scheduled run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return nil
}

// Start begins firing scheduled runs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("ingestion scheduler started")
}

// Stop stops the scheduler and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("ingestion scheduler stopped")
}
