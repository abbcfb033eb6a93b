// Package access composes extraction and cleaning into one call.
package access

import (
	"context"
	"log/slog"

	"mlingest/internal/domain"
)

// Service fetches a collection and applies the fixed cleaning sequence.
// It adds no failure modes of its own — errors surface from the extractor
// and cleaner unchanged.
type Service struct {
	extractor domain.DataExtractor
	cleaner   domain.RecordCleaner
	logger    *slog.Logger
}

// NewService creates a Service.
func NewService(extractor domain.DataExtractor, cleaner domain.RecordCleaner, logger *slog.Logger) *Service {
	return &Service{extractor: extractor, cleaner: cleaner, logger: logger}
}

// CleanDataset exports the named collection and returns it cleaned:
// identifier column dropped, missing-value sentinels normalized, exact
// duplicates removed.
func (s *Service) CleanDataset(ctx context.Context, collection, database string) (*domain.Dataset, error) {
	logger := s.logger.With("collection", collection)

	ds, err := s.extractor.ExportDataset(ctx, collection, database)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		return nil, err
	}
	logger.Info("data fetched", "rows", ds.NumRows())

	ds = s.cleaner.RemoveObjectID(ds)
	ds = s.cleaner.NormalizeMissing(ds)
	ds = s.cleaner.DropDuplicates(ds)
	logger.Info("data cleaned", "rows", ds.NumRows())

	return ds, nil
}
