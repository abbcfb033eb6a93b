// Package dataset implements in-memory transforms over tabular record sets.
package dataset

import (
	"log/slog"
	"strings"

	"mlingest/internal/domain"
)

// ObjectIDColumn is the store-generated identifier column dropped during cleaning.
const ObjectIDColumn = "_id"

// missingSentinels are the string markers normalized to a nil value.
var missingSentinels = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"null": true,
}

// Cleaner applies the fixed cleaning sequence: identifier drop, missing-value
// normalization, duplicate removal. It is not configurable.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a Cleaner.
func NewCleaner(logger *slog.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// RemoveObjectID drops the store identifier column. No-op if the column is absent.
func (c *Cleaner) RemoveObjectID(ds *domain.Dataset) *domain.Dataset {
	if !ds.HasColumn(ObjectIDColumn) {
		return ds.DropColumns(nil)
	}
	c.logger.Debug("dropping identifier column", "column", ObjectIDColumn)
	return ds.DropColumns([]string{ObjectIDColumn})
}

// NormalizeMissing replaces empty and sentinel string values ("", "na",
// "n/a", "null", case-insensitive) with nil.
func (c *Cleaner) NormalizeMissing(ds *domain.Dataset) *domain.Dataset {
	out := domain.NewDataset(ds.Columns)
	out.Rows = make([]domain.Row, len(ds.Rows))
	replaced := 0
	for i, r := range ds.Rows {
		nr := make(domain.Row, len(r))
		for k, v := range r {
			if s, ok := v.(string); ok && missingSentinels[strings.ToLower(strings.TrimSpace(s))] {
				nr[k] = nil
				replaced++
				continue
			}
			nr[k] = v
		}
		out.Rows[i] = nr
	}
	if replaced > 0 {
		c.logger.Debug("normalized missing-value sentinels", "count", replaced)
	}
	return out
}

// DropDuplicates removes exact-duplicate rows (full-row equality over all
// columns), keeping the first occurrence and the relative order of kept rows.
func (c *Cleaner) DropDuplicates(ds *domain.Dataset) *domain.Dataset {
	out := domain.NewDataset(ds.Columns)
	seen := make(map[string]bool, len(ds.Rows))
	for _, r := range ds.Rows {
		key := ds.RowKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Rows = append(out.Rows, r)
	}
	if dropped := len(ds.Rows) - len(out.Rows); dropped > 0 {
		c.logger.Debug("dropped duplicate rows", "count", dropped)
	}
	return out
}
