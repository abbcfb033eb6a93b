// Package csvfile persists datasets as CSV files. It is the plain-text
// alternative to the Parquet saver for debugging and interoperability.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"mlingest/internal/domain"
)

// Saver writes datasets as CSV with a header row. Missing values are
// written as empty cells.
type Saver struct {
	logger *slog.Logger
}

// NewSaver creates a Saver.
func NewSaver(logger *slog.Logger) *Saver {
	return &Saver{logger: logger}
}

// Save writes the dataset to path, creating parent directories as needed and
// overwriting any existing file.
func (s *Saver) Save(ds *domain.Dataset, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.ErrPersistence(err, "create directory for %s", path)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return domain.ErrPersistence(err, "create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(ds.Columns); err != nil {
		return domain.ErrPersistence(err, "write header to %s", path)
	}
	record := make([]string, len(ds.Columns))
	for _, r := range ds.Rows {
		for i, c := range ds.Columns {
			record[i] = formatValue(r[c])
		}
		if err := w.Write(record); err != nil {
			return domain.ErrPersistence(err, "write row to %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return domain.ErrPersistence(err, "flush %s", path)
	}
	if err := f.Close(); err != nil {
		return domain.ErrPersistence(err, "close %s", path)
	}

	s.logger.Info("csv file written", "path", path, "rows", ds.NumRows(), "columns", ds.NumColumns())
	return nil
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
