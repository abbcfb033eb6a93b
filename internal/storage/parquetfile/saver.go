// Package parquetfile persists datasets as Parquet files.
package parquetfile

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"mlingest/internal/domain"
)

// Saver writes datasets to Parquet files. The file schema is inferred from
// the column values: every column is optional and typed as INT64, DOUBLE,
// BOOLEAN, or BYTE_ARRAY (string), in that order of preference.
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
	if ds.NumColumns() == 0 {
		return domain.ErrPersistence(fmt.Errorf("dataset has no columns"), "save parquet %s", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.ErrPersistence(err, "create directory for %s", path)
		}
	}

	schema, kinds := schemaFor(ds)

	f, err := os.Create(path)
	if err != nil {
		return domain.ErrPersistence(err, "create %s", path)
	}
	defer f.Close()

	w := parquet.NewGenericWriter[any](f, schema)

	rows := make([]parquet.Row, len(ds.Rows))
	fields := schema.Fields()
	for i, r := range ds.Rows {
		row := make(parquet.Row, len(fields))
		for ci, field := range fields {
			row[ci] = encodeValue(r[field.Name()], kinds[field.Name()], ci)
		}
		rows[i] = row
	}

	if len(rows) > 0 {
		if _, err := w.WriteRows(rows); err != nil {
			return domain.ErrPersistence(err, "write rows to %s", path)
		}
	}
	if err := w.Close(); err != nil {
		return domain.ErrPersistence(err, "finalize %s", path)
	}
	if err := f.Close(); err != nil {
		return domain.ErrPersistence(err, "close %s", path)
	}

	s.logger.Info("parquet file written", "path", path, "rows", ds.NumRows(), "columns", ds.NumColumns())
	return nil
}

// Load reads a Parquet file written by Save back into a dataset. Columns
// come back in the file's schema order.
func (s *Saver) Load(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.ErrPersistence(err, "open %s", path)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, domain.ErrPersistence(err, "stat %s", path)
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, domain.ErrPersistence(err, "read parquet %s", path)
	}

	fields := pf.Schema().Fields()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = field.Name()
	}
	ds := domain.NewDataset(columns)

	for _, rg := range pf.RowGroups() {
		if err := readRowGroup(ds, rg, columns); err != nil {
			return nil, domain.ErrPersistence(err, "read parquet %s", path)
		}
	}
	return ds, nil
}

func readRowGroup(ds *domain.Dataset, rg parquet.RowGroup, columns []string) error {
	rows := rg.Rows()
	defer rows.Close()

	buf := make([]parquet.Row, 64)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			r := make(domain.Row, len(columns))
			for _, v := range row {
				r[columns[v.Column()]] = decodeValue(v)
			}
			ds.Rows = append(ds.Rows, r)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// columnKind is the inferred physical type of a column.
type columnKind int

const (
	kindString columnKind = iota
	kindInt64
	kindDouble
	kindBool
)

// schemaFor builds the Parquet schema and records the kind chosen per column.
func schemaFor(ds *domain.Dataset) (*parquet.Schema, map[string]columnKind) {
	kinds := make(map[string]columnKind, len(ds.Columns))
	group := parquet.Group{}
	for _, c := range ds.Columns {
		k := inferKind(ds.Column(c))
		kinds[c] = k
		group[c] = parquet.Optional(nodeFor(k))
	}
	return parquet.NewSchema("dataset", group), kinds
}

// inferKind picks a column type from its values. Mixed int/float columns
// widen to double; any other mix falls back to string. All-null columns
// are typed as string.
func inferKind(values []interface{}) columnKind {
	var ints, doubles, bools, strs, nonNull int
	for _, v := range values {
		switch v.(type) {
		case nil:
		case int64:
			ints++
			nonNull++
		case float64:
			doubles++
			nonNull++
		case bool:
			bools++
			nonNull++
		default:
			strs++
			nonNull++
		}
	}
	switch {
	case nonNull == 0:
		return kindString
	case strs > 0:
		return kindString
	case bools == nonNull:
		return kindBool
	case ints == nonNull:
		return kindInt64
	case ints+doubles == nonNull:
		return kindDouble
	default:
		return kindString
	}
}

func nodeFor(k columnKind) parquet.Node {
	switch k {
	case kindInt64:
		return parquet.Int(64)
	case kindDouble:
		return parquet.Leaf(parquet.DoubleType)
	case kindBool:
		return parquet.Leaf(parquet.BooleanType)
	default:
		return parquet.String()
	}
}

// encodeValue converts v to a parquet.Value for the column's inferred kind,
// at column index ci. Nil values become nulls (definition level 0).
func encodeValue(v interface{}, k columnKind, ci int) parquet.Value {
	if v == nil {
		return parquet.ValueOf(nil).Level(0, 0, ci)
	}
	switch k {
	case kindInt64:
		return parquet.ValueOf(v.(int64)).Level(0, 1, ci)
	case kindDouble:
		if iv, ok := v.(int64); ok {
			return parquet.ValueOf(float64(iv)).Level(0, 1, ci)
		}
		return parquet.ValueOf(v.(float64)).Level(0, 1, ci)
	case kindBool:
		return parquet.ValueOf(v.(bool)).Level(0, 1, ci)
	default:
		if sv, ok := v.(string); ok {
			return parquet.ValueOf(sv).Level(0, 1, ci)
		}
		return parquet.ValueOf(fmt.Sprintf("%v", v)).Level(0, 1, ci)
	}
}

func decodeValue(v parquet.Value) interface{} {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	default:
		return string(v.ByteArray())
	}
}
