package domain

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Row is a single record: a mapping from column name to value.
// Values are one of nil, bool, int64, float64, string, or time.Time
// after extraction normalization.
type Row map[string]interface{}

// Dataset is an ordered, schemaless tabular record set. Columns lists the
// column names in first-seen order; Rows hold the values. A column absent
// from a row is treated as a missing value.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// NewDataset creates an empty dataset with the given column order.
func NewDataset(columns []string) *Dataset {
	return &Dataset{Columns: append([]string(nil), columns...)}
}

// NumRows returns the number of rows.
func (d *Dataset) NumRows() int { return len(d.Rows) }

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int { return len(d.Columns) }

// HasColumn reports whether the dataset contains the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns all values of the named column in row order. Missing
// values are returned as nil.
func (d *Dataset) Column(name string) []interface{} {
	out := make([]interface{}, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r[name]
	}
	return out
}

// DropColumns returns a new dataset without the named columns. Names that
// are absent from the dataset are ignored.
func (d *Dataset) DropColumns(names []string) *Dataset {
	if len(names) == 0 {
		return d.clone()
	}
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	kept := make([]string, 0, len(d.Columns))
	for _, c := range d.Columns {
		if !drop[c] {
			kept = append(kept, c)
		}
	}

	out := NewDataset(kept)
	out.Rows = make([]Row, len(d.Rows))
	for i, r := range d.Rows {
		nr := make(Row, len(kept))
		for _, c := range kept {
			if v, ok := r[c]; ok {
				nr[c] = v
			}
		}
		out.Rows[i] = nr
	}
	return out
}

// Split partitions the rows into train and test sets using a seeded shuffle.
// The train set receives floor(N*(1-testRatio)) rows; the test set receives
// the remainder. The same seed, ratio, and input always yield the same
// partition.
func (d *Dataset) Split(seed int64, testRatio float64) (train, test *Dataset) {
	n := len(d.Rows)
	trainN := int(math.Floor(float64(n) * (1 - testRatio)))

	perm := rand.New(rand.NewSource(seed)).Perm(n)

	train = NewDataset(d.Columns)
	test = NewDataset(d.Columns)
	train.Rows = make([]Row, 0, trainN)
	test.Rows = make([]Row, 0, n-trainN)
	for i, idx := range perm {
		if i < trainN {
			train.Rows = append(train.Rows, d.Rows[idx])
		} else {
			test.Rows = append(test.Rows, d.Rows[idx])
		}
	}
	return train, test
}

// RowKey returns a canonical string identity for a row over the dataset's
// columns, used for full-row equality comparisons.
func (d *Dataset) RowKey(r Row) string {
	var b strings.Builder
	for _, c := range d.Columns {
		v, ok := r[c]
		if !ok || v == nil {
			b.WriteString("\x00nil")
		} else {
			fmt.Fprintf(&b, "\x00%T:%v", v, v)
		}
	}
	return b.String()
}

func (d *Dataset) clone() *Dataset {
	out := NewDataset(d.Columns)
	out.Rows = make([]Row, len(d.Rows))
	for i, r := range d.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		out.Rows[i] = nr
	}
	return out
}
