package parquetfile

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mlingest/internal/domain"
)

func testSaver() *Saver {
	return NewSaver(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ds := domain.NewDataset([]string{"name", "age", "score", "active", "note"})
	ds.Rows = []domain.Row{
		{"name": "alice", "age": int64(30), "score": 91.5, "active": true, "note": "x"},
		{"name": "bob", "age": int64(41), "score": 77.25, "active": false, "note": nil},
		{"name": "carol", "age": nil, "score": nil, "active": nil, "note": "y"},
	}

	path := filepath.Join(t.TempDir(), "out", "raw.parquet")
	require.NoError(t, testSaver().Save(ds, path))

	got, err := testSaver().Load(path)
	require.NoError(t, err)
	require.Equal(t, 3, got.NumRows())

	for _, col := range ds.Columns {
		assert.True(t, got.HasColumn(col), "column %s", col)
		assert.Equal(t, ds.Column(col), got.Column(col), "column %s", col)
	}
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	ds := domain.NewDataset([]string{"v"})
	ds.Rows = []domain.Row{{"v": int64(1)}}

	path := filepath.Join(t.TempDir(), "a", "b", "c", "data.parquet")
	require.NoError(t, testSaver().Save(ds, path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveOverwritesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.parquet")

	first := domain.NewDataset([]string{"v"})
	first.Rows = []domain.Row{{"v": int64(1)}, {"v": int64(2)}}
	require.NoError(t, testSaver().Save(first, path))

	second := domain.NewDataset([]string{"v"})
	second.Rows = []domain.Row{{"v": int64(3)}}
	require.NoError(t, testSaver().Save(second, path))

	got, err := testSaver().Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, got.NumRows())
	assert.Equal(t, int64(3), got.Rows[0]["v"])
}

func TestSaveMixedIntFloatColumnWidensToDouble(t *testing.T) {
	ds := domain.NewDataset([]string{"v"})
	ds.Rows = []domain.Row{{"v": int64(2)}, {"v": 2.5}}

	path := filepath.Join(t.TempDir(), "data.parquet")
	require.NoError(t, testSaver().Save(ds, path))

	got, err := testSaver().Load(path)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{2.0, 2.5}, got.Column("v"))
}

func TestSaveFailsOnColumnlessDataset(t *testing.T) {
	ds := domain.NewDataset(nil)

	err := testSaver().Save(ds, filepath.Join(t.TempDir(), "data.parquet"))

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
}

func TestSaveWrapsFilesystemErrors(t *testing.T) {
	ds := domain.NewDataset([]string{"v"})
	ds.Rows = []domain.Row{{"v": int64(1)}}

	// A directory path cannot be created as a file.
	err := testSaver().Save(ds, t.TempDir())

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
}

func TestInferKind(t *testing.T) {
	assert.Equal(t, kindInt64, inferKind([]interface{}{int64(1), nil, int64(2)}))
	assert.Equal(t, kindDouble, inferKind([]interface{}{1.5, nil}))
	assert.Equal(t, kindDouble, inferKind([]interface{}{int64(1), 1.5}))
	assert.Equal(t, kindBool, inferKind([]interface{}{true, false}))
	assert.Equal(t, kindString, inferKind([]interface{}{"x", int64(1)}))
	assert.Equal(t, kindString, inferKind([]interface{}{nil, nil}))
}
