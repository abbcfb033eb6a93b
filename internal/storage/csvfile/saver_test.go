package csvfile

import (
	"encoding/csv"
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

func TestSaveWritesHeaderAndRows(t *testing.T) {
	ds := domain.NewDataset([]string{"name", "age", "active"})
	ds.Rows = []domain.Row{
		{"name": "alice", "age": int64(30), "active": true},
		{"name": "bob", "age": nil, "active": false},
	}

	path := filepath.Join(t.TempDir(), "nested", "data.csv")
	require.NoError(t, testSaver().Save(ds, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"name", "age", "active"}, records[0])
	assert.Equal(t, []string{"alice", "30", "true"}, records[1])
	assert.Equal(t, []string{"bob", "", "false"}, records[2])
}

func TestSaveWrapsFilesystemErrors(t *testing.T) {
	ds := domain.NewDataset([]string{"v"})

	err := testSaver().Save(ds, t.TempDir())

	var perr *domain.PersistenceError
	require.ErrorAs(t, err, &perr)
}
