package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017")

	cfg, err := LoadFromEnv()

	require.NoError(t, err)
	assert.Equal(t, "insurance", cfg.Database)
	assert.Equal(t, "data", cfg.Collection)
	assert.Equal(t, "artifacts", cfg.ArtifactDir)
	assert.Equal(t, 0.2, cfg.TrainTestSplitRatio)
	assert.Equal(t, "parquet", cfg.FileFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnvRequiresMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URL", "")

	_, err := LoadFromEnv()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URL")
}

func TestLoadFromEnvRejectsBadRatio(t *testing.T) {
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017")
	for _, ratio := range []string{"0", "1", "1.5", "-0.1"} {
		t.Setenv("TRAIN_TEST_SPLIT_RATIO", ratio)
		_, err := LoadFromEnv()
		assert.Error(t, err, "ratio %s", ratio)
	}
}

func TestLoadFromEnvRejectsUnknownFormat(t *testing.T) {
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017")
	t.Setenv("INGEST_FILE_FORMAT", "xlsx")

	_, err := LoadFromEnv()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "INGEST_FILE_FORMAT")
}

func TestIngestionPaths(t *testing.T) {
	cfg := &Config{ArtifactDir: "artifacts", FileFormat: "parquet"}

	paths := cfg.IngestionPaths()

	assert.Equal(t, filepath.Join("artifacts", "data_ingestion", "feature_store", "raw.parquet"), paths.FeatureStorePath)
	assert.Equal(t, filepath.Join("artifacts", "data_ingestion", "ingested", "train.parquet"), paths.TrainFilePath)
	assert.Equal(t, filepath.Join("artifacts", "data_ingestion", "ingested", "test.parquet"), paths.TestFilePath)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"# comment\n\nDOTENV_TEST_A=hello\nDOTENV_TEST_B=\"quoted\"\nnot a pair\n"), 0o600))
	t.Setenv("DOTENV_TEST_A", "")
	t.Setenv("DOTENV_TEST_B", "")

	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, "hello", os.Getenv("DOTENV_TEST_A"))
	assert.Equal(t, "quoted", os.Getenv("DOTENV_TEST_B"))
}

func TestLoadDotEnvDoesNotOverrideEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DOTENV_TEST_C=file\n"), 0o600))
	t.Setenv("DOTENV_TEST_C", "env")

	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, "env", os.Getenv("DOTENV_TEST_C"))
}

func TestLoadDotEnvMissingFileIsNotAnError(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("drop_columns:\n  - id\n  - case_number\n"), 0o600))

	s, err := LoadSchema(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"id", "case_number"}, s.DropColumns)
}

func TestLoadSchemaEmptyDropList(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("drop_columns: []\n"), 0o600))

	s, err := LoadSchema(path)

	require.NoError(t, err)
	assert.Empty(t, s.DropColumns)
}

func TestLoadSchemaRejectsNonMappingRoot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- just\n- a\n- list\n"), 0o600))

	_, err := LoadSchema(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapping")
}

func TestLoadSchemaMissingFile(t *testing.T) {
	_, err := LoadSchema(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
