// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Defaults for the ingestion stage.
const (
	DefaultDatabase   = "insurance"
	DefaultCollection = "data"
	DefaultSplitRatio = 0.2

	defaultPipelineName = "mlingest"
	defaultArtifactDir  = "artifacts"
	defaultSchemaPath   = "config/schema.yaml"
	defaultRunDBPath    = "mlingest_runs.sqlite"
	defaultLogDir       = "logs"

	dataIngestionDir = "data_ingestion"
	featureStoreDir  = "feature_store"
	ingestedDir      = "ingested"
)

// Config holds the configuration for one pipeline process.
type Config struct {
	MongoURI   string // document store connection URI (required)
	Database   string // default database name
	Collection string // source collection

	PipelineName string // pipeline name, used in artifact layout
	ArtifactDir  string // root directory for artifacts
	SchemaPath   string // path to the schema descriptor YAML
	RunDBPath    string // path to the SQLite run-history file

	TrainTestSplitRatio float64 // test fraction, must be in (0,1)
	FileFormat          string  // artifact file format: "parquet" or "csv"

	LogLevel string // log level: debug, info, warn, error (default "info")
	LogDir   string // directory for per-run log files
}

// IngestionPaths are the derived output paths of the ingestion stage. They
// are a deterministic function of the artifact directory and file format.
type IngestionPaths struct {
	FeatureStorePath string
	TrainFilePath    string
	TestFilePath     string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IngestionPaths derives the three artifact file paths.
func (c *Config) IngestionPaths() IngestionPaths {
	ext := c.FileFormat
	return IngestionPaths{
		FeatureStorePath: filepath.Join(c.ArtifactDir, dataIngestionDir, featureStoreDir, "raw."+ext),
		TrainFilePath:    filepath.Join(c.ArtifactDir, dataIngestionDir, ingestedDir, "train."+ext),
		TestFilePath:     filepath.Join(c.ArtifactDir, dataIngestionDir, ingestedDir, "test."+ext),
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URL must be set")
	}
	if c.TrainTestSplitRatio <= 0 || c.TrainTestSplitRatio >= 1 {
		return fmt.Errorf("TRAIN_TEST_SPLIT_RATIO must be in (0,1), got %v", c.TrainTestSplitRatio)
	}
	if c.FileFormat != "parquet" && c.FileFormat != "csv" {
		return fmt.Errorf("INGEST_FILE_FORMAT must be \"parquet\" or \"csv\", got %q", c.FileFormat)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables and applies
// defaults. The returned config has been validated.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		MongoURI:     os.Getenv("MONGODB_URL"),
		Database:     os.Getenv("MONGO_DATABASE"),
		Collection:   os.Getenv("INGEST_COLLECTION"),
		PipelineName: os.Getenv("PIPELINE_NAME"),
		ArtifactDir:  os.Getenv("ARTIFACT_DIR"),
		SchemaPath:   os.Getenv("SCHEMA_FILE_PATH"),
		RunDBPath:    os.Getenv("RUN_DB_PATH"),
		FileFormat:   strings.ToLower(os.Getenv("INGEST_FILE_FORMAT")),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		LogDir:       os.Getenv("LOG_DIR"),
	}

	cfg.TrainTestSplitRatio = DefaultSplitRatio
	if v := os.Getenv("TRAIN_TEST_SPLIT_RATIO"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse TRAIN_TEST_SPLIT_RATIO %q: %w", v, err)
		}
		cfg.TrainTestSplitRatio = f
	}

	// Defaults
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.PipelineName == "" {
		cfg.PipelineName = defaultPipelineName
	}
	if cfg.ArtifactDir == "" {
		cfg.ArtifactDir = defaultArtifactDir
	}
	if cfg.SchemaPath == "" {
		cfg.SchemaPath = defaultSchemaPath
	}
	if cfg.RunDBPath == "" {
		cfg.RunDBPath = defaultRunDBPath
	}
	if cfg.FileFormat == "" {
		cfg.FileFormat = "parquet"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogDir == "" {
		cfg.LogDir = defaultLogDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. Lines must be in KEY=VALUE format. Comments (#) and blank
// lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
