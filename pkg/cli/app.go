package cli

import (
	"context"
	"database/sql"
	"io"
	"log/slog"

	"mlingest/internal/config"
	"mlingest/internal/dataset"
	"mlingest/internal/db"
	"mlingest/internal/db/mongodb"
	"mlingest/internal/db/repository"
	"mlingest/internal/domain"
	"mlingest/internal/logging"
	"mlingest/internal/pipeline"
	"mlingest/internal/service/access"
	"mlingest/internal/service/ingestion"
	"mlingest/internal/storage/csvfile"
	"mlingest/internal/storage/parquetfile"
)

// app wires the pipeline components for one process. All dependencies are
// constructed here and owned for the lifetime of the process — the document
// store connection included.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	stage  *pipeline.Stage
	runs   *repository.RunRepo

	mongo     *mongodb.Client
	runDB     *sql.DB
	logCloser io.Closer
}

// buildApp loads configuration and constructs the full dependency graph.
func buildApp(ctx context.Context, envFile string) (*app, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}

	logger, logCloser, err := logging.NewLogger(cfg.SlogLevel(), cfg.LogDir)
	if err != nil {
		return nil, err
	}

	schema, err := config.LoadSchema(cfg.SchemaPath)
	if err != nil {
		logCloser.Close()
		return nil, err
	}

	runDB, err := db.OpenSQLite(cfg.RunDBPath)
	if err != nil {
		logCloser.Close()
		return nil, err
	}
	if err := db.Migrate(ctx, runDB); err != nil {
		runDB.Close()
		logCloser.Close()
		return nil, err
	}
	runRepo := repository.NewRunRepo(runDB)

	mongoClient := mongodb.NewClient(mongodb.Config{
		URI:             cfg.MongoURI,
		DefaultDatabase: cfg.Database,
	}, logger)

	var saver domain.DataSaver
	switch cfg.FileFormat {
	case "csv":
		saver = csvfile.NewSaver(logger)
	default:
		saver = parquetfile.NewSaver(logger)
	}

	paths := cfg.IngestionPaths()
	accessSvc := access.NewService(
		mongodb.NewExtractor(mongoClient, logger),
		dataset.NewCleaner(logger),
		logger,
	)
	ingestSvc := ingestion.NewService(ingestion.Config{
		Collection:          cfg.Collection,
		FeatureStorePath:    paths.FeatureStorePath,
		TrainFilePath:       paths.TrainFilePath,
		TestFilePath:        paths.TestFilePath,
		TrainTestSplitRatio: cfg.TrainTestSplitRatio,
		DropColumns:         schema.DropColumns,
	}, accessSvc, saver, runRepo, logger)

	return &app{
		cfg:       cfg,
		logger:    logger,
		stage:     pipeline.NewStage(pipeline.StageName, ingestSvc, logger),
		runs:      runRepo,
		mongo:     mongoClient,
		runDB:     runDB,
		logCloser: logCloser,
	}, nil
}

// close releases the connections held by the app.
func (a *app) close(ctx context.Context) {
	if err := a.mongo.Close(ctx); err != nil {
		a.logger.Warn("close document store connection", "error", err)
	}
	if err := a.runDB.Close(); err != nil {
		a.logger.Warn("close run history store", "error", err)
	}
	_ = a.logCloser.Close()
}
