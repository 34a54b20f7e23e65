package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/mind-engage/thesisgrade/internal/config"
	"github.com/mind-engage/thesisgrade/internal/db"
	"github.com/mind-engage/thesisgrade/internal/evallog"
	"github.com/mind-engage/thesisgrade/internal/grading"
	"github.com/mind-engage/thesisgrade/internal/intake"
	"github.com/mind-engage/thesisgrade/internal/logging"
	"github.com/mind-engage/thesisgrade/internal/report"
	"github.com/mind-engage/thesisgrade/internal/roster"
	"github.com/mind-engage/thesisgrade/internal/storage"
)

// app holds the wired services shared by every subcommand.
type app struct {
	cfg    config.Config
	log    *slog.Logger
	dbh    *sql.DB
	engine *grading.Engine
	store  evallog.Store
	roster roster.Store
	blobs  storage.BlobStore
	intake *intake.Service
	report *report.Service
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return cfg, err
	}
	if dbDriver != "" {
		cfg.DBDriver = dbDriver
	}
	if dbDSN != "" {
		cfg.DBDSN = dbDSN
	}
	if weightsPath != "" {
		w, err := config.LoadWeights(weightsPath)
		if err != nil {
			return cfg, err
		}
		cfg.WeightsFile, cfg.Weights = weightsPath, w
	}
	return cfg, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.LogLevel, nil)

	engine, err := grading.NewEngine(grading.WithWeights(cfg.Weights))
	if err != nil {
		return nil, fmt.Errorf("weights: %w", err)
	}

	octx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	driver := db.Normalize(cfg.DBDriver)
	dbh, err := db.Open(octx, driver, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	blobs, err := storage.NewFSStore(cfg.BlobBasePath)
	if err != nil {
		_ = dbh.Close()
		return nil, fmt.Errorf("blob store: %w", err)
	}

	store := evallog.NewSQLStore(dbh)
	a := &app{
		cfg:    cfg,
		log:    logger,
		dbh:    dbh,
		engine: engine,
		store:  store,
		roster: roster.NewSQLStore(dbh),
		blobs:  blobs,
		intake: intake.NewService(store, intake.WithLogger(logger)),
		report: report.NewService(store, engine, logger),
	}
	logger.Debug("app ready", "db", driver, "weights_sum", engine.Weights().Sum())
	return a, nil
}

func (a *app) Close() error { return a.dbh.Close() }
