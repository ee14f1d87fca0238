package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"

	"github.com/nottarun7/queuectl"
	"github.com/nottarun7/queuectl/config"
	"github.com/nottarun7/queuectl/store"
)

const defaultConfigPath = "queuectl.json"
const defaultPidFilePath = "workers.pid"

// app bundles the wired-up collaborators shared by every subcommand.
type app struct {
	cfg     *config.Config
	db      *bun.DB
	store   *store.Store
	workers *store.WorkerRegistry
	queue   *queuectl.Queue
	log     *slog.Logger
}

func newApp() (*app, error) {
	cfg, err := config.Load(defaultConfigPath)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if cfg.LogLevel() == "DEBUG" {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	sqlDB, err := sql.Open("sqlite", "file:"+cfg.DbPath()+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	db := bun.NewDB(sqlDB, sqlitedialect.New())

	if err := store.InitDB(context.Background(), db); err != nil {
		return nil, err
	}

	st := store.NewStore(db)
	wr := store.NewWorkerRegistry(db)
	backoff := queuectl.BackoffConfig{
		Base:            cfg.BackoffBase(),
		MaxDelaySeconds: uint64(cfg.BackoffMaxDelay().Seconds()),
		MaxRetries:      cfg.MaxRetries(),
	}
	queue := queuectl.NewQueue(st, wr, backoff)

	return &app{
		cfg:     cfg,
		db:      db,
		store:   st,
		workers: wr,
		queue:   queue,
		log:     log,
	}, nil
}
