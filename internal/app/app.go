// Package app wires configuration, storage and domain services into one
// graph shared by the server and terminal binaries.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/rpggio/chronos/internal/config"
	"github.com/rpggio/chronos/internal/domain/activity"
	"github.com/rpggio/chronos/internal/domain/category"
	"github.com/rpggio/chronos/internal/domain/entry"
	"github.com/rpggio/chronos/internal/domain/report"
	"github.com/rpggio/chronos/internal/domain/schedule"
	"github.com/rpggio/chronos/internal/domain/timelog"
	"github.com/rpggio/chronos/internal/domain/timer"
	"github.com/rpggio/chronos/internal/localstore"
	"github.com/rpggio/chronos/internal/mcp"
	"github.com/rpggio/chronos/internal/sqlite"
)

// App holds the opened database and every domain service.
type App struct {
	DB       *sqlite.DB
	Location *time.Location
	Catalog  category.Catalog

	Store      *timelog.Store
	Categories *category.Service
	Activity   *activity.Service
	Timer      *timer.Service
	Entries    *entry.Service
	Board      *schedule.Board
	Reports    *report.Service
	Keys       *sqlite.APIKeyRepository

	logger *slog.Logger
}

// Open opens the database, applies migrations, loads the time log snapshot
// and builds the services.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	if err := ensureDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	persister, err := newPersister(cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	categories := category.NewService(sqlite.NewCategoryRepository(db), logger)
	catalog, err := categories.List(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load categories: %w", err)
	}

	activitySvc := activity.NewService(sqlite.NewActivityRepository(db), logger)
	store := timelog.NewStore(persister, logger, timelog.WithObserver(activitySvc))
	store.Load(ctx)

	a := &App{
		DB:         db,
		Location:   loc,
		Catalog:    catalog,
		Store:      store,
		Categories: categories,
		Activity:   activitySvc,
		Timer:      timer.NewService(store, logger),
		Entries:    entry.NewService(store, loc, logger),
		Board:      schedule.NewBoard(store, catalog, loc, logger),
		Reports:    report.NewService(newModel(ctx, cfg, logger), loc, logger),
		Keys:       sqlite.NewAPIKeyRepository(db),
		logger:     logger,
	}
	logger.Info("chronos ready", "storage", cfg.Storage.Driver, "timezone", loc.String(), "categories", len(catalog))
	return a, nil
}

// Services returns the service set exposed as MCP tools.
func (a *App) Services() mcp.Services {
	return mcp.Services{
		Categories: a.Categories,
		Timer:      a.Timer,
		Logs:       a.Store,
		Entries:    a.Entries,
		Board:      a.Board,
		Reports:    a.Reports,
		Activity:   a.Activity,
	}
}

// Close closes the database.
func (a *App) Close() error {
	return a.DB.Close()
}

func newPersister(cfg config.Config, db *sqlite.DB) (timelog.Persister, error) {
	switch cfg.Storage.Driver {
	case config.DriverFile:
		if err := ensureDir(cfg.Storage.FilePath); err != nil {
			return nil, fmt.Errorf("prepare storage path: %w", err)
		}
		return localstore.New(cfg.Storage.FilePath), nil
	default:
		return sqlite.NewTimeLogRepository(db), nil
	}
}

// newModel returns the Gemini model, or nil when no key is configured. A nil
// model makes every report the apology text.
func newModel(ctx context.Context, cfg config.Config, logger *slog.Logger) report.Model {
	if cfg.Report.APIKey == "" {
		logger.Warn("no report API key configured; reports are disabled")
		return nil
	}
	gemini, err := report.NewGemini(ctx, cfg.Report.APIKey, cfg.Report.Model)
	if err != nil {
		logger.Error("failed to create report model", "error", err)
		return nil
	}
	return gemini
}

func ensureDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
