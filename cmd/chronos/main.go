package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpggio/chronos/internal/app"
	"github.com/rpggio/chronos/internal/config"
	"github.com/rpggio/chronos/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// The terminal owns stdout; logs only go to CHRONOS_LOG_PATH.
	logger, logCloser, err := app.NewLogger(cfg.Log.Level, cfg.Log.Path, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	model := tui.NewModel(ctx, tui.Services{
		Timer:   a.Timer,
		Logs:    a.Store,
		Board:   a.Board,
		Reports: a.Reports,
	}, a.Catalog, a.Location)
	if err := tui.Run(ctx, model); err != nil {
		logger.Error("terminal client error", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
