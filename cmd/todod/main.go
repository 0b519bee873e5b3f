package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todod/internal/config"
	"github.com/sandeepkv93/todod/internal/controller"
	"github.com/sandeepkv93/todod/internal/logging"
	"github.com/sandeepkv93/todod/internal/scheduler"
	"github.com/sandeepkv93/todod/internal/storage"
	"github.com/sandeepkv93/todod/internal/update"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "todod failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load(flag.CommandLine, args)
	if err != nil {
		return err
	}

	logOpts := logging.DefaultOptions()
	logOpts.Path = cfg.LogFile
	logOpts.Level = cfg.LogLevel
	logOpts.Format = cfg.LogFormat
	logger, logCloser, err := logging.Open(logOpts)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	store, storeCloser, err := openStore(cfg)
	if err != nil {
		logger.Error("open store failed", "store", cfg.Store, "err", err)
		return err
	}
	defer storeCloser.Close()
	logger.Info("todod starting", "store", cfg.Store, "config", cfg.ConfigPath)

	ctrl, err := controller.New(store, controller.WithLogger(logger))
	if err != nil {
		return err
	}
	initErr := ctrl.Initialize(ctx)

	opts := []update.Option{
		update.WithContext(ctx),
		update.WithLogger(logger),
		update.WithStartupError(initErr),
	}
	if cfg.DueWatcher {
		engine := scheduler.NewEngine(cfg.SchedulerBuffer)
		engine.Start()
		defer func() {
			engine.Stop()
			if dropped := engine.Dropped(); dropped > 0 {
				logger.Warn("due events dropped", "count", dropped)
			}
		}()
		opts = append(opts, update.WithScheduler(engine))
	}

	program := tea.NewProgram(update.NewModel(ctrl, opts...), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	logger.Info("todod stopped", "todos", ctrl.Len())
	return nil
}

func openStore(cfg config.RuntimeConfig) (storage.Store, io.Closer, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		s, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case config.StoreFile:
		s, err := storage.NewFileStore(cfg.StateFilePath)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil
	case config.StoreMemory:
		return storage.NewMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStore, cfg.Store)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
