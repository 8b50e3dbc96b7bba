package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/tasknest/tasknest/internal/config"
	"github.com/tasknest/tasknest/internal/model"
	"github.com/tasknest/tasknest/internal/session"
	"github.com/tasknest/tasknest/internal/store"
	"github.com/tasknest/tasknest/internal/tasks"
	"github.com/tasknest/tasknest/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tasknest failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.EnsureDBDir(cfg); err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	sessions := session.NewManager(st, nil)
	if _, err := sessions.Resume(ctx); err != nil {
		return err
	}

	// A configured default theme applies only until the user picks one.
	if theme := model.Theme(cfg.Theme); theme.IsValid() {
		if _, err := st.Get(ctx, store.KeyTheme); errors.Is(err, store.ErrNotFound) {
			if err := st.SetTheme(ctx, theme); err != nil {
				return err
			}
		}
	}

	m := update.NewModel(update.Deps{
		Sessions: sessions,
		Tasks:    tasks.NewMutator(sessions, nil),
		Store:    st,
		Logger:   logger,
	})

	logger.Info("starting", "db", cfg.DBPath)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

func openLogger(cfg config.Config) (*log.Logger, func(), error) {
	if cfg.LogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true})
	return logger, func() { _ = f.Close() }, nil
}
