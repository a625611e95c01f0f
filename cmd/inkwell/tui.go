package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	charmlog "github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/hoanghai1803/inkwell/internal/tui"
)

func runTUI(c *cli.Context) error {
	logFile, err := openLogFile()
	if err != nil {
		return cli.Exit(err.Error(), ExitGeneralError)
	}
	defer logFile.Close()

	// The terminal belongs to the UI, so logs go to the file.
	level := charmlog.InfoLevel
	if c.Bool("verbose") {
		level = charmlog.DebugLevel
	}
	slog.SetDefault(slog.New(charmlog.NewWithOptions(logFile, charmlog.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "inkwell",
	})))

	e, err := loadEnv(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}
	defer e.Close()

	model := tui.New(c.Context, e.svc, tui.Options{
		ShareBase:     e.cfg.Server.ShareBase(),
		ToastDuration: e.cfg.UI.ToastDuration(),
	})

	slog.Info("starting terminal reader", "api", e.cfg.API.BaseURL, "log", logFile.Name())
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(c.Context)).Run(); err != nil {
		return cli.Exit(fmt.Sprintf("terminal reader failed: %v", err), ExitGeneralError)
	}
	return nil
}

// openLogFile opens $XDG_CACHE_HOME/inkwell/tui.log for appending.
func openLogFile() (*os.File, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	dir = filepath.Join(dir, "inkwell")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}
