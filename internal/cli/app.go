package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tkoehler/timekeep/internal/config"
	"github.com/tkoehler/timekeep/internal/domain/tracker"
	"github.com/tkoehler/timekeep/internal/sqlite"
)

// App bundles everything a command needs: config, an open database and
// the tracker service wired over it.
type App struct {
	Config  config.Config
	DB      *sqlite.DB
	Tracker *tracker.Service
	Logger  *slog.Logger
	UserID  string
}

// openApp loads config, applies flag overrides, opens the database and
// wires the service. Callers must Close the returned app.
func openApp(cmd *cobra.Command) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DB.Path = v
	}
	if v, _ := cmd.Flags().GetString("user"); v != "" {
		cfg.User.ID = v
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	clients := sqlite.NewClientRepository(db)
	projects := sqlite.NewProjectRepository(db)
	tasks := sqlite.NewTaskRepository(db)
	times := sqlite.NewTimeEntryRepository(db)
	commits := sqlite.NewCommitRepository(db)

	return &App{
		Config:  cfg,
		DB:      db,
		Tracker: tracker.NewService(clients, projects, tasks, times, commits, logger),
		Logger:  logger,
		UserID:  cfg.User.ID,
	}, nil
}

// Close releases the app's database handle.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// withApp adapts a command handler that needs an App into a cobra RunE.
func withApp(run func(app *App, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return run(app, cmd, args)
	}
}

func ensureSchema(db *sqlite.DB) error {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'commits'`).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking schema: %w", err)
	}
	if count > 0 {
		return nil
	}
	return db.RunMigrations()
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
