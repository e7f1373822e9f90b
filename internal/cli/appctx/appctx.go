// Package appctx provides a shared bootstrap helper for CLI commands.
// It centralizes config loading, database opening, and store and
// logger construction to reduce boilerplate across commands.
package appctx

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/akarlsen/userfill/internal/config"
	"github.com/akarlsen/userfill/internal/db"
	"github.com/akarlsen/userfill/internal/store"
)

// App holds the shared application context for commands.
type App struct {
	// Config is the loaded configuration
	Config *config.Config

	// DB is the opened database connection (nil if NeedsDB is false)
	DB *db.DB

	// Store wraps DB (nil if NeedsDB is false)
	Store *store.Store

	// Logger writes structured diagnostics to stderr
	Logger *log.Logger
}

// Close releases resources held by the App.
// Safe to call multiple times.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
		a.DB = nil
	}
}

// Options configures the bootstrap behavior.
type Options struct {
	// NeedsDB indicates whether to open the database and require an
	// up-to-date schema.
	NeedsDB bool
}

// DefaultOptions returns default options (DB required).
func DefaultOptions() Options {
	return Options{NeedsDB: true}
}

// RunFunc is the signature for command run functions.
type RunFunc func(app *App, cmd *cobra.Command, args []string) error

// WithApp wraps a command's run function with shared bootstrap logic.
// The database is closed automatically when the wrapped function
// returns.
func WithApp(opts Options, fn RunFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := Bootstrap(cmd, opts)
		if err != nil {
			return err
		}
		defer app.Close()

		return fn(app, cmd, args)
	}
}

// Bootstrap initializes the App according to the given options.
// Callers are responsible for calling App.Close() when done.
func Bootstrap(cmd *cobra.Command, opts Options) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Override DB path from --db flag if provided
	if dbFlag := cmd.Flag("db"); dbFlag != nil {
		if dbPath := dbFlag.Value.String(); dbPath != "" {
			app.Config.DBPath = dbPath
		}
	}

	app.Logger = newLogger(cfg.LogLevel)

	if opts.NeedsDB {
		if app.Config.DBPath == "" {
			return nil, fmt.Errorf("database path not specified (use --db flag or set USERFILL_DB_PATH)")
		}

		database, err := db.Open(app.Config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}

		if err := database.RequiresMigrationError(); err != nil {
			database.Close()
			return nil, err
		}

		app.DB = database
		app.Store = store.New(database)
	}

	return app, nil
}

// newLogger builds the stderr diagnostics logger. Unknown levels fall
// back to info.
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger
}
