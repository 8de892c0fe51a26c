// polarity is a magnetic-pole puzzle game for the terminal.
//
// Usage:
//
//	polarity play [level]    - Pick a level from the menu, or jump to one
//	polarity levels          - List levels with your best results
//	polarity stats           - Show profile totals and achievements
//	polarity sim <level>     - Run a level headless with given poles
//	polarity serve           - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Tuning file (default: search ~/.polarity/configs, ./configs)
//	--db <path>         - SQLite database path (default: ~/.polarity/polarity.db)
//	--postgres <url>    - Use PostgreSQL instead of SQLite
//	--fps <rate>        - Tick requests per second (default: from config)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/polarity/internal/config"
	"github.com/vovakirdan/polarity/internal/registry"
	"github.com/vovakirdan/polarity/internal/storage"

	// Import worlds to register them
	_ "github.com/vovakirdan/polarity/internal/worlds/basics"
)

const storeTimeout = 10 * time.Second

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagPostgres string
	flagFPS      int
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "polarity",
	Short: "Polarity - guide a charged particle with magnetic poles",
	Long: `Polarity is a terminal puzzle game. Place positive and negative
magnetic poles on the board, then launch a charged particle and watch it
ride the field from start to goal.

Available commands:
  play     - Play in the terminal
  levels   - List levels and your best results
  stats    - Show profile totals and achievements
  sim      - Run a level headless with the given poles
  serve    - Start SSH server for remote play

Examples:
  polarity play
  polarity play 3
  polarity sim 1 --pole 8,4,+
  polarity serve --port 2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.polarity/polarity.db", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&flagPostgres, "postgres", os.Getenv("POLARITY_DATABASE_URL"), "PostgreSQL URL (overrides --db)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick requests per second (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger. The returned closer releases the
// log file, if one was opened.
func newLogger(prefix string, w io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	closer := func() {}
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// loadConfig reads the tuning file and applies --fps.
func loadConfig(logger *log.Logger) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	logger.Debug("config loaded", "tick_rate", cfg.TickRate, "timestep", cfg.Physics.Timestep)
	return cfg, nil
}

func loadCatalog() (*registry.Catalog, error) {
	cat, err := registry.Load()
	if err != nil {
		return nil, fmt.Errorf("loading levels: %w", err)
	}
	return cat, nil
}

// openStore opens PostgreSQL when a URL is configured, SQLite otherwise.
func openStore(ctx context.Context) (storage.StatsStore, error) {
	if flagPostgres != "" {
		ctx, cancel := context.WithTimeout(ctx, storeTimeout)
		defer cancel()
		pg, err := storage.NewPostgresStore(ctx, flagPostgres)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}

	st, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	return st, nil
}
