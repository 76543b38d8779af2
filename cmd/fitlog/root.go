// ABOUTME: Root Cobra command for the fitlog CLI.
// ABOUTME: Loads config, builds the logger, and opens storage via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/harperreed/fitlog/internal/config"
	"github.com/harperreed/fitlog/internal/logging"
	"github.com/harperreed/fitlog/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// skipStorage marks commands that run without opening a backend.
const skipStorage = "skip-storage"

var (
	cfg    *config.Config
	repo   storage.Repository
	logger *zap.Logger

	backendFlag string
)

var rootCmd = &cobra.Command{
	Use:   "fitlog",
	Short: "Daily exercise and sleep journal with health scoring",
	Long: `Fitlog is a CLI for logging one line per day of exercise and sleep and
turning the recent history into a health report.

WHAT IT TRACKS:

  Sport              what you did (leave empty or use "rest" for rest days)
  Exercise minutes   how long you trained
  Sleep hours        how long you slept
  Sleep quality      1 to 5, or 0 when unrated
  Notes              anything else worth remembering

QUICK START:

  $ fitlog add running 30 7.5 --quality 4    # Log today
  $ fitlog add rest 0 8 --date yesterday     # Log a rest day
  $ fitlog list                              # See what you logged
  $ fitlog analyze                           # Score the last 7 entries
  $ fitlog analyze --extended --mode composite

SERVERS:

  $ fitlog serve    # REST API on 127.0.0.1:5000
  $ fitlog mcp      # MCP server on stdio

STORAGE:

  Records live in SQLite at ~/.local/share/fitlog/fitlog.db by default.
  Switch backends with 'fitlog config set backend <sqlite|postgres|json|csv|charm>'
  and move existing data with 'fitlog migrate --to <backend>'.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnv(); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if backendFlag != "" {
			cfg.Backend = backendFlag
		}

		logger = logging.NewOrNop(cfg.LogLevel, cfg.LogFormat)

		if !needsStorage(cmd) {
			return nil
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		r, err := cfg.OpenStorage(logger)
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
		}
		repo = r
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logger != nil {
			_ = logger.Sync()
		}
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

// needsStorage reports whether cmd or any parent opts out of opening storage.
func needsStorage(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion":
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipStorage] == "true" {
			return false
		}
	}
	return true
}

// Execute runs the root command. Storage is closed even when a command fails,
// since cobra skips PersistentPostRunE on error.
func Execute() error {
	err := rootCmd.Execute()
	if repo != nil {
		_ = repo.Close()
		repo = nil
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "override the configured storage backend")
}
