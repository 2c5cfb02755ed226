// punish2048 is a terminal 2048 that punishes hesitation: stall for three
// seconds and the game picks a move for you.
//
// Usage:
//
//	punish2048 play [mode]    - Play (2048 or 2048_assist)
//	punish2048 menu           - Pick a mode interactively
//	punish2048 list           - List available modes
//	punish2048 scores [mode]  - Show finished games and stats
//	punish2048 serve          - Start SSH server for remote play
//	punish2048 autoplay       - Play headless games with a heuristic
//
// Global flags:
//
//	--config <path>     - Config file (default: XDG config, then embedded)
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Log destination while the TUI owns the terminal
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/punish2048/internal/config"
	"github.com/vovakirdan/punish2048/internal/games/t2048"
	"github.com/vovakirdan/punish2048/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string

	// Loaded by the root command before any subcommand runs.
	appConfig config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "punish2048",
	Short: "2048 in your terminal, with an impatient opponent",
	Long: `punish2048 is a terminal 2048. Sit idle for three seconds and the
game forces a move on you, and it picks the worst one it can find.

Available commands:
  play      - Play a mode directly
  menu      - Interactive mode picker
  list      - Show all available modes
  scores    - View finished games and stats
  serve     - Start SSH server for remote play
  autoplay  - Let a heuristic play headless games

Examples:
  punish2048 play
  punish2048 play 2048_assist
  punish2048 serve --ssh :2222
  punish2048 autoplay --strategy best --games 20`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(autoplayCmd)
}

// loadConfig reads .env, then the YAML config with environment overrides.
func loadConfig(_ *cobra.Command, _ []string) error {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	appConfig = cfg
	return nil
}

// newLogger builds the command logger. Full-screen commands pass quiet so
// nothing reaches the terminal unless --log-file is set.
func newLogger(quiet bool) (*log.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closer := func() {}

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	case quiet:
		w = io.Discard
	}

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		closer()
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "punish2048",
		Level:           level,
	})
	return logger, closer, nil
}

// dbPath resolves the database location: flag, then config, then XDG.
func dbPath() string {
	switch {
	case flagDBPath != "":
		return flagDBPath
	case appConfig.Storage.DBPath != "":
		return appConfig.Storage.DBPath
	default:
		return config.DefaultDBPath()
	}
}

// openStore opens the scores database. Failure is logged and play goes on
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(dbPath())
	if err != nil {
		logger.Warn("could not open scores database", "path", dbPath(), "error", err)
		return nil
	}
	return store
}

// installGameDefaults makes registry-created games use the loaded config,
// the persistent best score and the command logger.
func installGameDefaults(cfg config.Config, store *storage.Store, logger *log.Logger) {
	var bests t2048.BestStore
	if store != nil {
		bests = storage.NewBestScore(store, cfg.Storage.BestKey)
	}
	t2048.SetDefaults(cfg, bests, logger)
}
