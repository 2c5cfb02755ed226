package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/punish2048/internal/config"
	"github.com/vovakirdan/punish2048/internal/core"
	"github.com/vovakirdan/punish2048/internal/platform/tui"
	"github.com/vovakirdan/punish2048/internal/registry"
)

var (
	flagStrategy string
	flagNoIdle   bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game",
	Long: `Start playing. The mode defaults to 2048 (punish).

Modes:
  2048         - Idle moves are chosen to hurt you
  2048_assist  - Idle moves are chosen to help you

Controls:
  Arrows/WASD/hjkl  - Slide tiles
  Mouse drag        - Swipe
  N                 - New game
  R                 - Restart (after game over)
  ?                 - Toggle help
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Examples:
  punish2048 play
  punish2048 play 2048_assist
  punish2048 play --strategy best
  punish2048 play --no-idle --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Idle move strategy for punish mode: worst or best")
	playCmd.Flags().BoolVar(&flagNoIdle, "no-idle", false, "Disable idle punishment")
}

// terminalConfig returns the runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// playConfig applies the play flags on top of the loaded config.
func playConfig() (config.Config, error) {
	cfg := appConfig
	if flagStrategy != "" {
		cfg.Idle.Strategy = flagStrategy
	}
	if flagNoIdle {
		cfg.Idle.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "2048"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'punish2048 list' to see available modes)", gameID)
	}

	cfg, err := playConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	installGameDefaults(cfg, store, logger)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if err := tui.Run(game, store, terminalConfig(), tui.Options{Input: cfg.Input, Logger: logger}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
