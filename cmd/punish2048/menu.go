package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/punish2048/internal/platform/tui"
	"github.com/vovakirdan/punish2048/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode, Tab for the
scoreboard. After a game you return to the menu.

Examples:
  punish2048 menu
  punish2048 menu --fps 30`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	rc := terminalConfig()
	for {
		result, err := tui.RunMenu(store, rc)
		if err != nil {
			return err
		}
		rc = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH)
			if sbErr != nil {
				logger.Error("scoreboard failed", "error", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}

		// Fresh seed per game unless pinned.
		if flagSeed == 0 {
			rc.Seed = time.Now().UnixNano()
		}

		opts := tui.Options{Input: cfg.Input, Logger: logger, InMenu: true}
		if err := tui.Run(game, store, rc, opts); err != nil {
			logger.Error("game failed", "game", result.GameID, "error", err)
		}
	}
}
