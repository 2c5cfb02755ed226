package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/punish2048/internal/config"
	"github.com/vovakirdan/punish2048/internal/core"
	"github.com/vovakirdan/punish2048/internal/games/t2048"
)

var (
	flagAutoStrategy string
	flagAutoGames    int
	flagAutoMaxMoves int
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Play headless games with a heuristic",
	Long: `Play complete games without a terminal, every move chosen by the
idle heuristic. Useful to see how hard the punishment hits: the worst
strategy is what an idle player suffers, the best strategy is the greedy
helper used by assist mode.

Examples:
  punish2048 autoplay
  punish2048 autoplay --strategy best --games 50
  punish2048 autoplay --seed 42`,
	RunE: runAutoplay,
}

func init() {
	autoplayCmd.Flags().StringVar(&flagAutoStrategy, "strategy", config.StrategyWorst, "Heuristic: worst or best")
	autoplayCmd.Flags().IntVar(&flagAutoGames, "games", 10, "Number of games to play")
	autoplayCmd.Flags().IntVar(&flagAutoMaxMoves, "max-moves", 100000, "Stop a game after this many commits")
}

// autoplayResult summarizes one headless game.
type autoplayResult struct {
	Score   int
	MaxTile int
	Moves   int
	Status  t2048.Status
}

// playHeadless runs one game to completion with strategy, committing
// directly so no idle timers or animation lock are involved.
func playHeadless(cfg config.Config, strategy t2048.Strategy, seed int64, maxMoves int, logger *log.Logger) autoplayResult {
	cfg.Idle.Enabled = false
	g := t2048.NewWithConfig(cfg, t2048.ModePunish)
	g.SetLogger(logger)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: seed})

	for i := 0; i < maxMoves && !g.Status().Terminal(); i++ {
		g.Commit(strategy(g.Board()))
	}

	return autoplayResult{
		Score:   g.Score(),
		MaxTile: t2048.MaxTile(g.Board()),
		Moves:   g.Moves(),
		Status:  g.Status(),
	}
}

func runAutoplay(_ *cobra.Command, _ []string) error {
	strategy, err := t2048.ParseStrategy(flagAutoStrategy)
	if err != nil {
		return err
	}
	if flagAutoGames <= 0 {
		return fmt.Errorf("--games must be positive, got %d", flagAutoGames)
	}

	// Per-game logs only go to --log-file.
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	bold := color.New(color.Bold)
	won := color.New(color.FgGreen)
	lost := color.New(color.FgRed)

	bold.Printf("Autoplay: %d games, strategy %s, seed %d\n\n", flagAutoGames, flagAutoStrategy, seed)
	bold.Printf("  %-4s  %-8s  %-6s  %-6s  %s\n", "Game", "Score", "Tile", "Moves", "Result")

	var total, best, bestTile, wins int
	for i := range flagAutoGames {
		r := playHeadless(appConfig, strategy, seed+int64(i), flagAutoMaxMoves, logger)

		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  ", i+1, r.Score, r.MaxTile, r.Moves)
		switch r.Status {
		case t2048.StatusWon:
			won.Println(r.Status)
			wins++
		case t2048.StatusLost:
			lost.Println(r.Status)
		default:
			fmt.Println("move limit")
		}

		total += r.Score
		best = max(best, r.Score)
		bestTile = max(bestTile, r.MaxTile)
	}

	fmt.Println()
	fmt.Printf("Avg: %d  Best: %d  Best tile: %d  Wins: %d/%d\n",
		total/flagAutoGames, best, bestTile, wins, flagAutoGames)
	return nil
}
