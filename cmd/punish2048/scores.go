package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/punish2048/internal/registry"
	"github.com/vovakirdan/punish2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show finished games for a mode",
	Long: `Display the best finished games and overall stats for a mode.

Examples:
  punish2048 scores
  punish2048 scores 2048_assist --limit 20
  punish2048 scores 2048 --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of games to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded games for the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "2048"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q (run 'punish2048 list' to see available modes)", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(dbPath())
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared games for %s.\n", game.Title())
		return nil
	}

	games, err := store.TopGames(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving games: %w", err)
	}

	bold := color.New(color.Bold)
	won := color.New(color.FgGreen)
	lost := color.New(color.FgRed)
	dim := color.New(color.Faint)

	bold.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'punish2048 play %s' to set the first high score!\n", gameID)
		return nil
	}

	bold.Printf("  %-4s  %-8s  %-6s  %-6s  %-6s  %s\n", "Rank", "Score", "Tile", "Forced", "Result", "Date")
	for i, g := range games {
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  ", i+1, g.Score, g.MaxTile, g.Forced)
		if g.Won {
			won.Printf("%-6s", "won")
		} else {
			lost.Printf("%-6s", "lost")
		}
		dim.Printf("  %s\n", g.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	fmt.Println()
	fmt.Printf("Games: %d  Best: %d  Avg: %.0f  Wins: %d  Best tile: %d  Forced moves: %d\n",
		stats.GamesCount, stats.HighScore, stats.AvgScore, stats.Wins, stats.BestTile, stats.ForcedMoves)
	return nil
}
