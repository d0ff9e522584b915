package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lode/internal/games/lode"
	"github.com/vovakirdan/tui-lode/internal/registry"
	"github.com/vovakirdan/tui-lode/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the best runs of a game mode (default: lode).
A run's score is the number of levels it completed.

Examples:
  lode scores
  lode scores lode_practice --limit 20
  lode scores --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded score of the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := lode.GameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'lode list' to see the modes", gameID)
	}

	store, err := storage.Open(flagDB)
	if err != nil {
		return fmt.Errorf("cannot open database: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	if flagScoresClear {
		if err := store.ClearScores(ctx, gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores of %s.\n", gameID)
		return nil
	}

	scores, err := store.TopScores(ctx, gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", gameID)
	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'lode play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-6s  %s\n", "Rank", "Player", "Levels", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %s\n", "----", "------", "------", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-16s  %-6d  %s\n", i+1, e.Player, e.Score, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(ctx, gameID); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.1f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
	return nil
}
