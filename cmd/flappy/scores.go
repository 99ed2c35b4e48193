package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/sim"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [version]",
	Short: "Show the run history of a version",
	Long: `Display the top scores and totals for the specified version.
Without a version the interactive scoreboard opens.

Examples:
  flappy scores
  flappy scores flappy-v2
  flappy scores v1 --limit 25`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
}

func runScores(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		cfg := runtimeConfig()
		_, err = tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	id, err := resolveGame(args[0])
	if err != nil {
		return err
	}
	game, err := registry.Create(id)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	scores, err := store.TopScores(id, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'flappy play %s' to set the first high score!\n", id)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(id)
	if err != nil {
		return err
	}
	// BestScore is one key shared by every version.
	best := storage.NewPrefs(store, logger).Integer(sim.BestScoreKey)

	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.1f  Best of all versions: %d\n",
		stats.GamesCount, stats.HighScore, stats.AvgScore, best)
	return nil
}
