package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/replay"
)

var flagTrace bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded session",
	Long: `Play a recording made with 'flappy play --record' through the game
without a terminal UI and print how it went. The same seed and input give
the same runs, so the scores match the recorded session.

Pass the --config and --difficulty used while recording.

Examples:
  flappy replay run.replay
  flappy replay run.replay --trace
  flappy replay hard.replay --difficulty hard`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	addGameFlags(replayCmd)
	replayCmd.Flags().BoolVar(&flagTrace, "trace", false, "Print every phase change")
}

func runReplay(_ *cobra.Command, args []string) error {
	rec, err := replay.Load(args[0])
	if err != nil {
		return err
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	game, err := registry.Create(rec.Game)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	var observe replay.StepFunc
	if flagTrace {
		phase := ""
		observe = func(i int, _ registry.Game, res core.StepResult) {
			if res.State.Phase == phase {
				return
			}
			phase = res.State.Phase
			fmt.Printf("  %8.3fs  %-12s score %d\n", rec.Frames[i].At.Seconds(), phase, res.State.Score)
		}
	}

	result := replay.Run(game, rec, observe)

	fmt.Printf("%s  seed %d  %dx%d  %d frames  %.1fs\n",
		game.Title(), rec.Seed, rec.ScreenW, rec.ScreenH, result.Steps, rec.Duration().Seconds())
	for i, s := range result.Scores {
		fmt.Printf("  run %d: %d\n", i+1, s)
	}
	fmt.Printf("Final: %s, score %d, best %d\n", result.Final.Phase, result.Final.Score, result.Final.BestScore)
	return nil
}
