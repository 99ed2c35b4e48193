package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/replay"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagVolume     float64
	flagRecord     string
)

var playCmd = &cobra.Command{
	Use:   "play <version>",
	Short: "Play a version",
	Long: `Start playing the specified version.

Controls:
  Space/Up/W/Enter  - Flap (press the highlighted button in menus)
  Left click        - Tap where you click
  P                 - Pause
  Esc/B             - Leave (when paused or after a run)
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a text screenshot

Difficulty options change the gap and spawn interval for the whole session:
  easy   - wide gaps, slow spawns
  normal - the default tuning
  hard   - narrow gaps, fast spawns

Examples:
  flappy play flappy-v1
  flappy play v3 --difficulty hard
  flappy play v2 --config ./my-flappy.yaml
  flappy play v1 --seed 42 --record run.replay`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 to 1")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of the session to this file")
}

// addGameFlags registers the flags that change how games are built.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// applyGameFlags hands --config and --difficulty to the games.
func applyGameFlags() error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	flappy.SetConfigPath(flagConfig)
	flappy.SetDifficultyPreset(flagDifficulty)
	return nil
}

func runPlay(_ *cobra.Command, args []string) error {
	id, err := resolveGame(args[0])
	if err != nil {
		return err
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	sounds := audio.Open(flagMute, flagVolume, logger)
	if c, ok := sounds.(interface{ Close() }); ok {
		defer c.Close()
	}
	flappy.SetAudio(sounds)

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	game, err := registry.Create(id)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	cfg := runtimeConfig()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	opts := []tui.GameOption{tui.WithLogger(logger)}
	var rec *replay.Recorder
	if flagRecord != "" {
		rec = replay.NewRecorder(id, cfg)
		opts = append(opts, tui.WithRecorder(rec))
	}

	if err := tui.Run(game, store, cfg, opts...); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if rec != nil {
		if err := rec.Save(flagRecord); err != nil {
			return err
		}
		fmt.Printf("Recorded %d frames (seed %d) to %s\n", rec.Len(), cfg.Seed, flagRecord)
	}
	return nil
}
