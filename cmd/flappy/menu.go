package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a version picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a version.
Leaving a game (Esc when paused or after a run) returns to the picker.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select version
  Tab          - Scoreboard
  Q            - Quit

Examples:
  flappy menu
  flappy menu --fps 30
  flappy menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	addGameFlags(menuCmd)
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	menuCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 to 1")
}

func runMenu(_ *cobra.Command, _ []string) error {
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

	if err := tui.RunSession(store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
