// flappy plays a Flappy Bird style game in the terminal.
//
// Usage:
//
//	flappy list                 - List available versions
//	flappy play <version>       - Play a version (flappy-v1, flappy-v2, flappy-v3)
//	flappy menu                 - Pick versions interactively
//	flappy scores [version]     - Show the run history of a version
//	flappy replay <file>        - Re-simulate a recorded session
//	flappy serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.flappy/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: warn)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - tap through the pipes in your terminal",
	Long: `Flappy is a terminal rendition of the one-button arcade game, in three
rule sets:

  flappy-v1  straight into play, tap anywhere to retry
  flappy-v2  main menu, tutorial and an animated scorecard
  flappy-v3  version 2 plus nose-down tilt, screen shake and flash

Available commands:
  list     - Show all versions
  play     - Play a version directly
  menu     - Interactive version picker
  scores   - View the run history
  replay   - Re-simulate a recorded session
  serve    - Start SSH server for remote play

Examples:
  flappy list
  flappy play flappy-v3
  flappy play flappy-v1 --record run.replay
  flappy replay run.replay
  flappy serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return setupLogger()
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
}
