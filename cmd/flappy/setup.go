package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var logger = log.Default()

func setupLogger() error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
		Level:           level,
	})
	log.SetDefault(logger)
	flappy.SetLogger(logger)
	return nil
}

// openStore opens the scores database and makes it the best-score store of
// every game. Games still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	flappy.SetPrefs(storage.NewPrefs(store, logger))
	return store
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// resolveGame accepts "flappy-v2", "v2" or "2".
func resolveGame(arg string) (string, error) {
	id := arg
	switch {
	case strings.HasPrefix(arg, "flappy-"):
	case strings.HasPrefix(arg, "v"):
		id = "flappy-" + arg
	default:
		id = "flappy-v" + arg
	}
	if !registry.Exists(id) {
		return "", fmt.Errorf("unknown version %q, run 'flappy list' to see available versions", arg)
	}
	return id, nil
}
