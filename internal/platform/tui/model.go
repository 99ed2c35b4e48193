package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/replay"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// footerRows is the space under the game kept for the key help.
const footerRows = 1

// GameOption configures a GameModel.
type GameOption func(*GameModel)

// WithRecorder records every step into r. The recorder's runtime is set to
// the one the game is reset with.
func WithRecorder(r *replay.Recorder) GameOption {
	return func(m *GameModel) { m.recorder = r }
}

// WithLogger sets the logger for storage and screenshot failures.
func WithLogger(l *log.Logger) GameOption {
	return func(m *GameModel) { m.logger = l }
}

// WithQuitOnBack ends the program on Back instead of flagging a return to
// the menu.
func WithQuitOnBack() GameOption {
	return func(m *GameModel) { m.quitOnBack = true }
}

// GameModel is the Bubble Tea model that runs one game.
type GameModel struct {
	game     registry.Game
	screen   *core.Screen
	store    *storage.Store
	config   core.RuntimeConfig
	keys     GameKeyMap
	help     help.Model
	input    core.InputFrame
	state    core.GameState
	start    time.Time // wall time of the first tick
	loop     uint64
	recorder *replay.Recorder
	logger   *log.Logger

	quitOnBack bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. The game is reset in Init.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.ScreenH = max(cfg.ScreenH-footerRows, 1)

	m := GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:  store,
		config: cfg,
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		input:  core.NewInputFrame(),
		loop:   nextLoop(),
		logger: log.Default(),
	}
	m.help.Width = cfg.ScreenW
	for _, opt := range opts {
		opt(&m)
	}
	if m.recorder != nil {
		m.recorder.SetRuntime(cfg)
	}
	return m
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.input.Click(msg.X, msg.Y)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if !m.state.GameOver && !m.state.Paused {
			return m, nil
		}
		if m.quitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
	case core.ActionNone:
	default:
		m.input.Set(action)
	}
	return m, nil
}

// handleResize follows the terminal size. Games that cannot resize in place
// start over, unless their run is already over.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-footerRows, 1)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
		return m, nil
	}
	if !m.state.GameOver {
		m.game.Reset(m.config)
		m.start = time.Time{}
	}
	return m, nil
}

// handleTick steps the game to the time elapsed since its first tick.
func (m GameModel) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	if m.start.IsZero() {
		m.start = t
	}
	now := t.Sub(m.start)

	if m.recorder != nil {
		m.recorder.Record(now, m.input)
	}
	result := m.game.Step(now, m.input)
	m.state = result.State

	if result.RunEnded {
		m.saveScore(result.State.Score)
	}

	m.input = core.NewInputFrame()
	return m, tickCmd(m.config.TickRate, m.loop)
}

func (m GameModel) saveScore(score int) {
	if m.store == nil || score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), score); err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "score", score, "err", err)
	}
}

// saveScreenshot saves the current screen as text under ~/.flappy/screenshots.
func (m GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	dir := filepath.Join(home, ".flappy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return renderWithFooter(m.screen, m.help.View(m.keys))
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.state
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in its own Bubble Tea program until the user quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...GameOption) error {
	model := NewGameModel(game, store, cfg, append(opts, WithQuitOnBack())...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
