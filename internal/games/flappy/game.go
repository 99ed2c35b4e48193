// Package flappy hosts the flappy simulation inside the arcade platform.
// It turns platform input into simulation events, runs the contact detector,
// executes the effects the simulation returns and draws the scene into a
// terminal screen buffer. One Game is registered per rule set version.
package flappy

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/physics"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

// Cosmetic effect lengths in seconds.
const (
	bobDuration   = 0.2
	shakeDuration = 0.3
	flashDuration = 0.12
	scoreBlink    = 0.15
)

// Package-level settings applied by the CLI before games are created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	sharedPrefs      sim.Prefs    = sim.NewMemoryPrefs()
	sharedAudio      audio.Player = audio.NopPlayer{}
	logger           *log.Logger  = log.Default()
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to
// the config default.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		logger.Warn("ignoring difficulty", "err", err)
	}
	difficultyPreset = p
}

// SetPrefs sets the best-score store shared by all sessions.
func SetPrefs(p sim.Prefs) {
	sharedPrefs = p
}

// SetAudio sets the sound output for games created afterwards.
func SetAudio(p audio.Player) {
	sharedAudio = p
}

// SetLogger sets the logger for games created afterwards.
func SetLogger(l *log.Logger) {
	logger = l
}

// Options overrides the package-level settings for one Game.
type Options struct {
	Config *config.FlappyConfig
	Prefs  sim.Prefs
	Audio  audio.Player
	Logger *log.Logger
}

// fxState is the presentation state driven by effects. Times are seconds on
// the game clock.
type fxState struct {
	bobUntil   float64
	shakeUntil float64
	flashUntil float64
	scoreUntil float64
	card       *sim.ScorecardEffect
	pops       int
}

// Game runs one version of the flappy simulation.
type Game struct {
	version sim.Version
	opts    Options

	cfg     config.FlappyConfig
	runtime core.RuntimeConfig
	rng     *rand.Rand
	sim     *sim.Simulation

	detector *physics.Detector
	hulls    hulls
	pending  []sim.Event // contacts found after the previous tick

	started  bool
	base     time.Duration // platform time at which the game clock reads 0
	pausedAt time.Duration
	paused   bool
	now      float64 // game clock of the last step, seconds
	best     int     // best score, read once per session

	fx fxState
}

// New creates a game of the given version using the package-level settings.
func New(version sim.Version) *Game {
	return NewWithOptions(version, Options{})
}

// NewWithOptions creates a game of the given version. Zero fields in opts
// fall back to the package-level settings.
func NewWithOptions(version sim.Version, opts Options) *Game {
	return &Game{version: version, opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy-" + g.version.String()
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	switch g.version {
	case sim.V1:
		return "Flappy (classic)"
	case sim.V2:
		return "Flappy (menus)"
	default:
		return "Flappy (full)"
	}
}

// Version returns the rule set this game runs.
func (g *Game) Version() sim.Version {
	return g.version
}

func (g *Game) prefs() sim.Prefs {
	if g.opts.Prefs != nil {
		return g.opts.Prefs
	}
	return sharedPrefs
}

func (g *Game) sounds() audio.Player {
	if g.opts.Audio != nil {
		return g.opts.Audio
	}
	return sharedAudio
}

func (g *Game) log() *log.Logger {
	if g.opts.Logger != nil {
		return g.opts.Logger
	}
	return logger
}

func (g *Game) loadConfig() config.FlappyConfig {
	if g.opts.Config != nil {
		return *g.opts.Config
	}
	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		g.log().Warn("using default config", "err", err)
		cfg = config.DefaultFlappyConfig()
	}
	if difficultyPreset != "" {
		config.ApplyFlappyPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// Reset starts a fresh session in the version's start state.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.hulls = newHulls(g.cfg)
	g.detector = physics.NewDetector()

	g.started = false
	g.paused = false
	g.now = 0
	g.newSession(g.version.StartState())
}

func (g *Game) newSession(start sim.GameState) {
	g.sim = sim.New(g.version, g.cfg,
		sim.WithRand(g.rng),
		sim.WithPrefs(g.prefs()),
		sim.WithStartState(start),
	)
	g.detector.Reset()
	g.pending = nil
	g.fx = fxState{}
	g.best = g.prefs().Integer(sim.BestScoreKey)
	g.log().Debug("new session", "game", g.ID(), "state", start)
}

// Step advances the game to now. Contacts found after the previous step are
// delivered before this step's input, so a contact is resolved one tick after
// the bodies met.
func (g *Game) Step(now time.Duration, in core.InputFrame) core.StepResult {
	if !g.started {
		g.started = true
		g.base = now
	}

	if in.Has(core.ActionPause) && !g.sim.State().Ended() {
		g.togglePause(now)
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.now = (now - g.base).Seconds()
	events := append(g.pending, g.taps(in)...)
	g.pending = nil

	effects := g.sim.Tick(g.now, events)
	runEnded, next := g.apply(effects)
	if next != nil {
		g.newSession(*next)
		return core.StepResult{State: g.State(), RunEnded: runEnded}
	}

	g.pending = g.detect()
	return core.StepResult{State: g.State(), RunEnded: runEnded}
}

// Resize follows a terminal resize. The scene stretches to fit, so the
// session keeps running.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
}

// togglePause freezes the game clock. On resume the time base moves forward
// by the paused interval so the simulation sees no gap.
func (g *Game) togglePause(now time.Duration) {
	if g.paused {
		g.base += now - g.pausedAt
		g.paused = false
		return
	}
	g.paused = true
	g.pausedAt = now
}

// taps converts platform input into tap events. A keyboard tap presses the
// primary button; clicks land where the pointer is.
func (g *Game) taps(in core.InputFrame) []sim.Event {
	var events []sim.Event
	if in.Has(core.ActionTap) {
		events = append(events, sim.TapEvent{At: g.sim.PrimaryButton().Center()})
	}
	if len(in.Clicks) > 0 {
		vp := newViewport(g.cfg, g.runtime.ScreenW, g.runtime.ScreenH)
		for _, c := range in.Clicks {
			events = append(events, sim.TapEvent{At: vp.world(c)})
		}
	}
	return events
}

// apply executes effects. It reports whether a run ended and which state a
// requested new session starts in.
func (g *Game) apply(effects []sim.Effect) (runEnded bool, next *sim.GameState) {
	for _, e := range effects {
		switch e := e.(type) {
		case sim.SoundEffect:
			g.sounds().Play(string(e.Sound))
		case sim.StateEffect:
			g.log().Debug("state", "game", g.ID(), "from", e.From, "to", e.To)
			if e.To == sim.ShowingScore {
				runEnded = true
			}
		case sim.ScoreEffect:
			g.fx.scoreUntil = g.now + scoreBlink
		case sim.BobEffect:
			g.fx.bobUntil = g.now + bobDuration
		case sim.ShakeEffect:
			g.fx.shakeUntil = g.now + shakeDuration
		case sim.FlashEffect:
			g.fx.flashUntil = g.now + flashDuration
		case sim.ScorecardEffect:
			card := e
			g.fx.card = &card
			g.best = e.Best
			g.fx.pops = 0
		case sim.PopEffect:
			g.fx.pops = e.Index
		case sim.NewSessionEffect:
			start := e.Start
			next = &start
		default:
			panic(fmt.Sprintf("flappy: unhandled effect %T", e))
		}
	}
	return runEnded, next
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	st := g.sim.State()
	return core.GameState{
		Score:     g.sim.Score(),
		BestScore: g.best,
		Phase:     st.String(),
		GameOver:  st.Ended(),
		Paused:    g.paused,
	}
}

// Simulation exposes the running session.
func (g *Game) Simulation() *sim.Simulation {
	return g.sim
}

// Register every version with the registry
func init() {
	for _, v := range []sim.Version{sim.V1, sim.V2, sim.V3} {
		version := v
		registry.Register("flappy-"+version.String(), func() registry.Game {
			return New(version)
		})
	}
}
