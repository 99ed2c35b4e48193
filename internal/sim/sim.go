package sim

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Rand is the random source used for obstacle placement.
type Rand interface {
	Float64() float64
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithRand injects the random source. The default is a math/rand source
// seeded with 0.
func WithRand(r Rand) Option {
	return func(s *Simulation) {
		s.rng = r
	}
}

// WithPrefs injects the best-score store. The default is a fresh MemoryPrefs.
func WithPrefs(p Prefs) Option {
	return func(s *Simulation) {
		s.prefs = p
	}
}

// WithStartState overrides the version's start state. Hosts use it to honor
// NewSessionEffect.
func WithStartState(state GameState) Option {
	return func(s *Simulation) {
		s.start = &state
	}
}

// Simulation holds all state of one game session. A session is never reset in
// place: a new session is a new Simulation.
type Simulation struct {
	version Version
	cfg     config.FlappyConfig
	rng     Rand
	prefs   Prefs
	start   *GameState

	state     GameState
	player    PlayerBody
	obstacles []Obstacle
	tiles     [2]ForegroundTile
	score     int

	lastUpdateTime float64
	ticked         bool
	dt             float64
	elapsed        float64

	// Contact flags, set while ingesting events and consumed by the checks.
	hitGround   bool
	hitObstacle bool

	lastTouchTime float64
	lastTouchY    float64

	actions   []*action
	actionSeq int
	late      float64 // lateness of the running action
	effects   []Effect

	pairSeq     int
	obstacleSeq int

	playableStart  float64
	playableHeight float64
}

// New creates a session of the given version. Version 1 opens in Play with an
// immediate flap; later versions open in MainMenu.
func New(version Version, cfg config.FlappyConfig, opts ...Option) *Simulation {
	s := &Simulation{
		version:        version,
		cfg:            cfg,
		playableStart:  cfg.World.PlayableStart(),
		playableHeight: cfg.World.PlayableHeight(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(0))
	}
	if s.prefs == nil {
		s.prefs = NewMemoryPrefs()
	}

	s.player.Position = core.V(
		cfg.World.Width*cfg.Player.StartX,
		s.playableStart+s.playableHeight*cfg.Player.StartY,
	)
	for i := range s.tiles {
		s.tiles[i].X = float64(i) * cfg.Ground.TileWidth
	}

	start := version.StartState()
	if s.start != nil {
		start = *s.start
	}
	s.state = start
	switch start {
	case Play:
		s.StartSpawning()
		s.flapPlayer()
	case MainMenu, Tutorial:
	default:
		panic(fmt.Sprintf("sim: cannot start a session in %s", start))
	}
	return s
}

// Tick advances the session to now (seconds on a monotonic clock). Events are
// ingested first, then the simulation advances. The returned effects are
// everything produced since the previous Tick.
func (s *Simulation) Tick(now float64, events []Event) []Effect {
	if s.ticked {
		s.dt = now - s.lastUpdateTime
	} else {
		s.dt = 0
		s.ticked = true
	}
	s.lastUpdateTime = now
	s.elapsed += s.dt

	for _, ev := range events {
		s.ingest(ev)
	}

	switch s.state {
	case Play:
		s.UpdateForeground(s.dt)
		s.UpdatePlayer(s.dt)
		s.checkHitObstacle()
		s.checkHitGround()
		s.UpdateScore()
	case Falling:
		s.UpdatePlayer(s.dt)
		s.checkHitGround()
	case MainMenu, Tutorial, ShowingScore, Gameover:
	default:
		panic(fmt.Sprintf("sim: unknown state %d", int(s.state)))
	}

	s.moveObstacles(s.dt)
	s.runActions()

	out := s.effects
	s.effects = nil
	return out
}

func (s *Simulation) ingest(ev Event) {
	switch e := ev.(type) {
	case ContactEvent:
		switch e.other() {
		case CategoryGround:
			s.hitGround = true
		case CategoryObstacle:
			s.hitObstacle = true
		}
	case TapEvent:
		s.handleTap(e.At)
	default:
		panic(fmt.Sprintf("sim: unknown event %T", ev))
	}
}

// handleTap interprets a primary touch according to the current state.
func (s *Simulation) handleTap(at core.Vec2) {
	switch s.state {
	case MainMenu:
		if s.PrimaryButton().Contains(at) {
			s.switchToTutorial()
		}
	case Tutorial:
		s.switchToPlay()
	case Play:
		s.flapPlayer()
	case Falling:
	case ShowingScore:
		if s.version == V1 {
			s.switchToNewGame(Play)
		}
	case Gameover:
		if s.version == V1 {
			s.switchToNewGame(Play)
			return
		}
		if s.PrimaryButton().Contains(at) {
			s.switchToNewGame(MainMenu)
		}
	default:
		panic(fmt.Sprintf("sim: unknown state %d", int(s.state)))
	}
}

func (s *Simulation) checkHitObstacle() {
	if !s.hitObstacle {
		return
	}
	s.hitObstacle = false
	s.switchToFalling()
}

func (s *Simulation) checkHitGround() {
	if !s.hitGround {
		return
	}
	s.hitGround = false
	s.landPlayer()
	s.emit(SoundEffect{Sound: SoundHitGround})
	s.switchToShowScore()
}

func (s *Simulation) setState(to GameState) {
	from := s.state
	s.state = to
	s.emit(StateEffect{From: from, To: to})
}

func (s *Simulation) switchToTutorial() {
	s.setState(Tutorial)
}

func (s *Simulation) switchToPlay() {
	s.setState(Play)
	s.StartSpawning()
	s.flapPlayer()
}

func (s *Simulation) switchToFalling() {
	s.setState(Falling)
	s.StopSpawning()
	s.clearActions()

	s.emit(SoundEffect{Sound: SoundWhack})
	s.schedule("sound", s.cfg.Scorecard.FallingDelay, func() {
		s.emit(SoundEffect{Sound: SoundFalling})
	})

	if s.version.hasImpactFX() {
		s.emit(ShakeEffect{})
		s.emit(FlashEffect{})
	}
}

func (s *Simulation) switchToShowScore() {
	s.setState(ShowingScore)
	s.StopSpawning()

	best := s.prefs.Integer(BestScoreKey)
	newBest := s.score > best
	if newBest {
		best = s.score
		s.prefs.SetInteger(BestScoreKey, best)
		s.emit(SoundEffect{Sound: SoundDing})
	}
	s.emit(ScorecardEffect{Score: s.score, Best: best, NewBest: newBest})

	sc := s.cfg.Scorecard
	for i := 1; i <= sc.Pops; i++ {
		idx := i
		s.schedule("scorecard", float64(i)*sc.AnimDelay, func() {
			s.emit(PopEffect{Index: idx})
			s.emit(SoundEffect{Sound: SoundPop})
		})
	}
	s.schedule("scorecard", float64(sc.Pops)*sc.AnimDelay, func() {
		if s.state == ShowingScore {
			s.switchToGameOver()
		}
	})
}

func (s *Simulation) switchToGameOver() {
	s.setState(Gameover)
}

// switchToNewGame ends this session. The host builds the replacement.
func (s *Simulation) switchToNewGame(start GameState) {
	s.emit(SoundEffect{Sound: SoundPop})
	s.emit(NewSessionEffect{Start: start})
}

// clearActions cancels every pending action.
func (s *Simulation) clearActions() {
	for _, a := range s.actions {
		a.cancelled = true
	}
	s.actions = nil
}

func (s *Simulation) emit(e Effect) {
	s.effects = append(s.effects, e)
}

// PrimaryButton is the world-space area of the play/restart button.
func (s *Simulation) PrimaryButton() core.Box {
	l := s.cfg.Layout
	w, h := s.cfg.World.Width, s.cfg.World.Height
	return core.BoxAround(core.V(w*l.PrimaryX, h*l.ButtonY), w*l.ButtonWidth, h*l.ButtonHeight)
}

// State returns the active game state.
func (s *Simulation) State() GameState { return s.state }

// Version returns the rule set of this session.
func (s *Simulation) Version() Version { return s.version }

// Config returns the session configuration.
func (s *Simulation) Config() config.FlappyConfig { return s.cfg }

// Player returns the player body.
func (s *Simulation) Player() PlayerBody { return s.player }

// Obstacles returns a copy of the obstacles in the world.
func (s *Simulation) Obstacles() []Obstacle {
	return append([]Obstacle(nil), s.obstacles...)
}

// Tiles returns the two ground tiles.
func (s *Simulation) Tiles() [2]ForegroundTile { return s.tiles }

// Score returns the number of pairs passed this session.
func (s *Simulation) Score() int { return s.score }

// BestScore returns the persisted best score.
func (s *Simulation) BestScore() int { return s.prefs.Integer(BestScoreKey) }

// Elapsed returns the simulated seconds since the first tick.
func (s *Simulation) Elapsed() float64 { return s.elapsed }

// DT returns the frame delta of the last tick.
func (s *Simulation) DT() float64 { return s.dt }

// PlayableStart returns the world y of the ground line.
func (s *Simulation) PlayableStart() float64 { return s.playableStart }
