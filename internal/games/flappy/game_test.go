package flappy

import (
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

var testRuntime = core.RuntimeConfig{
	ScreenW:  80,
	ScreenH:  24,
	TickRate: 60,
	Seed:     12345,
}

type testGame struct {
	*Game
	sounds *audio.Recorder
	prefs  *sim.MemoryPrefs
	frame  int
}

func newTestGame(t *testing.T, v sim.Version) *testGame {
	t.Helper()
	cfg := config.DefaultFlappyConfig()
	tg := &testGame{sounds: &audio.Recorder{}, prefs: sim.NewMemoryPrefs()}
	tg.Game = NewWithOptions(v, Options{
		Config: &cfg,
		Prefs:  tg.prefs,
		Audio:  tg.sounds,
		Logger: log.New(io.Discard),
	})
	tg.Reset(testRuntime)
	return tg
}

// step advances one 60 Hz frame.
func (tg *testGame) step(in core.InputFrame) core.StepResult {
	now := time.Duration(tg.frame) * time.Second / 60
	tg.frame++
	return tg.Step(now, in)
}

func (tg *testGame) idle(frames int) (ended bool) {
	for range frames {
		if tg.step(core.NewInputFrame()).RunEnded {
			ended = true
		}
	}
	return ended
}

func action(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func TestGameDeterminism(t *testing.T) {
	run := func() *testGame {
		tg := newTestGame(t, sim.V1)
		for i := range 400 {
			in := core.NewInputFrame()
			if i%20 == 0 {
				in.Set(core.ActionTap)
			}
			tg.step(in)
		}
		return tg
	}

	g1, g2 := run(), run()
	s1, s2 := g1.Simulation(), g2.Simulation()

	if s1.Score() != s2.Score() {
		t.Errorf("scores differ: %d vs %d", s1.Score(), s2.Score())
	}
	if s1.Player() != s2.Player() {
		t.Errorf("players differ: %+v vs %+v", s1.Player(), s2.Player())
	}
	if !slices.Equal(s1.Obstacles(), s2.Obstacles()) {
		t.Errorf("obstacles differ: %v vs %v", s1.Obstacles(), s2.Obstacles())
	}
	if !slices.Equal(g1.sounds.Played(), g2.sounds.Played()) {
		t.Error("sound sequences differ")
	}

	scr1 := core.NewScreen(80, 24)
	scr2 := core.NewScreen(80, 24)
	g1.Render(scr1)
	g2.Render(scr2)
	if scr1.String() != scr2.String() {
		t.Error("rendered frames differ")
	}
}

func TestGameReset(t *testing.T) {
	tg := newTestGame(t, sim.V1)
	start := tg.Simulation().Player().Position

	tg.idle(50)
	if tg.Simulation().Player().Position == start {
		t.Fatal("player did not move")
	}

	tg.Reset(testRuntime)
	tg.frame = 0
	s := tg.Simulation()
	if s.Player().Position != start {
		t.Errorf("position after reset = %v, want %v", s.Player().Position, start)
	}
	if s.State() != sim.Play {
		t.Errorf("state after reset = %s, want Play", s.State())
	}
	if s.Score() != 0 || len(s.Obstacles()) != 0 {
		t.Errorf("reset left score %d and %d obstacles", s.Score(), len(s.Obstacles()))
	}
}

func TestGameStartStates(t *testing.T) {
	tests := []struct {
		version sim.Version
		want    sim.GameState
		id      string
	}{
		{sim.V1, sim.Play, "flappy-v1"},
		{sim.V2, sim.MainMenu, "flappy-v2"},
		{sim.V3, sim.MainMenu, "flappy-v3"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			tg := newTestGame(t, tt.version)
			if tg.ID() != tt.id {
				t.Errorf("ID() = %q, want %q", tg.ID(), tt.id)
			}
			if got := tg.Simulation().State(); got != tt.want {
				t.Errorf("start state = %s, want %s", got, tt.want)
			}
			if st := tg.State(); st.Phase != tt.want.String() || st.GameOver {
				t.Errorf("State() = %+v", st)
			}
		})
	}
}

func TestKeyboardTapWalksMenus(t *testing.T) {
	tg := newTestGame(t, sim.V2)

	tg.step(action(core.ActionTap))
	if got := tg.Simulation().State(); got != sim.Tutorial {
		t.Fatalf("after first tap state = %s, want Tutorial", got)
	}

	tg.step(action(core.ActionTap))
	if got := tg.Simulation().State(); got != sim.Play {
		t.Fatalf("after second tap state = %s, want Play", got)
	}
	if !slices.Contains(tg.sounds.Played(), string(sim.SoundFlapping)) {
		t.Errorf("starting play did not flap: %v", tg.sounds.Played())
	}
}

func TestClicksMapToWorld(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		want sim.GameState
	}{
		{"inside button", 20, 17, sim.Tutorial},
		{"above button", 20, 2, sim.MainMenu},
		{"right of button", 70, 17, sim.MainMenu},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := newTestGame(t, sim.V2)
			in := core.NewInputFrame()
			in.Click(tt.x, tt.y)
			tg.step(in)
			if got := tg.Simulation().State(); got != tt.want {
				t.Errorf("state = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGroundContactEndsRun(t *testing.T) {
	tg := newTestGame(t, sim.V1)

	ended := false
	for range 600 {
		if tg.step(core.NewInputFrame()).RunEnded {
			ended = true
			break
		}
	}
	if !ended {
		t.Fatalf("run never ended, state %s", tg.Simulation().State())
	}
	if got := tg.Simulation().State(); got != sim.ShowingScore {
		t.Fatalf("state = %s, want ShowingScore", got)
	}

	played := tg.sounds.Played()
	if !slices.Contains(played, string(sim.SoundHitGround)) {
		t.Errorf("no ground hit sound in %v", played)
	}
	if slices.Contains(played, string(sim.SoundWhack)) {
		t.Errorf("ground landing played the obstacle sound: %v", played)
	}

	// Three pops at 0.3s, then Gameover.
	tg.idle(60)
	if got := tg.Simulation().State(); got != sim.Gameover {
		t.Errorf("state after scorecard = %s, want Gameover", got)
	}
	if !tg.State().GameOver {
		t.Error("State().GameOver = false after the scorecard")
	}
}

func TestGameoverTapStartsNewSession(t *testing.T) {
	tests := []struct {
		version sim.Version
		want    sim.GameState
	}{
		{sim.V1, sim.Play},
		{sim.V2, sim.MainMenu},
		{sim.V3, sim.MainMenu},
	}

	for _, tt := range tests {
		t.Run(tt.version.String(), func(t *testing.T) {
			tg := newTestGame(t, tt.version)
			if tt.version != sim.V1 {
				tg.step(action(core.ActionTap))
				tg.step(action(core.ActionTap))
			}
			tg.idle(300)
			if got := tg.Simulation().State(); got != sim.Gameover {
				t.Fatalf("state = %s, want Gameover", got)
			}

			old := tg.Simulation()
			tg.step(action(core.ActionTap))
			if tg.Simulation() == old {
				t.Fatal("tap did not replace the session")
			}
			if got := tg.Simulation().State(); got != tt.want {
				t.Errorf("new session state = %s, want %s", got, tt.want)
			}
			if tg.Simulation().Score() != 0 {
				t.Errorf("new session score = %d", tg.Simulation().Score())
			}
		})
	}
}

// countingPrefs counts reads of the wrapped prefs.
type countingPrefs struct {
	sim.Prefs
	reads int
}

func (p *countingPrefs) Integer(key string) int {
	p.reads++
	return p.Prefs.Integer(key)
}

func TestBestScoreReadOncePerSession(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	prefs := &countingPrefs{Prefs: sim.NewMemoryPrefs()}
	g := NewWithOptions(sim.V2, Options{
		Config: &cfg,
		Prefs:  prefs,
		Audio:  audio.NopPlayer{},
		Logger: log.New(io.Discard),
	})
	g.Reset(testRuntime)
	tg := &testGame{Game: g}

	tg.step(action(core.ActionTap))
	tg.step(action(core.ActionTap))
	tg.idle(300)
	if !tg.State().GameOver {
		t.Fatalf("run did not end, phase %s", tg.State().Phase)
	}
	// One read when the session started, one when the scorecard checked it.
	if prefs.reads > 2 {
		t.Errorf("best score read %d times over %d frames", prefs.reads, tg.frame)
	}

	tg.apply([]sim.Effect{sim.ScorecardEffect{Score: 5, Best: 5, NewBest: true}})
	if got := tg.State().BestScore; got != 5 {
		t.Errorf("BestScore after a new best = %d, want 5", got)
	}
}

func TestBestScoreFromPrefs(t *testing.T) {
	tg := newTestGame(t, sim.V1)
	tg.prefs.SetInteger(sim.BestScoreKey, 7)
	tg.Reset(testRuntime)

	if got := tg.State().BestScore; got != 7 {
		t.Errorf("BestScore = %d, want 7", got)
	}
	tg.idle(300)
	if got := tg.prefs.Integer(sim.BestScoreKey); got != 7 {
		t.Errorf("a zero run overwrote the best score: %d", got)
	}
	if slices.Contains(tg.sounds.Played(), string(sim.SoundDing)) {
		t.Error("ding played without a new best")
	}
}

func TestPauseFreezesClock(t *testing.T) {
	tg := newTestGame(t, sim.V1)
	tg.idle(10)

	tg.step(action(core.ActionPause))
	if !tg.State().Paused {
		t.Fatal("game did not pause")
	}
	frozen := tg.Simulation().Player()
	elapsed := tg.Simulation().Elapsed()

	tg.idle(100)
	if tg.Simulation().Player() != frozen {
		t.Error("player moved while paused")
	}

	scr := core.NewScreen(80, 24)
	tg.Render(scr)
	if !strings.Contains(scr.String(), "PAUSED") {
		t.Error("paused frame has no PAUSED message")
	}

	tg.step(action(core.ActionPause))
	if tg.State().Paused {
		t.Fatal("game did not resume")
	}
	if dt := tg.Simulation().DT(); dt > 1.5/60 {
		t.Errorf("resume dt = %v, want one frame", dt)
	}
	if got := tg.Simulation().Elapsed() - elapsed; got > 1.5/60 {
		t.Errorf("clock advanced %v across the pause", got)
	}
}

func TestPauseIgnoredAfterRun(t *testing.T) {
	tg := newTestGame(t, sim.V1)
	tg.idle(400)
	if !tg.Simulation().State().Ended() {
		t.Fatalf("state = %s, want an ended state", tg.Simulation().State())
	}

	tg.step(action(core.ActionPause))
	if tg.State().Paused {
		t.Error("pause toggled after the run ended")
	}
}

func TestRenderMenu(t *testing.T) {
	tg := newTestGame(t, sim.V2)
	scr := core.NewScreen(80, 24)
	tg.Render(scr)

	out := scr.String()
	for _, want := range []string{"F L A P P Y", "PLAY"} {
		if !strings.Contains(out, want) {
			t.Errorf("menu frame missing %q", want)
		}
	}
	if !strings.ContainsRune(out, GroundLightChar) {
		t.Error("menu frame has no ground")
	}
}

func TestRenderScorecard(t *testing.T) {
	tg := newTestGame(t, sim.V1)
	tg.idle(400)

	scr := core.NewScreen(80, 24)
	tg.Render(scr)
	out := scr.String()
	for _, want := range []string{"GAME OVER", "Score", "Best", "tap to play again"} {
		if !strings.Contains(out, want) {
			t.Errorf("scorecard frame missing %q", want)
		}
	}
}

func TestRenderObstacles(t *testing.T) {
	tg := newTestGame(t, sim.V1)
	// The first pair spawns at 1.75s, before the player reaches the ground.
	tg.idle(150)
	if len(tg.Simulation().Obstacles()) == 0 {
		t.Fatal("no obstacles spawned")
	}

	scr := core.NewScreen(80, 24)
	tg.Render(scr)
	if !strings.ContainsRune(scr.String(), ObstacleChar) {
		t.Error("obstacles not drawn")
	}
}

func TestNoseGlyph(t *testing.T) {
	tests := []struct {
		deg  float64
		want rune
	}{
		{25, '▲'},
		{0, '▶'},
		{-30, '◢'},
		{-90, '▼'},
	}
	for _, tt := range tests {
		if got := noseGlyph(core.Radians(tt.deg)); got != tt.want {
			t.Errorf("noseGlyph(%v°) = %q, want %q", tt.deg, got, tt.want)
		}
	}
}

func TestRegistry(t *testing.T) {
	for _, id := range []string{"flappy-v1", "flappy-v2", "flappy-v3"} {
		if !registry.Exists(id) {
			t.Errorf("%s not registered", id)
			continue
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}
}

func TestResizeKeepsSession(t *testing.T) {
	tg := newTestGame(t, sim.V2)
	var _ registry.Resizer = tg.Game

	session := tg.Simulation()
	tg.Resize(160, 48)
	if tg.Simulation() != session {
		t.Fatal("Resize() replaced the session")
	}

	// (40, 35) is the old (20, 17) cell on the doubled screen.
	in := core.NewInputFrame()
	in.Click(40, 35)
	tg.step(in)
	if got := tg.Simulation().State(); got != sim.Tutorial {
		t.Errorf("state = %s, want Tutorial", got)
	}
}
