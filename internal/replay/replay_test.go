package replay

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/sim"
)

var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 99}

func newGame(v sim.Version) *flappy.Game {
	cfg := config.DefaultFlappyConfig()
	return flappy.NewWithOptions(v, flappy.Options{
		Config: &cfg,
		Prefs:  sim.NewMemoryPrefs(),
		Audio:  audio.NopPlayer{},
		Logger: log.New(io.Discard),
	})
}

// playLive runs a v2 session by hand, tapping through the menus and then
// every 18 frames, and records it.
func playLive(frames int) (*flappy.Game, *Recorder, []int) {
	g := newGame(sim.V2)
	g.Reset(testRuntime)
	rec := NewRecorder(g.ID(), testRuntime)

	var scores []int
	for i := range frames {
		at := time.Duration(i) * time.Second / 60
		in := core.NewInputFrame()
		switch {
		case i == 0:
			in.Click(20, 17)
		case i%18 == 1:
			in.Set(core.ActionTap)
		}
		rec.Record(at, in)
		if res := g.Step(at, in); res.RunEnded {
			scores = append(scores, res.State.Score)
		}
	}
	return g, rec, scores
}

func TestReplayReproducesSession(t *testing.T) {
	live, rec, liveScores := playLive(900)

	var buf bytes.Buffer
	if err := Encode(&buf, rec.Recording()); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	g := newGame(sim.V2)
	res := Run(g, decoded, nil)

	if res.Steps != 900 {
		t.Errorf("Steps = %d, want 900", res.Steps)
	}
	if res.Final != live.State() {
		t.Errorf("final state = %+v, want %+v", res.Final, live.State())
	}
	if g.Simulation().Player() != live.Simulation().Player() {
		t.Errorf("player = %+v, want %+v", g.Simulation().Player(), live.Simulation().Player())
	}
	if len(res.Scores) != len(liveScores) {
		t.Fatalf("replay ended %d runs, live ended %d", len(res.Scores), len(liveScores))
	}
	for i := range liveScores {
		if res.Scores[i] != liveScores[i] {
			t.Errorf("run %d score = %d, want %d", i, res.Scores[i], liveScores[i])
		}
	}
}

func TestRunObserve(t *testing.T) {
	_, rec, _ := playLive(30)

	calls := 0
	Run(newGame(sim.V2), rec.Recording(), func(i int, g registry.Game, _ core.StepResult) {
		if i != calls {
			t.Errorf("observe index = %d, want %d", i, calls)
		}
		if g.ID() != "flappy-v2" {
			t.Errorf("observe game = %q", g.ID())
		}
		calls++
	})
	if calls != 30 {
		t.Errorf("observe called %d times, want 30", calls)
	}
}

func TestRecorderCapturesInput(t *testing.T) {
	r := NewRecorder("flappy-v3", testRuntime)

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	in.Set(core.ActionTap)
	in.Click(4, 5)
	r.Record(2*time.Second, in)
	r.Record(3*time.Second, core.NewInputFrame())

	rec := r.Recording()
	if rec.Game != "flappy-v3" || rec.Seed != 99 || rec.Format != Format {
		t.Errorf("header = %+v", rec)
	}
	if r.Len() != 2 || rec.Duration() != 3*time.Second {
		t.Errorf("Len() = %d, Duration() = %v", r.Len(), rec.Duration())
	}

	got := rec.Frames[0]
	if len(got.Actions) != 2 || got.Actions[0] != core.ActionTap || got.Actions[1] != core.ActionPause {
		t.Errorf("actions = %v, want [Tap Pause]", got.Actions)
	}
	back := got.Input()
	if !back.Has(core.ActionTap) || !back.Has(core.ActionPause) || len(back.Clicks) != 1 {
		t.Errorf("Input() = %+v", back)
	}
	if !rec.Frames[1].Input().Empty() {
		t.Error("empty frame did not stay empty")
	}

	// Later input must not leak into an earlier snapshot.
	r.Record(4*time.Second, core.NewInputFrame())
	if len(rec.Frames) != 2 {
		t.Error("Recording() shares its frame slice")
	}
}

func TestSaveLoad(t *testing.T) {
	_, rec, _ := playLive(120)
	path := filepath.Join(t.TempDir(), "runs", "session.replay")

	if err := rec.Save(path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.Game != "flappy-v2" || len(loaded.Frames) != 120 {
		t.Errorf("loaded %q with %d frames", loaded.Game, len(loaded.Frames))
	}
	if loaded.Frames[0].Clicks[0] != (core.Point{X: 20, Y: 17}) {
		t.Errorf("first click = %v", loaded.Frames[0].Clicks)
	}
}

func TestDecodeErrors(t *testing.T) {
	future, err := msgpack.Marshal(&Recording{Format: Format + 1, Game: "flappy-v1"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(bytes.NewReader(future)); !errors.Is(err, ErrFormat) {
		t.Errorf("future format error = %v, want ErrFormat", err)
	}

	if _, err := Decode(bytes.NewReader([]byte{0xc1})); err == nil {
		t.Error("garbage decoded without error")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.replay")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestRecorderSetRuntime(t *testing.T) {
	r := NewRecorder("flappy-v1", core.RuntimeConfig{})
	r.SetRuntime(testRuntime)
	if got := r.Recording().Runtime(); got != testRuntime {
		t.Errorf("Runtime() = %+v, want %+v", got, testRuntime)
	}
}
