// Package replay records the input a game receives and plays it back.
// A game is deterministic given its seed and the times and input of every
// step, so a recording reproduces a session exactly.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

// Format is the recording layout version written by Encode.
const Format = 1

// ErrFormat is returned when a recording has an unknown layout version.
var ErrFormat = errors.New("replay: unsupported recording format")

// Recording is one captured session.
type Recording struct {
	Format   int     `msgpack:"format"`
	Game     string  `msgpack:"game"`
	Seed     int64   `msgpack:"seed"`
	ScreenW  int     `msgpack:"w"`
	ScreenH  int     `msgpack:"h"`
	TickRate int     `msgpack:"tick_rate"`
	Frames   []Frame `msgpack:"frames"`
}

// Frame is the input of one step.
type Frame struct {
	At      time.Duration `msgpack:"t"`
	Actions []core.Action `msgpack:"a,omitempty"`
	Clicks  []core.Point  `msgpack:"c,omitempty"`
}

// Input rebuilds the frame's input.
func (f Frame) Input() core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range f.Actions {
		in.Set(a)
	}
	in.Clicks = slices.Clone(f.Clicks)
	return in
}

// Runtime returns the runtime the recording was made with.
func (r Recording) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  r.ScreenW,
		ScreenH:  r.ScreenH,
		TickRate: r.TickRate,
		Seed:     r.Seed,
	}
}

// Duration returns the time of the last recorded step.
func (r Recording) Duration() time.Duration {
	if len(r.Frames) == 0 {
		return 0
	}
	return r.Frames[len(r.Frames)-1].At
}

// Recorder captures every step of a session.
type Recorder struct {
	rec Recording
}

// NewRecorder starts a recording for a game reset with rt.
func NewRecorder(gameID string, rt core.RuntimeConfig) *Recorder {
	return &Recorder{rec: Recording{
		Format:   Format,
		Game:     gameID,
		Seed:     rt.Seed,
		ScreenW:  rt.ScreenW,
		ScreenH:  rt.ScreenH,
		TickRate: rt.TickRate,
	}}
}

// SetRuntime updates the runtime stored in the header. Hosts call it once
// the seed and screen size are final.
func (r *Recorder) SetRuntime(rt core.RuntimeConfig) {
	r.rec.Seed = rt.Seed
	r.rec.ScreenW = rt.ScreenW
	r.rec.ScreenH = rt.ScreenH
	r.rec.TickRate = rt.TickRate
}

// Record appends the input passed to Step at time at.
func (r *Recorder) Record(at time.Duration, in core.InputFrame) {
	f := Frame{At: at, Clicks: slices.Clone(in.Clicks)}
	for a, on := range in.Actions {
		if on {
			f.Actions = append(f.Actions, a)
		}
	}
	slices.Sort(f.Actions)
	r.rec.Frames = append(r.rec.Frames, f)
}

// Recording returns what has been captured so far.
func (r *Recorder) Recording() Recording {
	rec := r.rec
	rec.Frames = slices.Clone(r.rec.Frames)
	return rec
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	return len(r.rec.Frames)
}

// Save writes the recording to path, creating parent directories.
func (r *Recorder) Save(path string) error {
	return Save(path, r.rec)
}

// Encode writes rec as msgpack.
func Encode(w io.Writer, rec Recording) error {
	if rec.Format == 0 {
		rec.Format = Format
	}
	if err := msgpack.NewEncoder(w).Encode(&rec); err != nil {
		return fmt.Errorf("replay: encode: %w", err)
	}
	return nil
}

// Decode reads a recording written by Encode.
func Decode(r io.Reader) (Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return Recording{}, fmt.Errorf("replay: decode: %w", err)
	}
	if rec.Format != Format {
		return Recording{}, fmt.Errorf("%w: %d", ErrFormat, rec.Format)
	}
	return rec, nil
}

// Save writes rec to path.
func Save(path string, rec Recording) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("replay: cannot create directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := Encode(w, rec); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("replay: %w", err)
	}
	return f.Close()
}

// Load reads a recording from path.
func Load(path string) (Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return Recording{}, fmt.Errorf("replay: %w", err)
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}

// Result summarizes a played back session.
type Result struct {
	Final  core.GameState
	Scores []int // score of every run that ended, in order
	Steps  int
}

// StepFunc observes the game after each replayed step.
type StepFunc func(i int, g registry.Game, res core.StepResult)

// Run resets g with the recording's runtime and feeds it every frame.
// observe may be nil.
func Run(g registry.Game, rec Recording, observe StepFunc) Result {
	g.Reset(rec.Runtime())

	var out Result
	for i, f := range rec.Frames {
		res := g.Step(f.At, f.Input())
		if res.RunEnded {
			out.Scores = append(out.Scores, res.State.Score)
		}
		if observe != nil {
			observe(i, g, res)
		}
		out.Steps++
	}
	out.Final = g.State()
	return out
}
