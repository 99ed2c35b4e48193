package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player plays named sounds. Play never blocks and never fails; unknown names
// are ignored.
type Player interface {
	Play(name string)
}

// NopPlayer discards every sound.
type NopPlayer struct{}

// Play does nothing.
func (NopPlayer) Play(string) {}

// SpeakerPlayer mixes synthesized sounds into the default output device.
type SpeakerPlayer struct {
	mu     sync.Mutex
	synth  *Synth
	mixer  *beep.Mixer
	logger *log.Logger
	closed bool
}

// NewSpeakerPlayer opens the output device. The speaker can be initialized
// once per process.
func NewSpeakerPlayer(volume float64, logger *log.Logger) (*SpeakerPlayer, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: init speaker: %w", err)
	}
	p := &SpeakerPlayer{
		synth:  NewSynth(SampleRate, volume),
		mixer:  &beep.Mixer{},
		logger: logger,
	}
	speaker.Play(p.mixer)
	return p, nil
}

// Play starts the named sound on top of whatever is playing.
func (p *SpeakerPlayer) Play(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	s, ok := p.synth.Sound(name)
	if !ok {
		p.logger.Debug("unknown sound", "name", name)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer. Later calls to Play are ignored.
func (p *SpeakerPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}

// Open returns a speaker player, or a NopPlayer when muted or when the device
// cannot be opened.
func Open(mute bool, volume float64, logger *log.Logger) Player {
	if mute {
		return NopPlayer{}
	}
	p, err := NewSpeakerPlayer(volume, logger)
	if err != nil {
		logger.Warn("audio disabled", "err", err)
		return NopPlayer{}
	}
	return p
}

// Recorder remembers every sound it is asked to play.
type Recorder struct {
	mu    sync.Mutex
	names []string
}

// Play records name.
func (r *Recorder) Play(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
}

// Played returns the recorded names in order.
func (r *Recorder) Played() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}
