// Package audio synthesizes and plays the game's sound effects.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the rate every sound is synthesized at.
const SampleRate = beep.SampleRate(44100)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave, optionally sweeping linearly from freq to
// endFreq over its duration.
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator creates a fixed-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator whose pitch slides from freq to endFreq.
func NewSweep(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewSource(1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope wraps s with an attack/release envelope spanning duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream by a linear gain. Gain 0 is silence.
func newVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// tone is one shaped oscillator.
type tone struct {
	wave            WaveType
	from, to        float64
	duration        time.Duration
	attack, release time.Duration
	delay           time.Duration
	gain            float64
}

func (t tone) streamer(rate beep.SampleRate) beep.Streamer {
	osc := NewSweep(t.from, t.to, t.duration, t.wave, rate)
	shaped := newVolume(NewEnvelope(osc, t.duration, t.attack, t.release, rate), t.gain)
	if t.delay <= 0 {
		return shaped
	}
	return beep.Seq(beep.Silence(rate.N(t.delay)), shaped)
}

// recipes describes every named sound as a mix of tones.
var recipes = map[string][]tone{
	"coin": {
		{wave: WaveSquare, from: 988, to: 988, duration: 70 * time.Millisecond, attack: 2 * time.Millisecond, release: 20 * time.Millisecond, gain: 0.25},
		{wave: WaveSquare, from: 1319, to: 1319, duration: 180 * time.Millisecond, attack: 2 * time.Millisecond, release: 120 * time.Millisecond, delay: 70 * time.Millisecond, gain: 0.25},
	},
	"ding": {
		{wave: WaveSine, from: 880, to: 880, duration: 600 * time.Millisecond, attack: 5 * time.Millisecond, release: 550 * time.Millisecond, gain: 0.5},
		{wave: WaveSine, from: 1760, to: 1760, duration: 600 * time.Millisecond, attack: 5 * time.Millisecond, release: 300 * time.Millisecond, gain: 0.2},
	},
	"falling": {
		{wave: WaveSine, from: 900, to: 200, duration: 450 * time.Millisecond, attack: 10 * time.Millisecond, release: 100 * time.Millisecond, gain: 0.35},
	},
	"flapping": {
		{wave: WaveNoise, duration: 90 * time.Millisecond, attack: 10 * time.Millisecond, release: 60 * time.Millisecond, gain: 0.2},
		{wave: WaveSine, from: 300, to: 500, duration: 90 * time.Millisecond, attack: 5 * time.Millisecond, release: 60 * time.Millisecond, gain: 0.15},
	},
	"hitGround": {
		{wave: WaveNoise, duration: 160 * time.Millisecond, attack: time.Millisecond, release: 140 * time.Millisecond, gain: 0.4},
		{wave: WaveSine, from: 120, to: 50, duration: 200 * time.Millisecond, attack: time.Millisecond, release: 150 * time.Millisecond, gain: 0.5},
	},
	"pop": {
		{wave: WaveSine, from: 600, to: 1200, duration: 60 * time.Millisecond, attack: time.Millisecond, release: 40 * time.Millisecond, gain: 0.3},
	},
	"whack": {
		{wave: WaveSaw, from: 220, to: 90, duration: 120 * time.Millisecond, attack: time.Millisecond, release: 90 * time.Millisecond, gain: 0.35},
		{wave: WaveNoise, duration: 80 * time.Millisecond, attack: time.Millisecond, release: 70 * time.Millisecond, gain: 0.3},
	},
}

// Names lists the sounds Synth knows, in no particular order.
func Names() []string {
	out := make([]string, 0, len(recipes))
	for name := range recipes {
		out = append(out, name)
	}
	return out
}

// Synth builds sound streamers by name.
type Synth struct {
	rate   beep.SampleRate
	volume float64
}

// NewSynth creates a synth with the given master volume in [0, 1].
func NewSynth(rate beep.SampleRate, volume float64) *Synth {
	return &Synth{rate: rate, volume: volume}
}

// Sound returns a fresh streamer for the named sound and false if the name is
// unknown.
func (s *Synth) Sound(name string) (beep.Streamer, bool) {
	parts, ok := recipes[name]
	if !ok {
		return nil, false
	}
	streams := make([]beep.Streamer, 0, len(parts))
	for _, p := range parts {
		streams = append(streams, p.streamer(s.rate))
	}
	return beep.Take(s.Length(name), newVolume(beep.Mix(streams...), s.volume)), true
}

// Length returns the number of samples the named sound lasts.
func (s *Synth) Length(name string) int {
	longest := 0
	for _, p := range recipes[name] {
		longest = max(longest, s.rate.N(p.delay)+s.rate.N(p.duration))
	}
	return longest
}
