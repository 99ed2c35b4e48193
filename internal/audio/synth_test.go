package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(s beep.Streamer, limit int) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for total < limit {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if v := buf[i][0]; v > peak {
				peak = v
			} else if -v > peak {
				peak = -v
			}
		}
		total += n
		if !ok {
			break
		}
	}
	return total, peak
}

func TestOscillatorRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(440, 50*time.Millisecond, wave, rate)
		samples := make([][2]float64, 200)
		n, ok := osc.Stream(samples)
		if !ok || n != 200 {
			t.Fatalf("wave %d: streamed %d ok=%v", wave, n, ok)
		}
		for i := 0; i < n; i++ {
			if samples[i][0] < -1 || samples[i][0] > 1 {
				t.Errorf("wave %d: sample %d out of range: %f", wave, i, samples[i][0])
			}
			if samples[i][0] != samples[i][1] {
				t.Errorf("wave %d: sample %d channels differ", wave, i)
			}
		}
	}
}

func TestOscillatorEnds(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(100, 100*time.Millisecond, WaveSine, rate)

	total, _ := drain(osc, 10000)
	if total != 100 {
		t.Errorf("streamed %d samples, want 100", total)
	}

	n, ok := osc.Stream(make([][2]float64, 10))
	if n != 0 || ok {
		t.Errorf("drained oscillator returned n=%d ok=%v", n, ok)
	}
}

func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, 100*time.Millisecond, WaveSquare, rate)
	env := NewEnvelope(osc, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate)

	samples := make([][2]float64, 100)
	n, _ := env.Stream(samples)
	if n != 100 {
		t.Fatalf("streamed %d samples, want 100", n)
	}
	if samples[0][0] != 0 {
		t.Errorf("attack should start silent, got %f", samples[0][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("sustain should be full volume, got %f", samples[50][0])
	}
	if samples[99][0] <= 0 || samples[99][0] >= 0.1 {
		t.Errorf("release tail = %f, want small positive", samples[99][0])
	}
}

func TestSynthSounds(t *testing.T) {
	synth := NewSynth(SampleRate, 1)
	names := Names()
	if len(names) != 7 {
		t.Errorf("%d sounds, want 7", len(names))
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			s, ok := synth.Sound(name)
			if !ok {
				t.Fatal("sound not found")
			}
			want := synth.Length(name)
			if want == 0 {
				t.Fatal("zero length")
			}
			total, peak := drain(s, want*2)
			if total != want {
				t.Errorf("streamed %d samples, want %d", total, want)
			}
			if peak == 0 {
				t.Error("sound is silent")
			}
		})
	}
}

func TestSynthUnknown(t *testing.T) {
	if _, ok := NewSynth(SampleRate, 1).Sound("nope"); ok {
		t.Error("unknown sound should not resolve")
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var p Player = &r
	p.Play("coin")
	p.Play("pop")
	got := r.Played()
	if len(got) != 2 || got[0] != "coin" || got[1] != "pop" {
		t.Errorf("played = %v", got)
	}
	NopPlayer{}.Play("coin")
}
