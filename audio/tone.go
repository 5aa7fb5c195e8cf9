// Package audio plays short synthesized cues when popups appear
package audio

import (
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/outpost/screen"
)

// SampleRate is the speaker and synthesis rate
const SampleRate = beep.SampleRate(44100)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// note is one envelope-shaped tone of a cue
type note struct {
	wave    int
	freq    float64
	dur     time.Duration
	attack  time.Duration
	release time.Duration
}

// cues per popup kind, notes played back to back
var cues = map[screen.PopupKind][]note{
	// Two falling saw blips
	screen.PopupWarning: {
		{wave: waveSaw, freq: 440, dur: 120 * time.Millisecond, attack: 5 * time.Millisecond, release: 40 * time.Millisecond},
		{wave: waveSaw, freq: 330, dur: 180 * time.Millisecond, attack: 5 * time.Millisecond, release: 80 * time.Millisecond},
	},
	// Radio chirp
	screen.PopupNASA: {
		{wave: waveSine, freq: 880, dur: 90 * time.Millisecond, attack: 5 * time.Millisecond, release: 30 * time.Millisecond},
		{wave: waveSine, freq: 1320, dur: 140 * time.Millisecond, attack: 5 * time.Millisecond, release: 90 * time.Millisecond},
	},
	// Low hum over dust
	screen.PopupMars: {
		{wave: waveSine, freq: 220, dur: 250 * time.Millisecond, attack: 40 * time.Millisecond, release: 150 * time.Millisecond},
		{wave: waveNoise, dur: 120 * time.Millisecond, attack: 10 * time.Millisecond, release: 100 * time.Millisecond},
	},
	screen.PopupError: {
		{wave: waveSquare, freq: 100, dur: 200 * time.Millisecond, attack: 5 * time.Millisecond, release: 100 * time.Millisecond},
	},
}

// Render synthesizes the cue for kind; unknown kinds use the error cue
func Render(kind screen.PopupKind) floatBuffer {
	notes, ok := cues[kind]
	if !ok {
		notes = cues[screen.PopupError]
	}
	var out floatBuffer
	for _, n := range notes {
		buf := oscillator(n.wave, n.freq, SampleRate.N(n.dur))
		applyEnvelope(buf, SampleRate.N(n.attack), SampleRate.N(n.release))
		out = append(out, buf...)
	}
	return out
}

// oscillator generates raw waveform samples
// Sine tones come from the beep generator, the rest are computed directly
func oscillator(waveType int, freq float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	if waveType == waveSine {
		if sine, err := generators.SineTone(SampleRate, freq); err == nil {
			stereo := make([][2]float64, samples)
			n, _ := sine.Stream(stereo)
			for i := 0; i < n; i++ {
				buf[i] = stereo[i][0]
			}
			return buf
		}
	}

	phase := 0.0
	phaseInc := freq / float64(SampleRate)
	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveSaw:
			buf[i] = 2.0 * (phase - 0.5)
		case waveNoise:
			buf[i] = rand.Float64()*2 - 1
		}

		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// applyEnvelope applies a linear attack/release envelope in place
func applyEnvelope(buf floatBuffer, attackSamples, releaseSamples int) {
	total := len(buf)
	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}
