package audio

import (
	"errors"
	"testing"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/outpost/screen"
)

func TestRenderCues(t *testing.T) {
	kinds := []screen.PopupKind{screen.PopupWarning, screen.PopupNASA, screen.PopupMars, screen.PopupError}
	lengths := map[int]bool{}

	for _, k := range kinds {
		buf := Render(k)
		require.NotEmpty(t, buf, k.String())
		for i, v := range buf {
			if v < -1.0001 || v > 1.0001 {
				t.Fatalf("%s: sample %d out of range: %f", k, i, v)
			}
		}
		assert.InDelta(t, 0, buf[0], 1e-9, "%s starts silent", k)
		lengths[len(buf)] = true
	}
	assert.Greater(t, len(lengths), 1, "cues differ")

	assert.Len(t, Render(screen.PopupKind(42)), len(Render(screen.PopupError)))
}

func TestOscillatorSquare(t *testing.T) {
	buf := oscillator(waveSquare, float64(SampleRate)/4, 8)
	assert.Equal(t, floatBuffer{1, 1, -1, -1, 1, 1, -1, -1}, buf)
}

func TestApplyEnvelope(t *testing.T) {
	buf := floatBuffer{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	applyEnvelope(buf, 2, 2)

	assert.Equal(t, 0.0, buf[0])
	assert.Equal(t, 0.5, buf[1])
	assert.Equal(t, 1.0, buf[5])
	assert.Equal(t, 1.0, buf[8])
	assert.Equal(t, 0.5, buf[9])
}

func TestBufferStreamer(t *testing.T) {
	s := &bufferStreamer{buf: floatBuffer{0.1, 0.2, 0.3}}
	samples := make([][2]float64, 2)

	n, ok := s.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	assert.Equal(t, [2]float64{0.2, 0.2}, samples[1])

	n, ok = s.Stream(samples)
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	n, ok = s.Stream(samples)
	assert.False(t, ok)
	assert.Zero(t, n)
	assert.NoError(t, s.Err())
}

func TestWithVolume(t *testing.T) {
	samples := make([][2]float64, 1)

	half := withVolume(&bufferStreamer{buf: floatBuffer{0.8}}, 0.5)
	_, ok := half.Stream(samples)
	require.True(t, ok)
	assert.InDelta(t, 0.4, samples[0][0], 1e-9)

	mute := withVolume(&bufferStreamer{buf: floatBuffer{0.8}}, 0)
	_, ok = mute.Stream(samples)
	require.True(t, ok)
	assert.Zero(t, samples[0][0])
}

type fakeSpeaker struct {
	initErr error
	inits   int
	plays   int
	closes  int
}

func (f *fakeSpeaker) backend() backend {
	return backend{
		init: func(beep.SampleRate, int) error {
			f.inits++
			return f.initErr
		},
		play:  func(...beep.Streamer) { f.plays++ },
		close: func() { f.closes++ },
	}
}

func newTestChime(cfg Config, spk *fakeSpeaker) *Chime {
	c := NewChime(cfg, zerolog.Nop())
	c.out = spk.backend()
	return c
}

func TestChimeLifecycle(t *testing.T) {
	spk := &fakeSpeaker{}
	c := newTestChime(Config{Enabled: true, Volume: 1}, spk)

	c.OnPopup(screen.Warning("ignored before start"))
	require.NoError(t, c.Init())
	require.NoError(t, c.Start())
	assert.True(t, c.Active())

	c.OnPopup(screen.Warning("sandstorm"))
	c.OnPopup(screen.NASA("hello"))
	assert.Equal(t, 2, spk.plays)

	require.NoError(t, c.Stop())
	require.NoError(t, c.Stop())
	assert.Equal(t, 1, spk.closes, "stop is idempotent")
	assert.Equal(t, "audio", c.Name())
	assert.Empty(t, c.Dependencies())
}

func TestChimeMutedByInitArg(t *testing.T) {
	spk := &fakeSpeaker{}
	c := newTestChime(Config{Enabled: true}, spk)

	require.NoError(t, c.Init(true))
	require.NoError(t, c.Start())
	c.OnPopup(screen.Warning("x"))

	assert.Zero(t, spk.inits)
	assert.Zero(t, spk.plays)
}

func TestChimeWithoutDevice(t *testing.T) {
	spk := &fakeSpeaker{initErr: errors.New("no audio device")}
	c := newTestChime(Config{Enabled: true}, spk)

	require.NoError(t, c.Init())
	assert.NoError(t, c.Start(), "missing device is not fatal")
	assert.False(t, c.Active())

	c.OnPopup(screen.Mars("dust"))
	assert.Zero(t, spk.plays)
	require.NoError(t, c.Stop())
	assert.Zero(t, spk.closes)
}

func TestChimeDisabledByConfig(t *testing.T) {
	spk := &fakeSpeaker{}
	c := newTestChime(Config{Enabled: false}, spk)

	require.NoError(t, c.Init(false))
	require.NoError(t, c.Start())
	assert.False(t, c.Active())
	assert.Zero(t, spk.inits)
}
