package audio

import (
	"math"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// bufferStreamer plays a mono buffer on both channels once
type bufferStreamer struct {
	buf floatBuffer
	pos int
}

func (b *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if b.pos >= len(b.buf) {
		return 0, false
	}
	for n < len(samples) && b.pos < len(b.buf) {
		v := b.buf[b.pos]
		samples[n][0] = v
		samples[n][1] = v
		n++
		b.pos++
	}
	return n, true
}

func (b *bufferStreamer) Err() error {
	return nil
}

// withVolume scales s by a linear volume in [0, 1]
func withVolume(s beep.Streamer, volume float64) beep.Streamer {
	if volume <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(math.Min(volume, 1))}
}
