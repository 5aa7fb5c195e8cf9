package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/outpost/screen"
)

// Config controls the chime
type Config struct {
	Enabled bool
	Volume  float64
}

// backend is the speaker surface the chime needs
type backend struct {
	init  func(sr beep.SampleRate, bufferSize int) error
	play  func(s ...beep.Streamer)
	close func()
}

var speakerBackend = backend{
	init:  speaker.Init,
	play:  speaker.Play,
	close: speaker.Close,
}

// Chime plays a cue for every popup shown
// It degrades to silence when no audio device is available
type Chime struct {
	mu      sync.Mutex
	cfg     Config
	out     backend
	started bool
	cache   map[screen.PopupKind]floatBuffer
	log     zerolog.Logger
}

// NewChime creates a stopped chime
func NewChime(cfg Config, log zerolog.Logger) *Chime {
	return &Chime{
		cfg:   cfg,
		out:   speakerBackend,
		cache: make(map[screen.PopupKind]floatBuffer),
		log:   log,
	}
}

// Name implements service.Service
func (c *Chime) Name() string {
	return "audio"
}

// Dependencies implements service.Service
func (c *Chime) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: bool - muted, disables the chime when true
func (c *Chime) Init(args ...any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok && muted {
			c.cfg.Enabled = false
		}
	}
	if !c.cfg.Enabled {
		return nil
	}
	for kind := range cues {
		c.cache[kind] = Render(kind)
	}
	return nil
}

// Start implements service.Service
// A missing audio device is logged and leaves the chime silent
func (c *Chime) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.cfg.Enabled || c.started {
		return nil
	}
	if err := c.out.init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		c.log.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		return nil
	}
	c.started = true
	return nil
}

// Stop implements service.Service
func (c *Chime) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		c.out.close()
		c.started = false
	}
	return nil
}

// Active reports whether cues are being played
func (c *Chime) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

// OnPopup plays the cue for p; safe to call when stopped
func (c *Chime) OnPopup(p screen.Popup) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return
	}
	buf, ok := c.cache[p.Kind]
	if !ok {
		buf = Render(p.Kind)
		c.cache[p.Kind] = buf
	}
	c.out.play(withVolume(&bufferStreamer{buf: buf}, c.cfg.Volume))
}
