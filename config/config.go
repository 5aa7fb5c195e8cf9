// Package config loads the game configuration: defaults, then a YAML file, then environment
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/outpost/event"
	"github.com/lixenwraith/outpost/game"
	"github.com/lixenwraith/outpost/save"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "OUTPOST_"

// Save backends
const (
	BackendFile   = save.BackendFile
	BackendSQLite = save.BackendSQLite
	BackendMemory = save.BackendMemory
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("config: invalid")

// Config is the complete runtime configuration
type Config struct {
	Sim     SimConfig     `yaml:"sim" envPrefix:"SIM_"`
	Save    SaveConfig    `yaml:"save" envPrefix:"SAVE_"`
	Log     LogConfig     `yaml:"log" envPrefix:"LOG_"`
	Metrics MetricsConfig `yaml:"metrics" envPrefix:"METRICS_"`
	Audio   AudioConfig   `yaml:"audio" envPrefix:"AUDIO_"`
}

// SimConfig drives the tick loop, the event scheduler and resource drain
type SimConfig struct {
	TicksPerSecond     int           `yaml:"ticks_per_second" env:"TICKS_PER_SECOND"`
	ExpiryInterval     uint64        `yaml:"expiry_interval" env:"EXPIRY_INTERVAL"`
	GenerationInterval uint64        `yaml:"generation_interval" env:"GENERATION_INTERVAL"`
	DrawRange          int           `yaml:"draw_range" env:"DRAW_RANGE"`
	EventDuration      time.Duration `yaml:"event_duration" env:"EVENT_DURATION"`
	ResourceInterval   uint64        `yaml:"resource_interval" env:"RESOURCE_INTERVAL"`
	MaxLevel           uint16        `yaml:"max_level" env:"MAX_LEVEL"`
	LifeLoss           uint16        `yaml:"life_loss" env:"LIFE_LOSS"`
	SingleInstance     bool          `yaml:"single_instance" env:"SINGLE_INSTANCE"`

	// Seed 0 picks a random seed per run
	Seed uint64 `yaml:"seed" env:"SEED"`
}

type SaveConfig struct {
	Backend string `yaml:"backend" env:"BACKEND"`
	Dir     string `yaml:"dir" env:"DIR"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LEVEL"`

	// File is the log path; empty discards logs
	File string `yaml:"file" env:"FILE"`
}

type MetricsConfig struct {
	// Addr is the debug HTTP listen address; empty disables the server
	Addr string `yaml:"addr" env:"ADDR"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled" env:"ENABLED"`
	Volume  float64 `yaml:"volume" env:"VOLUME"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		Sim: SimConfig{
			TicksPerSecond:     60,
			ExpiryInterval:     20,
			GenerationInterval: 1000,
			DrawRange:          50,
			EventDuration:      10 * time.Second,
			ResourceInterval:   60,
			MaxLevel:           100,
			LifeLoss:           5,
			SingleInstance:     true,
		},
		Save: SaveConfig{
			Backend: BackendFile,
			Dir:     "saves",
		},
		Log: LogConfig{
			Level: "info",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at path and the environment
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		// #nosec G304 -- path comes from the command line
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("multiple documents or trailing content")
	}
	return nil
}

// Validate reports every invalid field at once, wrapped in ErrInvalid
func (c Config) Validate() error {
	var problems []string
	s := c.Sim

	if s.TicksPerSecond <= 0 {
		problems = append(problems, "sim.ticks_per_second must be positive")
	}
	if s.ExpiryInterval == 0 {
		problems = append(problems, "sim.expiry_interval must be positive")
	}
	if s.GenerationInterval == 0 {
		problems = append(problems, "sim.generation_interval must be positive")
	}
	if s.DrawRange <= event.DrawMarsInfo {
		problems = append(problems, fmt.Sprintf("sim.draw_range must exceed %d", event.DrawMarsInfo))
	}
	if s.EventDuration < time.Second || s.EventDuration%time.Second != 0 {
		problems = append(problems, "sim.event_duration must be a whole number of seconds")
	}
	if s.ResourceInterval == 0 {
		problems = append(problems, "sim.resource_interval must be positive")
	}
	if s.MaxLevel == 0 {
		problems = append(problems, "sim.max_level must be positive")
	}

	switch c.Save.Backend {
	case BackendFile, BackendSQLite:
		if c.Save.Dir == "" {
			problems = append(problems, "save.dir is required for backend "+c.Save.Backend)
		}
	case BackendMemory:
	default:
		problems = append(problems, fmt.Sprintf("save.backend %q is not one of file, sqlite, memory", c.Save.Backend))
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		problems = append(problems, "audio.volume must be within [0, 1]")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// Scheduler returns the event scheduler configuration
func (c Config) Scheduler() event.Config {
	return event.Config{
		ExpiryInterval:     c.Sim.ExpiryInterval,
		GenerationInterval: c.Sim.GenerationInterval,
		DrawRange:          c.Sim.DrawRange,
		DurationSeconds:    int(c.Sim.EventDuration / time.Second),
		TicksPerSecond:     c.Sim.TicksPerSecond,
		SingleInstance:     c.Sim.SingleInstance,
	}
}

// Game returns the session configuration; fields not exposed here keep game defaults
func (c Config) Game() game.Config {
	g := game.DefaultConfig()
	g.TicksPerSecond = c.Sim.TicksPerSecond
	g.ResourceInterval = c.Sim.ResourceInterval
	g.MaxLevel = c.Sim.MaxLevel
	g.LifeLoss = c.Sim.LifeLoss
	return g
}

// Source returns the event random source factory for new sessions
// Each session gets its own source so a fixed seed replays identically
func (c Config) Source() func() event.Source {
	seed := c.Sim.Seed
	return func() event.Source {
		return event.NewSource(seed)
	}
}
