package event

import (
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/outpost/metrics"
)

// Config controls the scheduler cadence; intervals are in ticks
type Config struct {
	ExpiryInterval     uint64
	GenerationInterval uint64
	DrawRange          int
	DurationSeconds    int
	TicksPerSecond     int

	// SingleInstance skips a generated event whose kind is already active
	SingleInstance bool
}

// DefaultConfig returns the stock cadence: age every 20 ticks, draw every 1000
func DefaultConfig() Config {
	return Config{
		ExpiryInterval:     20,
		GenerationInterval: 1000,
		DrawRange:          50,
		DurationSeconds:    10,
		TicksPerSecond:     60,
		SingleInstance:     true,
	}
}

// NewSource returns a PCG source; seed 0 picks a random seed
func NewSource(seed uint64) Source {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Scheduler advances, expires and spawns events on the host tick
type Scheduler struct {
	cfg     Config
	catalog Catalog
	rng     Source
	log     zerolog.Logger
}

// NewScheduler creates a scheduler; zero cadence fields fall back to DefaultConfig
func NewScheduler(cfg Config, rng Source, log zerolog.Logger) *Scheduler {
	def := DefaultConfig()
	if cfg.ExpiryInterval == 0 {
		cfg.ExpiryInterval = def.ExpiryInterval
	}
	if cfg.GenerationInterval == 0 {
		cfg.GenerationInterval = def.GenerationInterval
	}
	if cfg.DrawRange <= 0 {
		cfg.DrawRange = def.DrawRange
	}
	if cfg.TicksPerSecond <= 0 {
		cfg.TicksPerSecond = def.TicksPerSecond
	}
	if cfg.DurationSeconds <= 0 {
		cfg.DurationSeconds = def.DurationSeconds
	}
	if rng == nil {
		rng = NewSource(0)
	}
	return &Scheduler{
		cfg:     cfg,
		catalog: Catalog{DurationSeconds: cfg.DurationSeconds, TicksPerSecond: cfg.TicksPerSecond},
		rng:     rng,
		log:     log,
	}
}

// Config returns the effective configuration
func (s *Scheduler) Config() Config {
	return s.cfg
}

// Advance runs the expiry step and then the generation step for tick
// Expired events with RestoreOnExpiry have their effect reversed
func (s *Scheduler) Advance(tick uint64, set *Set, target Target, out Notifier) error {
	if tick%s.cfg.ExpiryInterval == 0 {
		if err := s.expire(set, target, out); err != nil {
			return err
		}
	}
	if tick%s.cfg.GenerationInterval == 0 {
		if err := s.generate(tick, set, target, out); err != nil {
			return err
		}
	}
	metrics.SetActiveEvents(set.Len())
	return nil
}

func (s *Scheduler) expire(set *Set, target Target, out Notifier) error {
	set.Age(int(s.cfg.ExpiryInterval))
	removed := set.Retain((*Event).Active)

	for _, e := range removed {
		restored := e.Restore == RestoreOnExpiry
		if restored {
			if err := e.Apply(true, target, out); err != nil {
				return fmt.Errorf("event: restore %s: %w", e.Kind, err)
			}
		}
		metrics.RecordEventExpired(e.Kind.String(), restored)
		s.log.Info().
			Str("kind", e.Kind.String()).
			Bool("restored", restored).
			Msg("event expired")
	}
	return nil
}

func (s *Scheduler) generate(tick uint64, set *Set, target Target, out Notifier) error {
	draw := s.rng.IntN(s.cfg.DrawRange)
	e := s.catalog.Generate(draw, s.rng)
	if e == nil {
		return nil
	}

	if s.cfg.SingleInstance && set.Has(e.Kind) {
		metrics.RecordEventSkipped(e.Kind.String())
		s.log.Debug().
			Uint64("tick", tick).
			Str("kind", e.Kind.String()).
			Msg("event already active, generation skipped")
		return nil
	}

	if err := e.Apply(false, target, out); err != nil {
		return fmt.Errorf("event: apply %s: %w", e.Kind, err)
	}
	set.Push(e)

	metrics.RecordEventGenerated(e.Kind.String())
	s.log.Info().
		Uint64("tick", tick).
		Int("draw", draw).
		Str("kind", e.Kind.String()).
		Int("duration_ticks", e.Remaining).
		Msg("event triggered")
	return nil
}
