// Package game implements the running outpost session
//
// The Session is a screen: every host tick it advances the event scheduler, drains
// resources on the resource interval and hands the death screen to the stack once life
// runs out. It is also the event Target, owning the change accumulator, the active events
// and the machines.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/outpost/event"
	"github.com/lixenwraith/outpost/machine"
	"github.com/lixenwraith/outpost/metrics"
	"github.com/lixenwraith/outpost/resource"
	"github.com/lixenwraith/outpost/save"
	"github.com/lixenwraith/outpost/screen"
)

// Config holds the resource model parameters of a session
type Config struct {
	TicksPerSecond   int
	ResourceInterval uint64
	MaxLevel         uint16
	LifeLoss         uint16

	// BaseChange is the accumulator of a fresh session: the outpost's own drain
	BaseChange  resource.Delta
	StartLevels resource.Levels

	// Floor bounds for player movement
	FloorWidth, FloorHeight int
}

// DefaultConfig returns the stock resource model
func DefaultConfig() Config {
	return Config{
		TicksPerSecond:   60,
		ResourceInterval: 60,
		MaxLevel:         100,
		LifeLoss:         5,
		BaseChange:       resource.Delta{Oxygen: -1, Energy: -1},
		StartLevels:      resource.Levels{Oxygen: 100, Energy: 100, Life: 100},
		FloorWidth:       40,
		FloorHeight:      10,
	}
}

// DeathFactory builds the screen shown when the run ends
type DeathFactory func(cause resource.DeathCause) screen.Screen

// Session is a running game
type Session struct {
	ID        string
	Tick      uint64
	Levels    resource.Levels
	Change    resource.Delta
	Player    save.Position
	Events    *event.Set
	Machines  *machine.Registry
	Inventory []resource.Item

	cfg       Config
	scheduler *event.Scheduler
	tx        *screen.Sender
	store     save.Store
	death     DeathFactory
	log       zerolog.Logger
	dead      bool
}

// New starts a fresh session with a new save slot id
// store may be nil, in which case nothing is persisted
func New(cfg Config, sched *event.Scheduler, store save.Store, death DeathFactory, log zerolog.Logger) *Session {
	if cfg.ResourceInterval == 0 {
		cfg.ResourceInterval = DefaultConfig().ResourceInterval
	}
	if cfg.MaxLevel == 0 {
		cfg.MaxLevel = DefaultConfig().MaxLevel
	}
	return &Session{
		ID:        uuid.NewString(),
		Levels:    resource.Apply(cfg.StartLevels, resource.Delta{}, cfg.MaxLevel),
		Change:    cfg.BaseChange,
		Player:    save.Position{X: cfg.FloorWidth / 2, Y: cfg.FloorHeight / 2},
		Events:    event.NewSet(),
		Machines:  machine.Default(),
		Inventory: starterKit(),
		cfg:       cfg,
		scheduler: sched,
		store:     store,
		death:     death,
		log:       log,
	}
}

// Resume rebuilds a session from a snapshot
func Resume(snap *save.Snapshot, cfg Config, sched *event.Scheduler, store save.Store, death DeathFactory, log zerolog.Logger) (*Session, error) {
	s := New(cfg, sched, store, death, log)
	if err := s.Restore(snap); err != nil {
		return nil, err
	}
	return s, nil
}

func starterKit() []resource.Item {
	return []resource.Item{
		{Name: "Sealant", InfoText: "Patches small hull breaches", Amount: 2},
		{Name: "Fuse", InfoText: "Spare fuse for the generator", Amount: 1},
	}
}

func (s *Session) SetSender(tx *screen.Sender) {
	s.tx = tx
}

// AdjustChange adds d to the resource accumulator; the accumulator is never clamped
func (s *Session) AdjustChange(d resource.Delta) {
	s.Change = s.Change.Add(d)
}

// SetState flips a machine; unknown names are ignored
func (s *Session) SetState(name string, st machine.State) {
	s.Machines.SetState(name, st)
	s.log.Debug().Str("machine", name).Stringer("state", st).Msg("machine state changed")
}

// Dead reports whether the run has ended
func (s *Session) Dead() bool {
	return s.dead
}

// Update advances the session one tick
func (s *Session) Update(ctx *screen.Context) (screen.Command, error) {
	if s.dead {
		return screen.Pop{}, nil
	}

	s.Tick++
	metrics.RecordTick()

	for _, ev := range ctx.Keys {
		if ev.Key() == tcell.KeyEscape {
			return s.leave()
		}
		s.handleKey(ev)
	}

	if err := s.scheduler.Advance(s.Tick, s.Events, s, s.tx); err != nil {
		return nil, fmt.Errorf("game: tick %d: %w", s.Tick, err)
	}

	if s.Tick%s.cfg.ResourceInterval == 0 {
		s.drain()
		if s.Levels.Life == 0 {
			return s.die(), nil
		}
	}
	return screen.None{}, nil
}

// drain applies the accumulator to the levels, with life loss while oxygen or energy is out
func (s *Session) drain() {
	s.Levels = resource.Apply(s.Levels, s.Change, s.cfg.MaxLevel)
	if s.Levels.Oxygen == 0 || s.Levels.Energy == 0 {
		if s.Levels.Life > s.cfg.LifeLoss {
			s.Levels.Life -= s.cfg.LifeLoss
		} else {
			s.Levels.Life = 0
		}
	}
	metrics.SetResourceLevels(s.Levels.Oxygen, s.Levels.Energy, s.Levels.Life)
}

func (s *Session) die() screen.Command {
	s.dead = true
	cause := resource.CauseOf(s.Levels)
	metrics.RecordDeath(cause.String())
	s.log.Info().
		Str("id", s.ID).
		Uint64("tick", s.Tick).
		Stringer("cause", cause).
		Msg("outpost lost")

	if s.store != nil {
		if err := s.store.Delete(context.Background()); err != nil {
			s.log.Warn().Err(err).Msg("could not delete save of finished run")
		}
	}
	return screen.Push{Screen: s.death(cause)}
}

// leave saves and returns to the screen beneath
// A failed save keeps the player in the session with an error popup
func (s *Session) leave() (screen.Command, error) {
	if err := s.Save(context.Background()); err != nil {
		s.log.Error().Err(err).Msg("save on exit failed")
		if sendErr := s.tx.Send(screen.ShowPopup{Popup: screen.ErrorPopup("Saving failed: " + err.Error())}); sendErr != nil {
			return nil, errors.Join(err, sendErr)
		}
		return screen.None{}, nil
	}
	return screen.Pop{}, nil
}

// Save persists the session to its store
func (s *Session) Save(ctx context.Context) error {
	if s.store == nil {
		return nil
	}
	snap, err := s.Snapshot()
	if err != nil {
		return err
	}
	return s.store.Save(ctx, snap)
}

// Snapshot captures the session for persistence
func (s *Session) Snapshot() (*save.Snapshot, error) {
	records, err := s.Events.Records()
	if err != nil {
		return nil, fmt.Errorf("game: snapshot events: %w", err)
	}
	return &save.Snapshot{
		ID:        s.ID,
		SavedAt:   time.Now().UTC(),
		Tick:      s.Tick,
		Levels:    s.Levels,
		Change:    s.Change,
		Player:    s.Player,
		Events:    records,
		Machines:  s.Machines.All(),
		Inventory: append([]resource.Item(nil), s.Inventory...),
	}, nil
}

// Restore replaces the session state with snap
func (s *Session) Restore(snap *save.Snapshot) error {
	set, err := event.SetFromRecords(snap.Events)
	if err != nil {
		return fmt.Errorf("game: restore events: %w", err)
	}
	if snap.ID != "" {
		s.ID = snap.ID
	}
	s.Tick = snap.Tick
	s.Levels = snap.Levels
	s.Change = snap.Change
	s.Player = snap.Player
	s.Events = set
	if len(snap.Machines) > 0 {
		s.Machines = machine.NewRegistry(snap.Machines...)
	}
	s.Inventory = append([]resource.Item(nil), snap.Inventory...)
	s.dead = false
	return nil
}
