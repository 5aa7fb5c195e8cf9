package game

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/outpost/event"
	"github.com/lixenwraith/outpost/save"
)

// Factory creates sessions sharing one configuration and store
type Factory struct {
	Config    Config
	Scheduler event.Config

	// Source returns the random source for a new session; nil uses a random seed
	Source func() event.Source

	Store save.Store
	Death DeathFactory
	Log   zerolog.Logger
}

func (f *Factory) scheduler() *event.Scheduler {
	var rng event.Source
	if f.Source != nil {
		rng = f.Source()
	}
	return event.NewScheduler(f.Scheduler, rng, f.Log.With().Str("component", "scheduler").Logger())
}

// New starts a fresh session
func (f *Factory) New() *Session {
	return New(f.Config, f.scheduler(), f.Store, f.Death, f.Log)
}

// Resume loads the saved session; save.ErrNoSave when there is none
func (f *Factory) Resume(ctx context.Context) (*Session, error) {
	if f.Store == nil {
		return nil, save.ErrNoSave
	}
	snap, err := f.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Resume(snap, f.Config, f.scheduler(), f.Store, f.Death, f.Log)
}

// Reset deletes any saved session
func (f *Factory) Reset(ctx context.Context) error {
	if f.Store == nil {
		return nil
	}
	return f.Store.Delete(ctx)
}
