package save

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/outpost/metrics"
)

// Backend names accepted by NewStore
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// NewStore creates the store for backend rooted at dir
// Every operation is counted in metrics and logged
func NewStore(backend, dir string, log zerolog.Logger) (Store, error) {
	var (
		store Store
		err   error
	)
	switch backend {
	case BackendFile, "":
		backend = BackendFile
		store, err = NewFileStore(dir)
	case BackendSQLite:
		store, err = NewSQLiteStore(filepath.Join(dir, DBName))
	case BackendMemory:
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("save: unknown backend %q (supported: file, sqlite, memory)", backend)
	}
	if err != nil {
		return nil, err
	}
	return &observed{Store: store, backend: backend, log: log}, nil
}

// observed decorates a Store with metrics and logging
type observed struct {
	Store
	backend string
	log     zerolog.Logger
}

func (o *observed) Save(ctx context.Context, snap *Snapshot) error {
	err := o.Store.Save(ctx, snap)
	o.record("save", err)
	if err == nil {
		o.log.Info().
			Str("id", snap.ID).
			Uint64("tick", snap.Tick).
			Int("events", len(snap.Events)).
			Msg("session saved")
	}
	return err
}

func (o *observed) Load(ctx context.Context) (*Snapshot, error) {
	snap, err := o.Store.Load(ctx)
	if errors.Is(err, ErrNoSave) {
		// An empty slot is an answer, not a failure
		o.record("load", nil)
		return nil, err
	}
	o.record("load", err)
	return snap, err
}

func (o *observed) Delete(ctx context.Context) error {
	err := o.Store.Delete(ctx)
	o.record("delete", err)
	return err
}

func (o *observed) record(op string, err error) {
	metrics.RecordSave(o.backend, op, err)
	if err != nil {
		o.log.Error().Err(err).Str("backend", o.backend).Str("op", op).Msg("save operation failed")
	}
}
