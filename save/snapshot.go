// Package save persists a running session so it can be resumed later
//
// A single save slot exists per store. Backends: YAML file (atomic replace), SQLite and memory.
package save

import (
	"context"
	"errors"
	"time"

	"github.com/lixenwraith/outpost/event"
	"github.com/lixenwraith/outpost/machine"
	"github.com/lixenwraith/outpost/resource"
)

// ErrNoSave is returned by Load when the slot is empty
var ErrNoSave = errors.New("save: no saved game")

// Position is a cell on the outpost floor
type Position struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// Snapshot is everything needed to resume a session exactly
type Snapshot struct {
	ID        string            `yaml:"id" json:"id"`
	SavedAt   time.Time         `yaml:"saved_at" json:"saved_at"`
	Tick      uint64            `yaml:"tick" json:"tick"`
	Levels    resource.Levels   `yaml:"levels" json:"levels"`
	Change    resource.Delta    `yaml:"change" json:"change"`
	Player    Position          `yaml:"player" json:"player"`
	Events    []event.Record    `yaml:"events" json:"events"`
	Machines  []machine.Machine `yaml:"machines" json:"machines"`
	Inventory []resource.Item   `yaml:"inventory" json:"inventory"`
}

// Clone returns a deep copy
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.Events = append([]event.Record(nil), s.Events...)
	c.Machines = append([]machine.Machine(nil), s.Machines...)
	c.Inventory = append([]resource.Item(nil), s.Inventory...)
	return &c
}

// Store is the persistence collaborator of a session
type Store interface {
	// Save replaces the slot content
	Save(ctx context.Context, snap *Snapshot) error

	// Load returns the slot content or ErrNoSave
	Load(ctx context.Context) (*Snapshot, error)

	// Delete empties the slot; deleting an empty slot is not an error
	Delete(ctx context.Context) error

	Close() error
}
