package event

import (
	"fmt"

	"github.com/lixenwraith/outpost/machine"
	"github.com/lixenwraith/outpost/resource"
	"github.com/lixenwraith/outpost/screen"
)

// Effect type tags used in Record
const (
	EffectResource = "resource"
	EffectMachine  = "machine"
)

// Record is the flat, serializable form of an Event
type Record struct {
	Kind      Kind             `yaml:"kind" json:"kind"`
	Name      string           `yaml:"name" json:"name"`
	InfoText  string           `yaml:"info_text" json:"info_text"`
	Effect    string           `yaml:"effect" json:"effect"`
	Delta     resource.Delta   `yaml:"delta,omitempty" json:"delta"`
	Machine   string           `yaml:"machine,omitempty" json:"machine,omitempty"`
	State     machine.State    `yaml:"state,omitempty" json:"state,omitempty"`
	Remaining int              `yaml:"remaining" json:"remaining"`
	Popup     screen.PopupKind `yaml:"popup" json:"popup"`
	Message   string           `yaml:"message" json:"message"`
	Restore   RestorePolicy    `yaml:"restore" json:"restore"`
}

// Record flattens the event for persistence
func (e *Event) Record() (Record, error) {
	r := Record{
		Kind:      e.Kind,
		Name:      e.Name,
		InfoText:  e.InfoText,
		Remaining: e.Remaining,
		Popup:     e.Popup,
		Message:   e.Message,
		Restore:   e.Restore,
	}
	switch eff := e.Effect.(type) {
	case ResourceEffect:
		r.Effect = EffectResource
		r.Delta = eff.Delta
	case MachineEffect:
		r.Effect = EffectMachine
		r.Machine = eff.Machine
		r.State = eff.State
	default:
		return Record{}, fmt.Errorf("event: record %s: unsupported effect %T", e.Kind, e.Effect)
	}
	return r, nil
}

// FromRecord rebuilds an event from its persisted form
func FromRecord(r Record) (*Event, error) {
	if r.Kind < 0 || int(r.Kind) >= len(kindNames) {
		return nil, fmt.Errorf("event: restore record: invalid kind %d", int(r.Kind))
	}
	e := &Event{
		Kind:      r.Kind,
		Name:      r.Name,
		InfoText:  r.InfoText,
		Remaining: r.Remaining,
		Popup:     r.Popup,
		Message:   r.Message,
		Restore:   r.Restore,
	}
	switch r.Effect {
	case EffectResource:
		e.Effect = ResourceEffect{Delta: r.Delta}
	case EffectMachine:
		e.Effect = MachineEffect{Machine: r.Machine, State: r.State}
	default:
		return nil, fmt.Errorf("event: restore record %s: unknown effect %q", r.Kind, r.Effect)
	}
	return e, nil
}

// Records flattens every event in the set, in order
func (s *Set) Records() ([]Record, error) {
	out := make([]Record, 0, len(s.events))
	for _, e := range s.events {
		r, err := e.Record()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// SetFromRecords rebuilds a set from persisted records, preserving order
func SetFromRecords(records []Record) (*Set, error) {
	s := NewSet()
	for _, r := range records {
		e, err := FromRecord(r)
		if err != nil {
			return nil, err
		}
		s.Push(e)
	}
	return s, nil
}
