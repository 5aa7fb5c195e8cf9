// Package event implements timed perturbations of the outpost and their scheduler
//
// An Event carries exactly one Effect: a resource delta applied to the session's
// change accumulator, or a machine state flip. Events live in a Set owned by the
// session; the Scheduler ages them on a fixed tick cadence, expires them, and spawns
// new ones from random draws.
package event

import (
	"fmt"

	"github.com/lixenwraith/outpost/machine"
	"github.com/lixenwraith/outpost/resource"
	"github.com/lixenwraith/outpost/screen"
)

// Effect is the payload of an event; variants are ResourceEffect and MachineEffect
type Effect interface {
	effect() // sealed marker
}

// ResourceEffect subtracts Delta from the accumulator on apply, adds it back on restore
type ResourceEffect struct {
	Delta resource.Delta
}

// MachineEffect sets Machine to State on apply
type MachineEffect struct {
	Machine string
	State   machine.State
}

func (ResourceEffect) effect() {}
func (MachineEffect) effect()  {}

// Target is what an event acts upon, implemented by the running session
type Target interface {
	machine.Setter
	AdjustChange(d resource.Delta)
}

// Notifier carries popups to the screen stack, implemented by *screen.Sender
type Notifier interface {
	Send(cmd screen.Command) error
}

// Event is a timed perturbation with an activation window
type Event struct {
	Kind     Kind
	Name     string
	InfoText string
	Effect   Effect

	// Remaining counts down in ticks; the event is inactive at or below zero
	Remaining int

	Popup   screen.PopupKind
	Message string
	Restore RestorePolicy
}

// New creates an event lasting durationSeconds, stored in tick units
func New(kind Kind, identity [2]string, message string, popup screen.PopupKind, effect Effect, durationSeconds, ticksPerSecond int, restore RestorePolicy) *Event {
	return &Event{
		Kind:      kind,
		Name:      identity[0],
		InfoText:  identity[1],
		Effect:    effect,
		Remaining: durationSeconds * ticksPerSecond,
		Popup:     popup,
		Message:   message,
		Restore:   restore,
	}
}

// Active reports whether the event still counts; exactly zero is expired
func (e *Event) Active() bool {
	return e.Remaining > 0
}

// Resources returns the delta of a resource event
func (e *Event) Resources() (resource.Delta, bool) {
	if re, ok := e.Effect.(ResourceEffect); ok {
		return re.Delta, true
	}
	return resource.Delta{}, false
}

// Apply triggers the effect, or reverses it when restore is set
// Resource effects: apply subtracts the delta and sends the popup; restore adds it back silently
// Machine effects: apply sends the popup and flips the machine; restore is a no-op
// that neither notifies nor touches the machine, since machine events are NoRestore
// A failed send is returned and must be treated as fatal by the caller
func (e *Event) Apply(restore bool, target Target, out Notifier) error {
	switch eff := e.Effect.(type) {
	case MachineEffect:
		if restore {
			return nil
		}
		if err := e.notify(out); err != nil {
			return err
		}
		target.SetState(eff.Machine, eff.State)
	case ResourceEffect:
		if restore {
			target.AdjustChange(eff.Delta)
			return nil
		}
		target.AdjustChange(resource.Delta{}.Sub(eff.Delta))
		if err := e.notify(out); err != nil {
			return err
		}
	case nil:
		if restore {
			return nil
		}
		return e.notify(out)
	default:
		return fmt.Errorf("event: %s: unsupported effect %T", e.Kind, e.Effect)
	}
	return nil
}

func (e *Event) notify(out Notifier) error {
	if err := out.Send(screen.ShowPopup{Popup: screen.NewPopup(e.Popup, e.Message)}); err != nil {
		return fmt.Errorf("event: send popup for %s: %w", e.Kind, err)
	}
	return nil
}
