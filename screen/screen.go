// Package screen defines the navigation protocol between UI surfaces and their host
//
// Every visible surface implements Screen. A surface answers each Update with exactly
// one Command; additional effects are queued through the Sender handed to it by the
// host. The host (Stack) applies the returned command strictly after Update returns,
// then drains queued commands in send order.
package screen

import (
	"github.com/gdamore/tcell/v2"
)

// Command is a navigation message consumed exactly once by the Stack
// Variants: Push, Pop, ShowPopup, None
type Command interface {
	command() // sealed marker
}

// Push places Screen on top; it receives updates and draws until popped
type Push struct {
	Screen Screen
}

// Pop removes the top screen and returns control to the one beneath
type Pop struct{}

// ShowPopup overlays a notification without touching the stack order
type ShowPopup struct {
	Popup Popup
}

// None is the no-op command
type None struct{}

func (Push) command()      {}
func (Pop) command()       {}
func (ShowPopup) command() {}
func (None) command()      {}

// Context carries per-tick input and the drawing surface
type Context struct {
	Tick uint64

	// Keys pressed since the previous tick, oldest first
	Keys []*tcell.EventKey

	// Canvas is nil in headless runs
	Canvas        tcell.Screen
	Width, Height int
}

// Pressed reports whether key k arrived this tick
func (c *Context) Pressed(k tcell.Key) bool {
	for _, ev := range c.Keys {
		if ev.Key() == k {
			return true
		}
	}
	return false
}

// PressedRune reports whether rune r was typed this tick
func (c *Context) PressedRune(r rune) bool {
	for _, ev := range c.Keys {
		if ev.Key() == tcell.KeyRune && ev.Rune() == r {
			return true
		}
	}
	return false
}

// Screen is the capability every UI surface implements
type Screen interface {
	// Update advances the screen one tick and returns a single command
	Update(ctx *Context) (Command, error)

	// Draw renders the screen; must not mutate shared state
	Draw(ctx *Context)

	// SetSender wires the host channel after construction
	SetSender(tx *Sender)
}
