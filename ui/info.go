package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/outpost/screen"
)

var introText = []string{
	"Sol 1. The supply ship is gone and you are alone on Mars.",
	"Keep the oxygen plant and the generator alive.",
	"Sandstorms, comets and outages will not wait for you.",
	"",
	"Move with WASD or arrows, press Esc to save and return to the menu.",
}

// InfoScreen shows text until the player continues
// On continue it replaces itself with next, or just closes when next is nil
type InfoScreen struct {
	title string
	lines []string
	next  screen.Screen
	tx    *screen.Sender
	done  bool
}

func NewInfoScreen(title string, lines []string, next screen.Screen) *InfoScreen {
	return &InfoScreen{title: title, lines: lines, next: next}
}

// NewIntroScreen is the briefing shown before a new game
func NewIntroScreen(next screen.Screen) *InfoScreen {
	return NewInfoScreen("Mission briefing", introText, next)
}

func (s *InfoScreen) SetSender(tx *screen.Sender) {
	s.tx = tx
}

func (s *InfoScreen) Update(ctx *screen.Context) (screen.Command, error) {
	if s.done || !(ctx.Pressed(tcell.KeyEnter) || ctx.PressedRune(' ')) {
		return screen.None{}, nil
	}
	s.done = true

	// Two effects, queued in order: the returned command carries only one
	if err := s.tx.Send(screen.Pop{}); err != nil {
		return nil, err
	}
	if s.next != nil {
		if err := s.tx.Send(screen.Push{Screen: s.next}); err != nil {
			return nil, err
		}
	}
	return screen.None{}, nil
}

func (s *InfoScreen) Draw(ctx *screen.Context) {
	if ctx.Canvas == nil {
		return
	}
	y := ctx.Height/2 - len(s.lines)/2 - 2
	if y < 0 {
		y = 0
	}
	screen.Center(ctx.Canvas, ctx.Width, y, styleTitle, s.title)
	y += 2
	for _, line := range s.lines {
		screen.Center(ctx.Canvas, ctx.Width, y, styleButton, line)
		y++
	}
	screen.Center(ctx.Canvas, ctx.Width, y+1, styleHint, "Press Enter to continue")
}
