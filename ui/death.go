package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/outpost/resource"
	"github.com/lixenwraith/outpost/screen"
)

var deathMessages = map[resource.DeathCause]string{
	resource.CauseOxygen: "You ran out of oxygen and suffocated.",
	resource.CauseEnergy: "The power died and the cold took you.",
	resource.CauseBoth:   "Without air or power, the outpost fell silent.",
	resource.CauseNone:   "Your wounds were too severe.",
}

var styleDeath = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed)

// DeathScreen tells the player why the run ended
type DeathScreen struct {
	cause resource.DeathCause
}

// NewDeathScreen matches game.DeathFactory
func NewDeathScreen(cause resource.DeathCause) screen.Screen {
	return &DeathScreen{cause: cause}
}

// Message returns the text shown for the cause
func (d *DeathScreen) Message() string {
	if msg, ok := deathMessages[d.cause]; ok {
		return msg
	}
	return deathMessages[resource.CauseNone]
}

func (d *DeathScreen) SetSender(*screen.Sender) {}

func (d *DeathScreen) Update(ctx *screen.Context) (screen.Command, error) {
	if ctx.Pressed(tcell.KeyEscape) {
		return screen.Pop{}, nil
	}
	return screen.None{}, nil
}

func (d *DeathScreen) Draw(ctx *screen.Context) {
	if ctx.Canvas == nil {
		return
	}
	for y := 0; y < ctx.Height; y++ {
		screen.FillRow(ctx.Canvas, ctx.Width, y, styleDeath)
	}
	mid := ctx.Height / 2
	screen.Center(ctx.Canvas, ctx.Width, mid-1, styleDeath.Bold(true), d.Message())
	screen.Center(ctx.Canvas, ctx.Width, mid+1, styleDeath, "Press ESC to return to the menu")
}
