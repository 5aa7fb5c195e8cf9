package game

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/outpost/machine"
	"github.com/lixenwraith/outpost/screen"
)

const barWidth = 20

var (
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleLabel  = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleFloor  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Draw renders the HUD and the outpost floor
func (s *Session) Draw(ctx *screen.Context) {
	c := ctx.Canvas
	if c == nil {
		return
	}

	screen.DrawText(c, 1, 0, styleText.Bold(true), fmt.Sprintf("OUTPOST  tick %d", s.Tick))

	y := 2
	y = s.drawBar(c, y, "Oxygen", s.Levels.Oxygen, tcell.ColorAqua)
	y = s.drawBar(c, y, "Energy", s.Levels.Energy, tcell.ColorYellow)
	y = s.drawBar(c, y, "Life  ", s.Levels.Life, tcell.ColorRed)

	screen.DrawText(c, 1, y, styleLabel,
		fmt.Sprintf("Change  O:%+d E:%+d L:%+d", s.Change.Oxygen, s.Change.Energy, s.Change.Life))
	y += 2

	screen.DrawText(c, 1, y, styleLabel, "Events")
	y++
	if s.Events.Len() == 0 {
		screen.DrawText(c, 3, y, styleText, "-")
		y++
	}
	tps := s.cfg.TicksPerSecond
	if tps <= 0 {
		tps = 1
	}
	for _, e := range s.Events.All() {
		secs := (e.Remaining + tps - 1) / tps
		screen.DrawText(c, 3, y, styleText, fmt.Sprintf("%-14s %3ds", e.Name, secs))
		y++
	}
	y++

	screen.DrawText(c, 1, y, styleLabel, "Machines")
	y++
	for _, m := range s.Machines.All() {
		screen.DrawText(c, 3, y, machineStyle(m.State), fmt.Sprintf("%-14s %s", m.Name, m.State))
		y++
	}
	y++

	s.drawFloor(c, 1, y)
}

func (s *Session) drawBar(c tcell.Screen, y int, label string, v uint16, color tcell.Color) int {
	max := int(s.cfg.MaxLevel)
	if max == 0 {
		max = 1
	}
	filled := int(v) * barWidth / max
	x := screen.DrawText(c, 1, y, styleLabel, label+" [")
	x = screen.DrawText(c, x, y, tcell.StyleDefault.Foreground(color), strings.Repeat("#", filled))
	x = screen.DrawText(c, x, y, styleFloor, strings.Repeat(".", barWidth-filled))
	screen.DrawText(c, x, y, styleLabel, fmt.Sprintf("] %3d", v))
	return y + 1
}

func (s *Session) drawFloor(c tcell.Screen, ox, oy int) {
	for y := 0; y < s.cfg.FloorHeight; y++ {
		for x := 0; x < s.cfg.FloorWidth; x++ {
			c.SetContent(ox+x, oy+y, '.', nil, styleFloor)
		}
	}
	c.SetContent(ox+s.Player.X, oy+s.Player.Y, '@', nil, stylePlayer)
}

func machineStyle(st machine.State) tcell.Style {
	switch st {
	case machine.Idle:
		return tcell.StyleDefault.Foreground(tcell.ColorOrange)
	case machine.Broken:
		return tcell.StyleDefault.Foreground(tcell.ColorRed)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen)
	}
}
