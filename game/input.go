package game

import (
	"github.com/gdamore/tcell/v2"
)

// handleKey moves the player one cell per key press, clamped to the floor
func (s *Session) handleKey(ev *tcell.EventKey) {
	dx, dy := 0, 0
	switch ev.Key() {
	case tcell.KeyUp:
		dy = -1
	case tcell.KeyDown:
		dy = 1
	case tcell.KeyLeft:
		dx = -1
	case tcell.KeyRight:
		dx = 1
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'k':
			dy = -1
		case 's', 'j':
			dy = 1
		case 'a', 'h':
			dx = -1
		case 'd', 'l':
			dx = 1
		}
	}
	s.Player.X = clampInt(s.Player.X+dx, 0, s.cfg.FloorWidth-1)
	s.Player.Y = clampInt(s.Player.Y+dy, 0, s.cfg.FloorHeight-1)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
