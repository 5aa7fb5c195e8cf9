package screen

import (
	"github.com/gdamore/tcell/v2"
)

// DrawText writes text at (x, y) without wrapping and returns the column after it
func DrawText(canvas tcell.Screen, x, y int, style tcell.Style, text string) int {
	if canvas == nil {
		return x
	}
	for _, r := range text {
		canvas.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// Center writes text horizontally centred on row y
func Center(canvas tcell.Screen, width, y int, style tcell.Style, text string) {
	x := (width - len([]rune(text))) / 2
	if x < 0 {
		x = 0
	}
	DrawText(canvas, x, y, style, text)
}

// FillRow paints a full row in style
func FillRow(canvas tcell.Screen, width, y int, style tcell.Style) {
	if canvas == nil {
		return
	}
	for x := 0; x < width; x++ {
		canvas.SetContent(x, y, ' ', nil, style)
	}
}

const popupWidth = 44

// drawPopups stacks popups in the top-right corner, newest at the bottom
func drawPopups(ctx *Context, popups []ActivePopup) {
	x := ctx.Width - popupWidth - 1
	if x < 0 {
		x = 0
	}
	y := 1
	for _, p := range popups {
		style := p.Popup.Kind.Style()
		for row := 0; row < 3; row++ {
			for col := 0; col < popupWidth; col++ {
				ctx.Canvas.SetContent(x+col, y+row, ' ', nil, style)
			}
		}
		DrawText(ctx.Canvas, x+1, y, style.Bold(true), truncate(p.Popup.Title, popupWidth-2))
		DrawText(ctx.Canvas, x+1, y+1, style, truncate(p.Popup.Message, popupWidth-2))
		y += 4
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
