// Package ui holds the non-game screens: main menu, information screens and the death screen
package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/outpost/game"
	"github.com/lixenwraith/outpost/save"
	"github.com/lixenwraith/outpost/screen"
)

// Message is what a menu button does when pressed
type Message int

const (
	MsgResume Message = iota
	MsgNewGame
	MsgExit
)

func (m Message) String() string {
	switch m {
	case MsgResume:
		return "resume"
	case MsgNewGame:
		return "new-game"
	default:
		return "exit"
	}
}

// ResumeWarning is shown when there is nothing to resume
const ResumeWarning = "No saved game found"

// Launcher creates and restores sessions, implemented by *game.Factory
type Launcher interface {
	New() *game.Session
	Resume(ctx context.Context) (*game.Session, error)
	Reset(ctx context.Context) error
}

type button struct {
	label string
	key   rune
	msg   Message
}

// MainMenu is the root screen
// Buttons post their Message to an internal queue that Update drains one at a time
type MainMenu struct {
	buttons  []button
	selected int
	inbox    chan Message
	tx       *screen.Sender
	games    Launcher
	log      zerolog.Logger
}

// NewMainMenu creates the menu; the sender is wired by the stack
func NewMainMenu(games Launcher, log zerolog.Logger) *MainMenu {
	return &MainMenu{
		buttons: []button{
			{label: "Resume", key: 'r', msg: MsgResume},
			{label: "New game", key: 'n', msg: MsgNewGame},
			{label: "Exit", key: 'q', msg: MsgExit},
		},
		inbox: make(chan Message, 8),
		games: games,
		log:   log,
	}
}

func (m *MainMenu) SetSender(tx *screen.Sender) {
	m.tx = tx
}

// Selected returns the highlighted button's message
func (m *MainMenu) Selected() Message {
	return m.buttons[m.selected].msg
}

// Press queues msg as if its button was activated
func (m *MainMenu) Press(msg Message) {
	select {
	case m.inbox <- msg:
	default:
		// Input faster than ticks; drop the extra press
	}
}

func (m *MainMenu) Update(ctx *screen.Context) (screen.Command, error) {
	for _, ev := range ctx.Keys {
		m.handleKey(ev)
	}

	select {
	case msg := <-m.inbox:
		return m.handle(msg)
	default:
		return screen.None{}, nil
	}
}

func (m *MainMenu) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		m.selected = (m.selected + len(m.buttons) - 1) % len(m.buttons)
	case tcell.KeyDown, tcell.KeyTab:
		m.selected = (m.selected + 1) % len(m.buttons)
	case tcell.KeyEnter:
		m.Press(m.buttons[m.selected].msg)
	case tcell.KeyRune:
		for i, b := range m.buttons {
			if ev.Rune() == b.key {
				m.selected = i
				m.Press(b.msg)
			}
		}
	}
}

func (m *MainMenu) handle(msg Message) (screen.Command, error) {
	m.log.Debug().Stringer("button", msg).Msg("menu button pressed")
	ctx := context.Background()

	switch msg {
	case MsgExit:
		return screen.Pop{}, nil

	case MsgNewGame:
		if err := m.games.Reset(ctx); err != nil {
			return nil, fmt.Errorf("ui: delete saves: %w", err)
		}
		intro := NewIntroScreen(m.games.New())
		if err := m.tx.Send(screen.Push{Screen: intro}); err != nil {
			return nil, err
		}

	case MsgResume:
		session, err := m.games.Resume(ctx)
		switch {
		case errors.Is(err, save.ErrNoSave):
			return screen.None{}, m.tx.Send(screen.ShowPopup{Popup: screen.Warning(ResumeWarning)})
		case err != nil:
			m.log.Error().Err(err).Msg("resume failed")
			return screen.None{}, m.tx.Send(screen.ShowPopup{Popup: screen.ErrorPopup("Saved game is unreadable")})
		}
		if err := m.tx.Send(screen.Push{Screen: session}); err != nil {
			return nil, err
		}
	}
	return screen.None{}, nil
}

var (
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed).Bold(true)
	styleButton   = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	styleHint     = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

func (m *MainMenu) Draw(ctx *screen.Context) {
	if ctx.Canvas == nil {
		return
	}
	top := ctx.Height/2 - len(m.buttons) - 2
	if top < 0 {
		top = 0
	}
	screen.Center(ctx.Canvas, ctx.Width, top, styleTitle, "O U T P O S T")

	for i, b := range m.buttons {
		style := styleButton
		if i == m.selected {
			style = styleSelected
		}
		screen.Center(ctx.Canvas, ctx.Width, top+2+i*2, style, fmt.Sprintf("  [%c] %-10s", b.key, b.label))
	}
	screen.Center(ctx.Canvas, ctx.Width, top+3+len(m.buttons)*2, styleHint, "arrows + enter, or press the bracketed key")
}
