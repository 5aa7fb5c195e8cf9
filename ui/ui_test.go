package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/outpost/event"
	"github.com/lixenwraith/outpost/game"
	"github.com/lixenwraith/outpost/resource"
	"github.com/lixenwraith/outpost/save"
	"github.com/lixenwraith/outpost/screen"
)

func newFactory(store save.Store) *game.Factory {
	return &game.Factory{
		Config:    game.DefaultConfig(),
		Scheduler: event.DefaultConfig(),
		Source:    func() event.Source { return event.NewSource(1) },
		Store:     store,
		Death:     NewDeathScreen,
		Log:       zerolog.Nop(),
	}
}

func press(keys ...*tcell.EventKey) *screen.Context {
	return &screen.Context{Keys: keys}
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func namedKey(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestMenuExitEndsStack(t *testing.T) {
	stack := screen.NewStack(NewMainMenu(newFactory(save.NewMemoryStore()), zerolog.Nop()), 60)

	err := stack.Update(press(runeKey('q')))
	assert.ErrorIs(t, err, screen.ErrEmpty)
}

func TestMenuResumeWithoutSave(t *testing.T) {
	stack := screen.NewStack(NewMainMenu(newFactory(save.NewMemoryStore()), zerolog.Nop()), 60)

	require.NoError(t, stack.Update(press(runeKey('r'))))
	assert.Equal(t, 1, stack.Depth())

	popups := stack.Popups()
	require.Len(t, popups, 1)
	assert.Equal(t, screen.PopupWarning, popups[0].Popup.Kind)
	assert.Equal(t, ResumeWarning, popups[0].Popup.Message)
}

type brokenStore struct {
	save.MemoryStore
}

func (*brokenStore) Load(context.Context) (*save.Snapshot, error) {
	return nil, errors.New("checksum mismatch")
}

func (*brokenStore) Delete(context.Context) error {
	return errors.New("read-only filesystem")
}

func TestMenuResumeUnreadableSave(t *testing.T) {
	stack := screen.NewStack(NewMainMenu(newFactory(&brokenStore{}), zerolog.Nop()), 60)

	require.NoError(t, stack.Update(press(runeKey('r'))))
	popups := stack.Popups()
	require.Len(t, popups, 1)
	assert.Equal(t, screen.PopupError, popups[0].Popup.Kind)
}

func TestMenuNewGameResetFailure(t *testing.T) {
	stack := screen.NewStack(NewMainMenu(newFactory(&brokenStore{}), zerolog.Nop()), 60)

	err := stack.Update(press(runeKey('n')))
	assert.ErrorContains(t, err, "read-only filesystem")
}

func TestMenuNewGameFlow(t *testing.T) {
	store := save.NewMemoryStore()
	old := newFactory(store).New()
	require.NoError(t, old.Save(context.Background()))

	stack := screen.NewStack(NewMainMenu(newFactory(store), zerolog.Nop()), 60)

	require.NoError(t, stack.Update(press(runeKey('n'))))
	require.Equal(t, 2, stack.Depth())
	require.IsType(t, &InfoScreen{}, stack.Top())

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, save.ErrNoSave, "new game deletes saves")

	require.NoError(t, stack.Update(press()))
	assert.IsType(t, &InfoScreen{}, stack.Top(), "waits for enter")

	require.NoError(t, stack.Update(press(namedKey(tcell.KeyEnter))))
	assert.Equal(t, 2, stack.Depth(), "intro replaced, not stacked")
	session, ok := stack.Top().(*game.Session)
	require.True(t, ok)
	assert.NotEqual(t, old.ID, session.ID)

	require.NoError(t, stack.Update(press(namedKey(tcell.KeyEscape))))
	assert.Equal(t, 1, stack.Depth())
	assert.IsType(t, &MainMenu{}, stack.Top())
}

func TestMenuResumeFlow(t *testing.T) {
	store := save.NewMemoryStore()
	f := newFactory(store)
	saved := f.New()
	saved.Tick = 777
	require.NoError(t, saved.Save(context.Background()))

	stack := screen.NewStack(NewMainMenu(f, zerolog.Nop()), 60)
	require.NoError(t, stack.Update(press(runeKey('r'))))

	session, ok := stack.Top().(*game.Session)
	require.True(t, ok)
	assert.Equal(t, saved.ID, session.ID)
	assert.Equal(t, uint64(777), session.Tick)
}

func TestMenuArrowNavigation(t *testing.T) {
	menu := NewMainMenu(newFactory(save.NewMemoryStore()), zerolog.Nop())
	assert.Equal(t, MsgResume, menu.Selected())

	stack := screen.NewStack(menu, 60)
	require.NoError(t, stack.Update(press(namedKey(tcell.KeyUp))))
	assert.Equal(t, MsgExit, menu.Selected(), "wraps around")

	require.NoError(t, stack.Update(press(namedKey(tcell.KeyDown), namedKey(tcell.KeyDown))))
	assert.Equal(t, MsgNewGame, menu.Selected())

	require.NoError(t, stack.Update(press(namedKey(tcell.KeyEnter))))
	assert.IsType(t, &InfoScreen{}, stack.Top())
}

func TestMenuOneMessagePerTick(t *testing.T) {
	menu := NewMainMenu(newFactory(save.NewMemoryStore()), zerolog.Nop())
	stack := screen.NewStack(menu, 60)

	menu.Press(MsgResume)
	menu.Press(MsgExit)

	require.NoError(t, stack.Update(press()))
	assert.Len(t, stack.Popups(), 1)

	assert.ErrorIs(t, stack.Update(press()), screen.ErrEmpty)
}

func TestInfoScreenWithoutNext(t *testing.T) {
	root := NewInfoScreen("root", nil, nil)
	stack := screen.NewStack(root, 60)
	require.NoError(t, stack.Sender().Send(screen.Push{Screen: NewInfoScreen("note", []string{"hello"}, nil)}))
	require.NoError(t, stack.Update(press()))
	require.Equal(t, 2, stack.Depth())

	require.NoError(t, stack.Update(press(runeKey(' '))))
	assert.Equal(t, 1, stack.Depth())
	assert.Same(t, root, stack.Top())
}

func TestDeathScreen(t *testing.T) {
	tests := []struct {
		cause resource.DeathCause
		want  string
	}{
		{resource.CauseOxygen, "oxygen"},
		{resource.CauseEnergy, "power"},
		{resource.CauseBoth, "air or power"},
		{resource.CauseNone, "wounds"},
	}
	for _, tt := range tests {
		t.Run(tt.cause.String(), func(t *testing.T) {
			d := NewDeathScreen(tt.cause).(*DeathScreen)
			assert.Contains(t, d.Message(), tt.want)

			cmd, err := d.Update(press(runeKey('x')))
			require.NoError(t, err)
			assert.Equal(t, screen.None{}, cmd)

			cmd, err = d.Update(press(namedKey(tcell.KeyEscape)))
			require.NoError(t, err)
			assert.Equal(t, screen.Pop{}, cmd)
		})
	}
}

func TestScreensDraw(t *testing.T) {
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	defer sim.Fini()
	sim.SetSize(100, 30)
	ctx := &screen.Context{Canvas: sim, Width: 100, Height: 30}

	screens := map[string]screen.Screen{
		"O U T P O S T":           NewMainMenu(newFactory(nil), zerolog.Nop()),
		"Mission briefing":        NewIntroScreen(nil),
		"ran out of oxygen":       NewDeathScreen(resource.CauseOxygen),
		"Press ESC to return":     NewDeathScreen(resource.CauseBoth),
		"Press Enter to continue": NewInfoScreen("t", []string{"x"}, nil),
	}
	for want, scr := range screens {
		sim.Clear()
		scr.Draw(ctx)
		sim.Show()
		assert.Contains(t, screenText(sim), want)
	}

	NewMainMenu(newFactory(nil), zerolog.Nop()).Draw(&screen.Context{})
}

func screenText(sim tcell.SimulationScreen) string {
	cells, w, h := sim.GetContents()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := cells[y*w+x]
			if len(c.Runes) == 0 {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(c.Runes[0])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
