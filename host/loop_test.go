package host

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/lixenwraith/outpost/screen"
)

// quitScreen pops itself when q is typed
type quitScreen struct {
	updates int
	ticks   []uint64
	err     error
}

func (q *quitScreen) Update(ctx *screen.Context) (screen.Command, error) {
	q.updates++
	q.ticks = append(q.ticks, ctx.Tick)
	if q.err != nil {
		return nil, q.err
	}
	if ctx.PressedRune('q') {
		return screen.Pop{}, nil
	}
	return screen.None{}, nil
}

func (q *quitScreen) Draw(ctx *screen.Context) {
	screen.DrawText(ctx.Canvas, 0, 0, tcell.StyleDefault, "running")
}

func (q *quitScreen) SetSender(*screen.Sender) {}

func newSim(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, sim.Init())
	sim.SetSize(40, 12)
	return sim
}

func runLoop(t *testing.T, l *Loop, ctx context.Context) error {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()
	select {
	case err := <-errc:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not exit")
		return nil
	}
}

func TestLoopExitsWhenStackEmpties(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sim := newSim(t)
	root := &quitScreen{}
	stack := screen.NewStack(root, 1000)
	l := New(stack, sim, 1000, zerolog.Nop())

	var hooked int
	l.OnTick(func(tick uint64, top screen.Screen) {
		hooked++
		assert.Same(t, root, top)
	})

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	require.NoError(t, runLoop(t, l, context.Background()))
	sim.Fini()

	assert.GreaterOrEqual(t, root.updates, 1)
	assert.Equal(t, uint64(root.updates), l.Tick())
	for i, tick := range root.ticks {
		assert.Equal(t, uint64(i+1), tick, "ticks are consecutive from 1")
	}
	assert.Equal(t, root.updates-1, hooked, "hook skipped on the exiting tick")
}

func TestLoopCtrlC(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sim := newSim(t)
	l := New(screen.NewStack(&quitScreen{}, 100), sim, 100, zerolog.Nop())

	sim.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	require.NoError(t, runLoop(t, l, context.Background()))
	sim.Fini()
}

func TestLoopCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sim := newSim(t)
	root := &quitScreen{}
	l := New(screen.NewStack(root, 200), sim, 200, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, runLoop(t, l, ctx))
	sim.Fini()

	assert.Positive(t, root.updates)
}

func TestLoopUpdateError(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	sim := newSim(t)
	boom := errors.New("boom")
	l := New(screen.NewStack(&quitScreen{err: boom}, 100), sim, 100, zerolog.Nop())

	err := runLoop(t, l, context.Background())
	sim.Fini()

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(1), l.Tick())
}

func TestLoopDrawsTopScreen(t *testing.T) {
	sim := newSim(t)
	defer sim.Fini()
	l := New(screen.NewStack(&quitScreen{}, 60), sim, 60, zerolog.Nop())

	stop, err := l.step()
	require.NoError(t, err)
	assert.False(t, stop)

	cells, width, _ := sim.GetContents()
	var row []rune
	for x := 0; x < len("running"); x++ {
		row = append(row, cells[x].Runes...)
	}
	assert.Equal(t, "running", string(row))
	assert.Equal(t, 40, width)
}

func TestNewDefaultsTickRate(t *testing.T) {
	l := New(nil, nil, 0, zerolog.Nop())
	assert.Equal(t, 60, l.tps)
}
