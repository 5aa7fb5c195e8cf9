// Package host drives the screen stack from a terminal at a fixed tick rate
package host

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/outpost/core"
	"github.com/lixenwraith/outpost/screen"
)

const eventBuffer = 256

// TickHook observes the top screen after each update, on the loop goroutine
type TickHook func(tick uint64, top screen.Screen)

// Loop owns the tick counter and feeds input to the stack
type Loop struct {
	stack  *screen.Stack
	canvas tcell.Screen
	tps    int
	log    zerolog.Logger
	hook   TickHook

	tick    uint64
	pending []*tcell.EventKey
}

// New creates a loop; canvas must already be initialized
func New(stack *screen.Stack, canvas tcell.Screen, ticksPerSecond int, log zerolog.Logger) *Loop {
	if ticksPerSecond <= 0 {
		ticksPerSecond = 60
	}
	return &Loop{stack: stack, canvas: canvas, tps: ticksPerSecond, log: log}
}

// OnTick installs a hook run after every tick
func (l *Loop) OnTick(fn TickHook) {
	l.hook = fn
}

// Tick returns the number of ticks run so far
func (l *Loop) Tick() uint64 {
	return l.tick
}

// Run ticks until the stack empties, Ctrl-C is pressed or ctx is done
// A nil return means a clean exit
func (l *Loop) Run(ctx context.Context) error {
	events := make(chan tcell.Event, eventBuffer)
	done := make(chan struct{})
	defer close(done)

	// Input polling blocks in the terminal, exits once the canvas is finalized
	core.Go(func() {
		for {
			ev := l.canvas.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	})

	ticker := time.NewTicker(time.Second / time.Duration(l.tps))
	defer ticker.Stop()

	l.log.Info().Int("tps", l.tps).Msg("loop started")
	for {
		select {
		case <-ctx.Done():
			l.log.Info().Uint64("tick", l.tick).Msg("loop cancelled")
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC {
					l.log.Info().Uint64("tick", l.tick).Msg("interrupted")
					return nil
				}
				l.pending = append(l.pending, ev)
			case *tcell.EventResize:
				l.canvas.Sync()
			}

		case <-ticker.C:
			stop, err := l.step()
			if err != nil || stop {
				return err
			}
		}
	}
}

// step runs one update and draw; stop reports an empty stack
func (l *Loop) step() (stop bool, err error) {
	l.tick++
	w, h := l.canvas.Size()
	sctx := &screen.Context{
		Tick:   l.tick,
		Keys:   l.pending,
		Canvas: l.canvas,
		Width:  w,
		Height: h,
	}
	l.pending = nil

	if err := l.stack.Update(sctx); err != nil {
		if errors.Is(err, screen.ErrEmpty) {
			l.log.Info().Uint64("tick", l.tick).Msg("stack empty, exiting")
			return true, nil
		}
		l.log.Error().Err(err).Uint64("tick", l.tick).Msg("update failed")
		return true, err
	}
	if l.hook != nil {
		l.hook(l.tick, l.stack.Top())
	}

	l.canvas.Clear()
	l.stack.Draw(sctx)
	l.canvas.Show()
	return false, nil
}
