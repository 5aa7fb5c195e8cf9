package screen

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrEmpty signals that the last screen was popped and the host should stop
var ErrEmpty = errors.New("screen: stack empty")

// ActivePopup is a popup currently overlaid, with its remaining lifetime in ticks
type ActivePopup struct {
	Popup     Popup
	Remaining int
}

// Stack owns the visible screen order and the receiving end of the command channel
// Single-threaded: Update and Draw must be called from the host loop only
type Stack struct {
	screens []Screen
	popups  []ActivePopup

	tx *Sender
	rx *Receiver

	ticksPerSecond int

	onPopup func(Popup)
	onDepth func(int)
	log     zerolog.Logger
}

// Option configures a Stack
type Option func(*Stack)

// WithPopupHook registers a callback invoked once per popup shown
func WithPopupHook(fn func(Popup)) Option {
	return func(s *Stack) { s.onPopup = fn }
}

// WithDepthHook registers a callback invoked whenever the stack depth changes
func WithDepthHook(fn func(int)) Option {
	return func(s *Stack) { s.onDepth = fn }
}

// WithLogger sets the stack logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Stack) { s.log = l }
}

// NewStack creates a host with root as the only screen
func NewStack(root Screen, ticksPerSecond int, opts ...Option) *Stack {
	if ticksPerSecond <= 0 {
		ticksPerSecond = 1
	}
	tx, rx := NewChannel()
	s := &Stack{
		tx:             tx,
		rx:             rx,
		ticksPerSecond: ticksPerSecond,
		log:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.push(root)
	return s
}

// Sender returns the producer end handed to screens
func (s *Stack) Sender() *Sender {
	return s.tx
}

// Top returns the current screen or nil
func (s *Stack) Top() Screen {
	if len(s.screens) == 0 {
		return nil
	}
	return s.screens[len(s.screens)-1]
}

// Depth returns the number of stacked screens
func (s *Stack) Depth() int {
	return len(s.screens)
}

// Popups returns the visible popups, oldest first
func (s *Stack) Popups() []ActivePopup {
	out := make([]ActivePopup, len(s.popups))
	copy(out, s.popups)
	return out
}

// Update runs one tick: age popups, update the top screen, apply its command,
// then apply queued commands in send order
func (s *Stack) Update(ctx *Context) error {
	s.agePopups()

	top := s.Top()
	if top == nil {
		return ErrEmpty
	}

	cmd, err := top.Update(ctx)
	if err != nil {
		return fmt.Errorf("screen: update: %w", err)
	}
	s.apply(cmd)

	for _, queued := range s.rx.Drain() {
		s.apply(queued)
	}

	if len(s.screens) == 0 {
		return ErrEmpty
	}
	return nil
}

// Draw renders the top screen followed by the popup overlay
func (s *Stack) Draw(ctx *Context) {
	top := s.Top()
	if top == nil {
		return
	}
	top.Draw(ctx)
	if ctx.Canvas != nil {
		drawPopups(ctx, s.popups)
	}
}

// Close shuts the receiver so late senders fail fast
func (s *Stack) Close() {
	s.rx.Close()
}

func (s *Stack) apply(cmd Command) {
	switch c := cmd.(type) {
	case nil, None:
	case Push:
		if c.Screen == nil {
			s.log.Warn().Msg("push of nil screen ignored")
			return
		}
		s.push(c.Screen)
	case Pop:
		if len(s.screens) == 0 {
			return
		}
		s.screens[len(s.screens)-1] = nil
		s.screens = s.screens[:len(s.screens)-1]
		s.log.Debug().Int("depth", len(s.screens)).Msg("screen popped")
		s.depthChanged()
	case ShowPopup:
		ticks := int(c.Popup.Duration.Seconds() * float64(s.ticksPerSecond))
		if ticks <= 0 {
			ticks = 1
		}
		s.popups = append(s.popups, ActivePopup{Popup: c.Popup, Remaining: ticks})
		s.log.Debug().
			Str("kind", c.Popup.Kind.String()).
			Str("message", c.Popup.Message).
			Msg("popup shown")
		if s.onPopup != nil {
			s.onPopup(c.Popup)
		}
	default:
		s.log.Warn().Str("type", fmt.Sprintf("%T", cmd)).Msg("unknown command ignored")
	}
}

func (s *Stack) push(scr Screen) {
	scr.SetSender(s.tx)
	s.screens = append(s.screens, scr)
	s.log.Debug().Int("depth", len(s.screens)).Str("screen", fmt.Sprintf("%T", scr)).Msg("screen pushed")
	s.depthChanged()
}

func (s *Stack) depthChanged() {
	if s.onDepth != nil {
		s.onDepth(len(s.screens))
	}
}

func (s *Stack) agePopups() {
	kept := s.popups[:0]
	for _, p := range s.popups {
		p.Remaining--
		if p.Remaining > 0 {
			kept = append(kept, p)
		}
	}
	s.popups = kept
}
