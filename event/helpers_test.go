package event

import (
	"github.com/lixenwraith/outpost/machine"
	"github.com/lixenwraith/outpost/resource"
	"github.com/lixenwraith/outpost/screen"
)

// fakeTarget records accumulator changes and machine flips
type fakeTarget struct {
	change   resource.Delta
	machines *machine.Registry
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{machines: machine.Default()}
}

func (f *fakeTarget) AdjustChange(d resource.Delta) {
	f.change = f.change.Add(d)
}

func (f *fakeTarget) SetState(name string, s machine.State) {
	f.machines.SetState(name, s)
}

func (f *fakeTarget) state(name string) machine.State {
	m, _ := f.machines.Get(name)
	return m.State
}

// scriptedSource replays fixed draws, then yields fallback
type scriptedSource struct {
	draws    []int
	fallback int
	calls    []int
}

func (s *scriptedSource) IntN(n int) int {
	s.calls = append(s.calls, n)
	if len(s.draws) == 0 {
		return s.fallback % n
	}
	d := s.draws[0]
	s.draws = s.draws[1:]
	return d
}

// failingNotifier rejects every command
type failingNotifier struct{}

func (failingNotifier) Send(screen.Command) error { return screen.ErrReceiverClosed }

func popups(rx *screen.Receiver) []screen.Popup {
	var out []screen.Popup
	for _, cmd := range rx.Drain() {
		if p, ok := cmd.(screen.ShowPopup); ok {
			out = append(out, p.Popup)
		}
	}
	return out
}
