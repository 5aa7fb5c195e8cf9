// Package machine exposes the outpost machines to the simulation core
// Only the state flip is modelled; per-machine puzzle logic lives elsewhere
package machine

import "fmt"

// State is the operating state of a machine
type State int

const (
	Running State = iota
	Idle
	Broken
)

var stateNames = [...]string{
	Running: "running",
	Idle:    "idle",
	Broken:  "broken",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// ParseState resolves a state by its String name
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return Running, fmt.Errorf("machine: unknown state %q", name)
}

// MarshalText encodes the state by name for YAML, JSON and SQL text columns
func (s State) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(stateNames) {
		return nil, fmt.Errorf("machine: invalid state %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

func (s *State) UnmarshalText(b []byte) error {
	v, err := ParseState(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
