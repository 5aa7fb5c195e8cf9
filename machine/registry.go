package machine

// Machine names known to the event engine
const (
	Hole        = "hole"
	Generator   = "generator"
	OxygenPlant = "oxygen-plant"
)

// Setter is the single capability the event engine needs from the machine subsystem
// Total: unknown names are ignored, no acknowledgement or rollback
type Setter interface {
	SetState(name string, s State)
}

// Machine is a named outpost subsystem
type Machine struct {
	Name  string `yaml:"name" json:"name"`
	State State  `yaml:"state" json:"state"`
}

// Registry holds machines in a fixed order
type Registry struct {
	machines []Machine
}

// NewRegistry copies the given machines into a registry
func NewRegistry(machines ...Machine) *Registry {
	r := &Registry{machines: make([]Machine, len(machines))}
	copy(r.machines, machines)
	return r
}

// Default returns the outpost layout with every machine running
func Default() *Registry {
	return NewRegistry(
		Machine{Name: Hole, State: Running},
		Machine{Name: Generator, State: Running},
		Machine{Name: OxygenPlant, State: Running},
	)
}

// SetState updates every machine with a matching name
func (r *Registry) SetState(name string, s State) {
	for i := range r.machines {
		if r.machines[i].Name == name {
			r.machines[i].State = s
		}
	}
}

// Get returns the first machine with the given name
func (r *Registry) Get(name string) (Machine, bool) {
	for _, m := range r.machines {
		if m.Name == name {
			return m, true
		}
	}
	return Machine{}, false
}

// All returns a copy of the machines in registry order
func (r *Registry) All() []Machine {
	out := make([]Machine, len(r.machines))
	copy(out, r.machines)
	return out
}

// Len returns the number of machines
func (r *Registry) Len() int {
	return len(r.machines)
}
