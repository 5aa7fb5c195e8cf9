package event

// Set is the ordered collection of active events owned by a session
// Insertion order is the only ordering; there is no priority
type Set struct {
	events []*Event
}

// NewSet creates a set holding events in the given order
func NewSet(events ...*Event) *Set {
	s := &Set{events: make([]*Event, 0, len(events))}
	s.events = append(s.events, events...)
	return s
}

func (s *Set) Push(e *Event) {
	s.events = append(s.events, e)
}

func (s *Set) Len() int {
	return len(s.events)
}

// All returns the events in insertion order; the slice is a copy, the events are shared
func (s *Set) All() []*Event {
	out := make([]*Event, len(s.events))
	copy(out, s.events)
	return out
}

// Has reports whether an event of kind k is active
func (s *Set) Has(k Kind) bool {
	for _, e := range s.events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// Retain keeps events for which keep returns true and returns the removed ones
func (s *Set) Retain(keep func(*Event) bool) []*Event {
	var removed []*Event
	kept := s.events[:0]
	for _, e := range s.events {
		if keep(e) {
			kept = append(kept, e)
		} else {
			removed = append(removed, e)
		}
	}
	for i := len(kept); i < len(s.events); i++ {
		s.events[i] = nil
	}
	s.events = kept
	return removed
}

// Age subtracts ticks from every event's remaining duration
func (s *Set) Age(ticks int) {
	for _, e := range s.events {
		e.Remaining -= ticks
	}
}
