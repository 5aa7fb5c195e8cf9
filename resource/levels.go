package resource

// DeathCause names the depleted resource that ended a run
type DeathCause int

const (
	CauseNone DeathCause = iota
	CauseBoth
	CauseOxygen
	CauseEnergy
)

func (c DeathCause) String() string {
	switch c {
	case CauseBoth:
		return "both"
	case CauseOxygen:
		return "oxygen"
	case CauseEnergy:
		return "energy"
	default:
		return "none"
	}
}

// CauseOf derives the death cause from current levels
// Only oxygen and energy are inspected; life is the consequence, not a cause
func CauseOf(l Levels) DeathCause {
	switch {
	case l.Oxygen == 0 && l.Energy == 0:
		return CauseBoth
	case l.Oxygen == 0:
		return CauseOxygen
	case l.Energy == 0:
		return CauseEnergy
	default:
		return CauseNone
	}
}

// Apply adds d to l and clamps every component into [0, max]
// Levels never go negative; the delta accumulator itself is never clamped
func Apply(l Levels, d Delta, max uint16) Levels {
	return Levels{
		Oxygen: clamp(int32(l.Oxygen)+int32(d.Oxygen), max),
		Energy: clamp(int32(l.Energy)+int32(d.Energy), max),
		Life:   clamp(int32(l.Life)+int32(d.Life), max),
	}
}

func clamp(v int32, max uint16) uint16 {
	if v < 0 {
		return 0
	}
	if v > int32(max) {
		return max
	}
	return uint16(v)
}
