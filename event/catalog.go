package event

import (
	"github.com/lixenwraith/outpost/machine"
	"github.com/lixenwraith/outpost/resource"
	"github.com/lixenwraith/outpost/screen"
)

// Source is a bounded random integer generator
type Source interface {
	// IntN returns a value in [0, n)
	IntN(n int) int
}

// Event identities: stable name and info text
var (
	CometImpact = [2]string{"comet-impact", "A comet fragment struck the outpost and tore open the hull"}
	NASAInfo    = [2]string{"nasa-info", "Transmission from mission control"}
	Sandstorm   = [2]string{"sandstorm", "Dust clogs the filters and covers the solar panels"}
	PowerOutage = [2]string{"power-outage", "The generator tripped and the outpost runs on reserves"}
	MarsInfo    = [2]string{"mars-info", "Field notes about the planet"}
)

// Resource deltas per event, subtracted on apply
var (
	SandstormDelta = resource.Delta{Oxygen: 5, Energy: 5}
	NoChange       = resource.Delta{}
)

var warnings = [...]string{
	"Comet impact! The hull has been breached, seal the hole",
	"Power outage! The generator needs to be restarted",
	"Sandstorm! Oxygen and energy production are reduced",
}

var nasaInfo = [...]string{
	"NASA: the next supply drop is scheduled for the coming sol",
	"NASA: keep oxygen reserves above a quarter at all times",
	"NASA: solar activity is elevated, expect sensor noise",
	"NASA: the rover team reports stable ground conditions",
}

var marsInfo = [...]string{
	"Mars: a sol lasts 24 hours and 39 minutes",
	"Mars: surface gravity is about 38 percent of Earth's",
	"Mars: Olympus Mons is the tallest volcano in the solar system",
	"Mars: the atmosphere is mostly carbon dioxide",
	"Mars: dust storms can cover the whole planet for weeks",
}

// Draw values that map to an event; every other draw yields nothing
const (
	DrawCometImpact = 0
	DrawNASAInfo    = 11
	DrawSandstorm   = 22
	DrawPowerOutage = 33
	DrawMarsInfo    = 44
)

// Catalog maps random draws to concrete events
// Generation is a pure function of the draws it consumes
type Catalog struct {
	DurationSeconds int
	TicksPerSecond  int
}

// Generate returns the event for draw, or nil when the draw maps to nothing
// Information events consume one extra draw from rng to select their message
func (c Catalog) Generate(draw int, rng Source) *Event {
	switch draw {
	case DrawCometImpact:
		return New(KindCometImpact, CometImpact, warnings[0], screen.PopupWarning,
			MachineEffect{Machine: machine.Hole, State: machine.Idle},
			c.DurationSeconds, c.TicksPerSecond, NoRestore)
	case DrawNASAInfo:
		return New(KindNASAInfo, NASAInfo, nasaInfo[rng.IntN(len(nasaInfo))], screen.PopupNASA,
			ResourceEffect{Delta: NoChange},
			c.DurationSeconds, c.TicksPerSecond, RestoreOnExpiry)
	case DrawSandstorm:
		return New(KindSandstorm, Sandstorm, warnings[2], screen.PopupWarning,
			ResourceEffect{Delta: SandstormDelta},
			c.DurationSeconds, c.TicksPerSecond, RestoreOnExpiry)
	case DrawPowerOutage:
		return New(KindPowerOutage, PowerOutage, warnings[1], screen.PopupWarning,
			MachineEffect{Machine: machine.Generator, State: machine.Broken},
			c.DurationSeconds, c.TicksPerSecond, NoRestore)
	case DrawMarsInfo:
		return New(KindMarsInfo, MarsInfo, marsInfo[rng.IntN(len(marsInfo))], screen.PopupMars,
			ResourceEffect{Delta: NoChange},
			c.DurationSeconds, c.TicksPerSecond, RestoreOnExpiry)
	default:
		return nil
	}
}
