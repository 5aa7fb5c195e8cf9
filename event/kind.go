package event

import "fmt"

// Kind identifies an event type; it replaces name-string dispatch
type Kind int

const (
	KindCometImpact Kind = iota
	KindNASAInfo
	KindSandstorm
	KindPowerOutage
	KindMarsInfo
)

var kindNames = [...]string{
	KindCometImpact: "comet-impact",
	KindNASAInfo:    "nasa-info",
	KindSandstorm:   "sandstorm",
	KindPowerOutage: "power-outage",
	KindMarsInfo:    "mars-info",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("event: invalid kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, n := range kindNames {
		if n == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("event: unknown kind %q", string(b))
}

// RestorePolicy decides what happens to an event's effect when it expires
type RestorePolicy int

const (
	// RestoreOnExpiry reverses the effect when the event leaves the active set
	RestoreOnExpiry RestorePolicy = iota
	// NoRestore leaves the effect in place after expiry
	NoRestore
)

func (p RestorePolicy) String() string {
	if p == NoRestore {
		return "none"
	}
	return "on-expiry"
}

func (p RestorePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *RestorePolicy) UnmarshalText(b []byte) error {
	switch string(b) {
	case "on-expiry", "":
		*p = RestoreOnExpiry
	case "none":
		*p = NoRestore
	default:
		return fmt.Errorf("event: unknown restore policy %q", string(b))
	}
	return nil
}
