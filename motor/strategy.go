package motor

import "github.com/go-gl/mathgl/mgl32"

// Strategy selects the collision and ground probing profile of a Motor. Both strategies share the
// same code path and differ only in the probe layout grounding falls back to when the probe straight
// below the capsule finds nothing.
type Strategy uint8

const (
	// StrategyCapsule probes a ring of four points around the capsule's axis.
	StrategyCapsule Strategy = iota
	// StrategyController only probes below the capsule's centre.
	StrategyController
)

// StrategyFromString parses a strategy name as used in settings.
func StrategyFromString(name string) (Strategy, bool) {
	switch name {
	case "capsule":
		return StrategyCapsule, true
	case "controller":
		return StrategyController, true
	}
	return 0, false
}

func (s Strategy) String() string {
	switch s {
	case StrategyCapsule:
		return "capsule"
	case StrategyController:
		return "controller"
	}
	return "unknown"
}

// ringProbes are horizontal offsets, in capsule radii, sampled by StrategyCapsule.
var ringProbes = []mgl32.Vec2{{0.9, 0}, {-0.9, 0}, {0, 0.9}, {0, -0.9}}

// FallbackProbes returns the horizontal offsets, in capsule radii, of the probes cast when the centre
// probe misses.
func (s Strategy) FallbackProbes() []mgl32.Vec2 {
	if s == StrategyCapsule {
		return ringProbes
	}
	return nil
}
