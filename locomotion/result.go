package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/motor"
)

// Outcome describes which path the simulator took for a tick.
type Outcome uint8

const (
	OutcomeMoved Outcome = iota
	OutcomeStepped
	OutcomeSlid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStepped:
		return "stepped"
	case OutcomeSlid:
		return "slid"
	}
	return "moved"
}

// Result captures the outcome of a single simulation tick.
type Result struct {
	Position mgl32.Vec3
	Yaw      float32
	Velocity mgl32.Vec3
	// Displacement is how far the body actually moved this tick.
	Displacement mgl32.Vec3

	Grounded bool
	Sliding  bool
	Flags    motor.CollisionFlags
	// Snapped is the distance the body was pulled down onto the ground. It is negative when the snap
	// lifted the body back to a skin width above the ground.
	Snapped float32

	Outcome Outcome
}
