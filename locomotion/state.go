package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/grounding"
	"github.com/oomph-ac/locomotion/motor"
)

// MotionState is the velocity of an entity and what it collided with during the last tick.
type MotionState struct {
	// Velocity is the composed velocity the motor was asked to move by.
	Velocity mgl32.Vec3
	// HorizontalVelocity is the planar velocity integrated from input, before ground reprojection.
	HorizontalVelocity mgl32.Vec3
	VerticalVelocity   float32
	IsGrounded         bool
	CollisionFlags     motor.CollisionFlags
}

// SlidingState is the sticky slope-slide mode.
type SlidingState struct {
	IsSliding   bool
	SlidingTime float32
	// SlideDirection is the downhill direction of the current slide.
	SlideDirection mgl32.Vec3
	// TimeSinceSlopeContactLost is reset while the capsule touches steep ground and grows otherwise.
	TimeSinceSlopeContactLost float32
}

// RuntimeState is everything the simulator mutates for one entity. It holds no references, so
// assigning it to another variable is a full snapshot.
type RuntimeState struct {
	Body         motor.Body
	Motion       MotionState
	Sliding      SlidingState
	Ground       grounding.Info
	GroundMemory grounding.Memory

	// StepStable is set after a successful step-up and holds until the capsule stands on walkable
	// ground again or leaves the ground.
	StepStable bool
	// SprintTime is how long sprint has been held with movement input.
	SprintTime float32
}
