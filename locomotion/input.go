package locomotion

import "github.com/go-gl/mathgl/mgl32"

// Input is one tick of movement input. It is plain data so it can be recorded and replayed.
type Input struct {
	// MoveDirection is the stick input. Y moves along the look direction and X strafes to its right.
	// Vectors longer than one are normalized.
	MoveDirection mgl32.Vec2
	// LookDirection orients MoveDirection. Only its horizontal part is used; a zero vector falls back
	// to the body's heading.
	LookDirection mgl32.Vec3

	SprintHeld bool
	Crouch     bool

	// OverrideVertical replaces the integrated vertical velocity with VerticalVelocityOverride for
	// this tick.
	OverrideVertical         bool
	VerticalVelocityOverride float32

	// SpeedModifier scales every horizontal target speed. Zero means no scaling.
	SpeedModifier float32
	// Halt stops horizontal movement outright.
	Halt bool
}

// HasMovement reports whether the move input is past the dead zone.
func (i Input) HasMovement() bool {
	return !i.Halt && i.MoveDirection.Len() > inputDeadZone
}

const inputDeadZone = 1e-3
