package motor

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/scene"
)

// CollisionFlags records which sides of the capsule collided during a Move.
type CollisionFlags uint8

const (
	CollidedBelow CollisionFlags = 1 << iota
	CollidedSides
	CollidedAbove
)

// Below reports whether the capsule hit something beneath it.
func (f CollisionFlags) Below() bool { return f&CollidedBelow != 0 }

// Sides reports whether the capsule hit a wall.
func (f CollisionFlags) Sides() bool { return f&CollidedSides != 0 }

// Above reports whether the capsule hit a ceiling.
func (f CollisionFlags) Above() bool { return f&CollidedAbove != 0 }

func (f CollisionFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f.Below() {
		parts = append(parts, "below")
	}
	if f.Sides() {
		parts = append(parts, "sides")
	}
	if f.Above() {
		parts = append(parts, "above")
	}
	return strings.Join(parts, "|")
}

// GroundHit is the result of the motor's downward ground sweep.
type GroundHit struct {
	// Found is true if the sweep hit anything within the ground check distance.
	Found bool
	// Contact is true if the hit is close enough for the capsule to be standing on it.
	Contact bool
	Point   mgl32.Vec3
	Normal  mgl32.Vec3
	// Distance is the gap between the capsule and the ground.
	Distance float32
	// Angle is the slope of the hit surface in degrees.
	Angle    float32
	Collider scene.ColliderID
}

// Body is the transform and contact state the motor moves. It is plain data, so copying it is a
// complete snapshot.
type Body struct {
	// Position is the base of the capsule.
	Position mgl32.Vec3
	// Yaw is the heading in degrees. A yaw of zero faces +Z.
	Yaw    float32
	Ground GroundHit
	Flags  CollisionFlags
}
