package grounding

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/debug"
	"github.com/oomph-ac/locomotion/scene"
)

// Source names the probe that produced the slope sample below the capsule.
type Source uint8

const (
	SourceNone Source = iota
	SourceCenter
	SourceRing
	SourceSweep
	SourceMemory
)

func (s Source) String() string {
	switch s {
	case SourceCenter:
		return "center"
	case SourceRing:
		return "ring"
	case SourceSweep:
		return "sweep"
	case SourceMemory:
		return "memory"
	}
	return "none"
}

// Info is the ground state of a capsule after a tick. The primary fields come from the motor's
// capsule sweep, the Below fields from the secondary probe under the capsule's centre.
type Info struct {
	IsGrounded bool
	Point      mgl32.Vec3
	Normal     mgl32.Vec3
	SlopeAngle float32
	Distance   float32
	IsWalkable bool
	Collider   scene.ColliderID

	JustLanded     bool
	JustLeftGround bool

	SlopeAngleBelow  float32
	SlopeNormalBelow mgl32.Vec3
	IsWalkableBelow  bool
	BelowSource      Source
}

// Airborne returns the ground state of a capsule touching nothing.
func Airborne() Info {
	return Info{
		Normal:           mgl32.Vec3{0, 1, 0},
		SlopeNormalBelow: mgl32.Vec3{0, 1, 0},
		IsWalkableBelow:  true,
	}
}

// Debug fills data with a readable view of the ground state.
func (i Info) Debug(data *debug.Data) {
	data.Set("grounded", i.IsGrounded)
	data.Set("walkable", i.IsWalkable)
	data.Set("slope", i.SlopeAngle)
	data.Set("slope_below", i.SlopeAngleBelow)
	data.Set("below_source", i.BelowSource.String())
	data.Set("distance", i.Distance)
}
