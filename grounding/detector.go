package grounding

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/debug"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/motor"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/settings"
)

var down = mgl32.Vec3{0, -1, 0}

// Detector derives Info from a body the motor has just moved.
type Detector struct {
	motor         *motor.Motor
	maxSlope      float32
	probeDistance float32
	dbg           *debug.Debugger
}

// NewDetector returns a detector that probes through m.
func NewDetector(m *motor.Motor, cfg settings.Locomotion, dbg *debug.Debugger) (*Detector, error) {
	if m == nil {
		return nil, oerror.New(game.ErrorMissingMotor)
	}
	return &Detector{
		motor:         m,
		maxSlope:      cfg.Slope.MaxAngle,
		probeDistance: cfg.Capsule.Height*0.5 + cfg.Motor.SlopeProbeDistance,
		dbg:           dbg,
	}, nil
}

// MaxSlope returns the steepest walkable slope in degrees.
func (d *Detector) MaxSlope() float32 { return d.maxSlope }

// Walkable reports whether a slope of angle degrees can be stood on.
func (d *Detector) Walkable(angle float32) bool { return angle < d.maxSlope }

// Detect builds the ground state for b. previous is the state from the last tick and is only used to
// derive the landing and leaving edges. mem carries the slope sample between ticks.
func (d *Detector) Detect(b motor.Body, previous Info, mem *Memory, dt float32) Info {
	info := Airborne()
	g := b.Ground
	if g.Found {
		info.Point = g.Point
		info.Normal = g.Normal
		info.SlopeAngle = g.Angle
		info.Distance = g.Distance
		info.Collider = g.Collider
	}
	info.IsGrounded = g.Contact
	info.IsWalkable = info.IsGrounded && d.Walkable(info.SlopeAngle)
	info.JustLanded = info.IsGrounded && !previous.IsGrounded
	info.JustLeftGround = !info.IsGrounded && previous.IsGrounded

	normal, source := d.sampleBelow(b)
	switch {
	case source != SourceNone:
		mem.Remember(normal, game.SlopeAngle(normal))
	default:
		if n, _, ok := mem.Recall(dt); ok {
			normal, source = n, SourceMemory
		} else {
			normal = game.WorldUp
		}
	}
	info.SlopeNormalBelow = normal
	info.SlopeAngleBelow = game.SlopeAngle(normal)
	info.IsWalkableBelow = d.Walkable(info.SlopeAngleBelow)
	info.BelowSource = source

	d.dbg.Notify(debug.ModeGround, info.JustLanded, "landed on collider %d (slope=%v)", info.Collider, info.SlopeAngle)
	d.dbg.Notify(debug.ModeGround, info.JustLeftGround, "left ground")
	d.dbg.Notify(debug.ModeGround, true, "below=%v via %s walkable=%v", info.SlopeAngleBelow, source, info.IsWalkableBelow)
	return info
}

// sampleBelow casts a ray down from the capsule's centre, then the strategy's fallback probes, and
// finally falls back to the normal the capsule sweep found.
func (d *Detector) sampleBelow(b motor.Body) (mgl32.Vec3, Source) {
	center := d.motor.Capsule(b.Position).Center()
	if hit, ok := d.motor.Raycast(center, down, d.probeDistance); ok {
		return hit.Normal, SourceCenter
	}

	radius := d.motor.Shape().Radius
	for _, offset := range d.motor.Strategy().FallbackProbes() {
		origin := center.Add(mgl32.Vec3{offset.X() * radius, 0, offset.Y() * radius})
		if hit, ok := d.motor.Raycast(origin, down, d.probeDistance); ok {
			return hit.Normal, SourceRing
		}
	}

	if b.Ground.Found {
		return b.Ground.Normal, SourceSweep
	}
	return mgl32.Vec3{}, SourceNone
}
