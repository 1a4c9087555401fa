package motor

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/debug"
	"github.com/oomph-ac/locomotion/game"
)

// stepTolerance absorbs float error when comparing a step height against MaxStepHeight.
const stepTolerance = 1e-4

// TryStepUp checks whether the horizontal part of motion is blocked by an obstacle low enough to step
// onto. It lifts the capsule by the maximum step height, moves it forward and drops it back down. The
// body is not modified: on success the position the capsule should be relocated to is returned.
func (m *Motor) TryStepUp(b Body, motion mgl32.Vec3) (bool, mgl32.Vec3) {
	horizontal := game.Horizontal(motion)
	dist := horizontal.Len()
	if !b.Ground.Contact || dist < game.MinMoveDistance || m.opts.MaxStepHeight <= 0 {
		return false, b.Position
	}
	dir := horizontal.Mul(1 / dist)
	skin := m.opts.SkinWidth
	maxStep := m.opts.MaxStepHeight

	obstacle, ok := m.scene.SweepCapsule(m.Capsule(b.Position), dir, dist+skin, m.filter)
	if !ok {
		return false, b.Position
	}
	if game.SlopeAngle(obstacle.Normal) < m.maxSlope {
		// A walkable incline is climbed by sliding, not stepping.
		return false, b.Position
	}

	lift := maxStep
	if ceiling, ok := m.scene.SweepCapsule(m.Capsule(b.Position), up, maxStep+skin, m.filter); ok {
		lift = min(lift, max(ceiling.Distance-skin, 0))
	}
	if lift < game.MinMoveDistance {
		m.dbg.Notify(debug.ModeMotor, true, "step rejected: no headroom")
		return false, b.Position
	}
	lifted := b.Position.Add(up.Mul(lift))

	advance := dist
	if wall, ok := m.scene.SweepCapsule(m.Capsule(lifted), dir, dist+skin, m.filter); ok {
		advance = min(advance, max(wall.Distance-skin, 0))
	}
	if advance < game.MinMoveDistance {
		m.dbg.Notify(debug.ModeMotor, true, "step rejected: obstacle taller than %v", maxStep)
		return false, b.Position
	}
	moved := lifted.Add(dir.Mul(advance))

	drop, ok := m.scene.SweepCapsule(m.Capsule(moved), down, lift+skin+m.opts.ContactOffset, m.filter)
	if !ok {
		return false, b.Position
	}
	candidate := moved.Sub(up.Mul(max(drop.Distance-skin, 0)))
	if rise := candidate.Y() - b.Position.Y(); rise < game.MinMoveDistance || rise > maxStep+stepTolerance {
		return false, b.Position
	}

	// The surface just past the obstacle's edge must be something we can stand on.
	probe := obstacle.Point.Add(dir.Mul(m.opts.StepDepth))
	origin := mgl32.Vec3{probe.X(), b.Position.Y() + maxStep + skin, probe.Z()}
	land, ok := m.scene.Raycast(origin, down, maxStep+skin, m.filter)
	if !ok {
		m.dbg.Notify(debug.ModeMotor, true, "step rejected: no tread behind obstacle")
		return false, b.Position
	}
	height := land.Point.Y() - b.Position.Y()
	if height < game.MinMoveDistance || height > maxStep+stepTolerance {
		return false, b.Position
	}
	if angle := game.SlopeAngle(land.Normal); angle >= m.maxSlope {
		m.dbg.Notify(debug.ModeMotor, true, "step rejected: tread slope %v", angle)
		return false, b.Position
	}

	if len(m.scene.Penetrations(m.Capsule(candidate), m.filter)) > 0 {
		m.dbg.Notify(debug.ModeMotor, true, "step rejected: candidate overlaps geometry")
		return false, b.Position
	}
	m.dbg.Notify(debug.ModeMotor, true, "stepped %v onto collider %d", height, land.Collider)
	return true, candidate
}
