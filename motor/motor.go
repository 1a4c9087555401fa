package motor

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/debug"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/scene"
	"github.com/oomph-ac/locomotion/settings"
)

var (
	up   = game.WorldUp
	down = game.WorldUp.Mul(-1)
)

// Motor moves a capsule through a scene with sliding collision response, overlap resolution and
// step traversal. It holds no per-entity state: everything it changes lives in a Body.
type Motor struct {
	scene    scene.Provider
	shape    settings.Capsule
	opts     settings.Motor
	maxSlope float32
	strategy Strategy
	filter   scene.Filter
	dbg      *debug.Debugger
}

// New returns a motor for the capsule and motor settings in cfg.
func New(provider scene.Provider, cfg settings.Locomotion, dbg *debug.Debugger) (*Motor, error) {
	if provider == nil {
		return nil, oerror.New(game.ErrorMissingSceneProvider)
	}
	if err := cfg.Capsule.Validate(); err != nil {
		return nil, err
	}
	strategy, ok := StrategyFromString(cfg.Motor.Strategy)
	if !ok {
		return nil, oerror.New(game.ErrorInvalidStrategy, cfg.Motor.Strategy)
	}
	if cfg.Motor.SkinWidth <= 0 {
		return nil, oerror.New(game.ErrorInvalidSetting, "motor.skin_width", cfg.Motor.SkinWidth)
	}
	return &Motor{
		scene:    provider,
		shape:    cfg.Capsule,
		opts:     cfg.Motor,
		maxSlope: cfg.Slope.MaxAngle,
		strategy: strategy,
		dbg:      dbg,
	}, nil
}

// WithFilter returns a copy of the motor that queries the scene with f, typically to ignore the
// entity's own collider.
func (m *Motor) WithFilter(f scene.Filter) *Motor {
	c := *m
	c.filter = f
	return &c
}

// Strategy returns the strategy the motor was built with.
func (m *Motor) Strategy() Strategy { return m.strategy }

// Shape returns the capsule dimensions.
func (m *Motor) Shape() settings.Capsule { return m.shape }

// SkinWidth returns the clearance kept between the capsule and geometry.
func (m *Motor) SkinWidth() float32 { return m.opts.SkinWidth }

// Capsule returns the capsule placed with its base at pos.
func (m *Motor) Capsule(pos mgl32.Vec3) scene.Capsule {
	center := pos.Add(mgl32.Vec3{0, m.shape.CenterOffset, 0})
	half := m.shape.Height*0.5 - m.shape.Radius
	return scene.Capsule{
		Bottom: center.Sub(up.Mul(half)),
		Top:    center.Add(up.Mul(half)),
		Radius: m.shape.Radius,
	}
}

// Raycast casts a ray into the motor's scene with the motor's filter.
func (m *Motor) Raycast(origin, dir mgl32.Vec3, dist float32) (scene.Hit, bool) {
	return m.scene.Raycast(origin, dir, dist, m.filter)
}

// Move displaces the body by motion, sliding along whatever it hits, then resolves any remaining
// overlap and refreshes the body's ground state.
func (m *Motor) Move(b *Body, motion mgl32.Vec3) CollisionFlags {
	var flags CollisionFlags
	skin := m.opts.SkinWidth
	remaining := motion

	for i := 0; i < game.MaxSlideIterations; i++ {
		dist := remaining.Len()
		if dist < game.MinMoveDistance {
			break
		}
		dir := remaining.Mul(1 / dist)

		hit, ok := m.scene.SweepCapsule(m.Capsule(b.Position), dir, dist+skin, m.filter)
		if !ok {
			b.Position = b.Position.Add(remaining)
			m.dbg.Notify(debug.ModeMotor, true, "move iteration %d: free (motion=%v)", i, remaining)
			remaining = mgl32.Vec3{}
			break
		}

		travel := min(max(hit.Distance-skin, 0), dist)
		b.Position = b.Position.Add(dir.Mul(travel))
		flags |= classifyNormal(hit.Normal)
		remaining = game.ProjectOnPlane(dir.Mul(dist-travel), hit.Normal)
		m.dbg.Notify(debug.ModeMotor, true, "move iteration %d: hit collider %d (dist=%v normal=%v travel=%v remaining=%v)", i, hit.Collider, hit.Distance, hit.Normal, travel, remaining)
	}

	if m.depenetrate(b) {
		m.dbg.Notify(debug.ModeMotor, true, "depenetrated to %v", b.Position)
	}
	b.Flags = flags
	b.Ground = m.ProbeGround(*b)
	return flags
}

// depenetrate pushes the body out of every overlapping collider, deepest first. It reports whether
// the body moved.
func (m *Motor) depenetrate(b *Body) bool {
	moved := false
	for i := 0; i < game.MaxDepenetrationIterations; i++ {
		pens := m.scene.Penetrations(m.Capsule(b.Position), m.filter)
		if len(pens) == 0 {
			break
		}
		deepest := pens[0]
		for _, p := range pens[1:] {
			if p.Depth > deepest.Depth {
				deepest = p
			}
		}
		b.Position = b.Position.Add(deepest.Direction.Mul(deepest.Depth + game.PenetrationSlop))
		moved = true
		m.dbg.Notify(debug.ModeMotor, true, "depenetration %d: collider %d depth=%v dir=%v", i, deepest.Collider, deepest.Depth, deepest.Direction)
	}
	return moved
}

// ProbeGround sweeps the capsule straight down and reports what it would stand on. Finding nothing is
// a valid airborne result.
func (m *Motor) ProbeGround(b Body) GroundHit {
	skin := m.opts.SkinWidth
	hit, ok := m.scene.SweepCapsule(m.Capsule(b.Position), down, m.opts.GroundCheckDistance+skin, m.filter)
	if !ok {
		return GroundHit{Normal: up}
	}
	return GroundHit{
		Found:    true,
		Contact:  hit.Distance <= skin+m.opts.ContactOffset,
		Point:    hit.Point,
		Normal:   hit.Normal,
		Distance: hit.Distance,
		Angle:    game.SlopeAngle(hit.Normal),
		Collider: hit.Collider,
	}
}

// SetPosition teleports the body without sweeping, then refreshes its ground state.
func (m *Motor) SetPosition(b *Body, pos mgl32.Vec3) {
	b.Position = pos
	b.Flags = 0
	b.Ground = m.ProbeGround(*b)
	m.dbg.Notify(debug.ModeMotor, true, "teleported to %v (grounded=%v)", pos, b.Ground.Contact)
}

// SetPositionAndRotation teleports and turns the body, then refreshes its ground state.
func (m *Motor) SetPositionAndRotation(b *Body, pos mgl32.Vec3, yaw float32) {
	b.Yaw = game.WrapYawDelta(yaw)
	m.SetPosition(b, pos)
}

// classifyNormal sorts a hit normal into below, sides or above by its angle from world-up.
func classifyNormal(n mgl32.Vec3) CollisionFlags {
	angle := game.SlopeAngle(n)
	switch {
	case angle < game.BelowNormalAngle:
		return CollidedBelow
	case angle > game.AboveNormalAngle:
		return CollidedAbove
	default:
		return CollidedSides
	}
}
