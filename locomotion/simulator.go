package locomotion

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/debug"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/grounding"
	"github.com/oomph-ac/locomotion/motor"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/settings"
)

// Simulator integrates input into motion for one entity at a time. It keeps no per-entity state, so
// a single Simulator may serve every entity sharing its configuration.
type Simulator struct {
	motor    *motor.Motor
	detector *grounding.Detector
	cfg      settings.Locomotion
	dt       float32
	dbg      *debug.Debugger
}

// New returns a simulator moving capsules through m and classifying ground through d.
func New(m *motor.Motor, d *grounding.Detector, cfg settings.Locomotion, dbg *debug.Debugger) (*Simulator, error) {
	if m == nil {
		return nil, oerror.New(game.ErrorMissingMotor)
	}
	if d == nil {
		return nil, oerror.New(game.ErrorMissingDetector)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		motor:    m,
		detector: d,
		cfg:      cfg,
		dt:       cfg.DeltaTime(),
		dbg:      dbg,
	}, nil
}

// DeltaTime returns the fixed tick length.
func (s *Simulator) DeltaTime() float32 { return s.dt }

// Motor returns the motor the simulator moves bodies with.
func (s *Simulator) Motor() *motor.Motor { return s.motor }

// NewState returns the runtime state of an entity standing at pos facing yaw.
func (s *Simulator) NewState(pos mgl32.Vec3, yaw float32) RuntimeState {
	state := RuntimeState{Ground: grounding.Airborne()}
	s.Teleport(&state, pos, yaw)
	return state
}

// Teleport moves the entity without sweeping and clears its motion.
func (s *Simulator) Teleport(state *RuntimeState, pos mgl32.Vec3, yaw float32) {
	s.motor.SetPositionAndRotation(&state.Body, pos, yaw)
	state.Motion = MotionState{}
	state.Sliding = SlidingState{}
	state.StepStable = false
	state.SprintTime = 0
	state.GroundMemory.Reset()
	state.Ground = s.detector.Detect(state.Body, grounding.Airborne(), &state.GroundMemory, 0)
	state.Motion.IsGrounded = state.Ground.IsGrounded
}

// Correct overwrites the transform and velocity of an entity with authoritative values while keeping
// its slide and step state, then refreshes ground so the next tick starts from the corrected pose.
func (s *Simulator) Correct(state *RuntimeState, pos mgl32.Vec3, yaw float32, vel mgl32.Vec3) {
	s.motor.SetPositionAndRotation(&state.Body, pos, yaw)
	state.Motion.Velocity = vel
	state.Motion.HorizontalVelocity = game.Horizontal(vel)
	state.Motion.VerticalVelocity = vel.Y()
	state.Ground = s.detector.Detect(state.Body, state.Ground, &state.GroundMemory, 0)
	state.Motion.IsGrounded = state.Ground.IsGrounded
}

// Simulate runs one tick. The result depends only on state, input and the fixed tick length.
func (s *Simulator) Simulate(state *RuntimeState, input Input) Result {
	if state == nil {
		return Result{}
	}
	start := state.Body.Position
	outcome := OutcomeMoved

	s.refreshGround(state)
	if !state.Ground.IsGrounded || state.Ground.IsWalkable {
		state.StepStable = false
	}

	wish := s.wishDirection(state, input)
	s.integrateHorizontal(state, input, wish)
	s.integrateVertical(state, input)

	horizontal := state.Motion.HorizontalVelocity
	vertical := mgl32.Vec3{0, state.Motion.VerticalVelocity, 0}
	velocity := horizontal.Add(vertical)

	stepped := false
	if state.Ground.IsGrounded && horizontal.Len()*s.dt > game.MinMoveDistance {
		if ok, pos := s.motor.TryStepUp(state.Body, horizontal.Mul(s.dt)); ok {
			state.Body.Position = pos
			state.StepStable = true
			stepped = true
			outcome = OutcomeStepped
		}
	}

	if stepped {
		state.Motion.CollisionFlags = s.motor.Move(&state.Body, mgl32.Vec3{})
	} else {
		s.updateSliding(state)
		switch {
		case state.Sliding.IsSliding:
			velocity = s.slideVelocity(state, wish)
			outcome = OutcomeSlid
		case state.Ground.IsGrounded && state.Ground.IsWalkable:
			velocity = reprojectOnGround(horizontal, state.Ground.Normal).Add(vertical)
		}
		state.Motion.CollisionFlags = s.motor.Move(&state.Body, velocity.Mul(s.dt))
	}
	state.Motion.Velocity = velocity

	if state.Motion.CollisionFlags.Above() && state.Motion.VerticalVelocity > 0 {
		state.Motion.VerticalVelocity = 0
	}

	if wish != (mgl32.Vec3{}) {
		target := game.YawFromDirection(wish)
		state.Body.Yaw = game.RotateYawTowards(state.Body.Yaw, target, s.cfg.Movement.RotationSpeed*s.dt)
	}

	snapped := s.snapToGround(state)

	// Ground as seen after the move is what the state machine reads before the next tick.
	state.Ground = s.detector.Detect(state.Body, state.Ground, &state.GroundMemory, 0)
	state.Motion.IsGrounded = state.Ground.IsGrounded

	s.dbg.Notify(debug.ModeLocomotion, true, "tick %s: pos=%v vel=%v grounded=%v flags=%v", outcome, state.Body.Position, velocity, state.Ground.IsGrounded, state.Motion.CollisionFlags)
	return Result{
		Position:     state.Body.Position,
		Yaw:          state.Body.Yaw,
		Velocity:     velocity,
		Displacement: state.Body.Position.Sub(start),
		Grounded:     state.Ground.IsGrounded,
		Sliding:      state.Sliding.IsSliding,
		Flags:        state.Motion.CollisionFlags,
		Snapped:      snapped,
		Outcome:      outcome,
	}
}

// refreshGround re-probes the ground under the body, which moving colliders may have changed since
// the last tick.
func (s *Simulator) refreshGround(state *RuntimeState) {
	state.Body.Ground = s.motor.ProbeGround(state.Body)
	state.Ground = s.detector.Detect(state.Body, state.Ground, &state.GroundMemory, s.dt)
}

// wishDirection converts the move input into a world-space horizontal direction. Its length is the
// input magnitude.
func (s *Simulator) wishDirection(state *RuntimeState, input Input) mgl32.Vec3 {
	if !input.HasMovement() {
		return mgl32.Vec3{}
	}
	move := input.MoveDirection
	if move.Len() > 1 {
		move = move.Normalize()
	}
	forward := game.SafeNormalize(game.Horizontal(input.LookDirection))
	if forward == (mgl32.Vec3{}) {
		forward = game.DirectionFromYaw(state.Body.Yaw)
	}
	right := game.WorldUp.Cross(forward)
	return forward.Mul(move.Y()).Add(right.Mul(move.X()))
}

// targetSpeed picks the gait speed for the input.
func (s *Simulator) targetSpeed(state *RuntimeState, input Input) float32 {
	mv := s.cfg.Movement
	speed := mv.WalkSpeed
	switch {
	case input.Crouch:
		speed = mv.CrouchSpeed
	case input.SprintHeld && state.SprintTime >= mv.SprintWindup:
		speed = mv.SprintSpeed
	case input.SprintHeld:
		speed = mv.RunSpeed
	}
	if input.SpeedModifier > 0 {
		speed *= input.SpeedModifier
	}
	return speed
}

func (s *Simulator) integrateHorizontal(state *RuntimeState, input Input, wish mgl32.Vec3) {
	mv := s.cfg.Movement
	moving := wish != (mgl32.Vec3{})
	if input.SprintHeld && moving && !input.Crouch {
		state.SprintTime += s.dt
	} else {
		state.SprintTime = 0
	}

	if input.Halt {
		state.Motion.HorizontalVelocity = mgl32.Vec3{}
		return
	}

	target := wish.Mul(s.targetSpeed(state, input))
	rate := mv.Deceleration
	if moving {
		rate = mv.Acceleration
	}
	if !state.Ground.IsGrounded {
		target = target.Mul(mv.AirControl)
		rate *= mv.AirControl
	}
	state.Motion.HorizontalVelocity = game.MoveTowards(game.Horizontal(state.Motion.HorizontalVelocity), target, rate*s.dt)
}

func (s *Simulator) integrateVertical(state *RuntimeState, input Input) {
	mv := s.cfg.Movement
	vy := state.Motion.VerticalVelocity
	switch {
	case input.OverrideVertical:
		vy = input.VerticalVelocityOverride
	case state.Ground.IsGrounded && vy <= 0:
		vy = -mv.GroundStickVelocity
	default:
		vy = max(vy-mv.Gravity*s.dt, -mv.MaxFallSpeed)
	}
	state.Motion.VerticalVelocity = vy
}

// updateSliding applies the sticky slide rules. A slide starts on steep ground the motor is touching
// and ends once the capsule stands on walkable ground or has been off steep ground for longer than
// the grace period.
func (s *Simulator) updateSliding(state *RuntimeState) {
	g := state.Ground
	sl := &state.Sliding
	steep := g.IsGrounded && !g.IsWalkableBelow && ShouldSlide(g.SlopeAngleBelow, s.detector.MaxSlope())

	if !sl.IsSliding {
		if steep && !state.StepStable {
			*sl = SlidingState{IsSliding: true}
			s.dbg.Notify(debug.ModeSlide, true, "slide started on %v degree slope", g.SlopeAngleBelow)
		} else {
			return
		}
	}

	if steep {
		sl.TimeSinceSlopeContactLost = 0
	} else {
		sl.TimeSinceSlopeContactLost += s.dt
	}

	switch {
	case g.IsGrounded && g.IsWalkable && g.IsWalkableBelow:
		s.dbg.Notify(debug.ModeSlide, true, "slide ended on walkable ground after %vs", sl.SlidingTime)
		*sl = SlidingState{}
		return
	case sl.TimeSinceSlopeContactLost > game.SlideGracePeriod:
		s.dbg.Notify(debug.ModeSlide, true, "slide ended after losing steep contact for %vs", sl.TimeSinceSlopeContactLost)
		*sl = SlidingState{}
		return
	}
	sl.SlidingTime += s.dt
}

// slideVelocity returns the velocity of a sliding capsule and keeps the horizontal momentum in sync
// so it carries over when the slide ends.
func (s *Simulator) slideVelocity(state *RuntimeState, wish mgl32.Vec3) mgl32.Vec3 {
	g := state.Ground
	sl := &state.Sliding
	if downhill := DownhillDirection(g.SlopeNormalBelow); downhill != (mgl32.Vec3{}) {
		sl.SlideDirection = downhill
	}
	speed := SlideSpeed(s.cfg.Slope, g.SlopeAngleBelow, sl.SlidingTime)
	velocity := sl.SlideDirection.Mul(speed)

	if wish != (mgl32.Vec3{}) && steerAllowed(wish, sl.SlideDirection) {
		velocity = velocity.Add(wish.Mul(s.cfg.Slope.SteerControl * s.cfg.Movement.WalkSpeed))
	}

	state.Motion.HorizontalVelocity = game.Horizontal(velocity)
	if g.IsGrounded {
		state.Motion.VerticalVelocity = velocity.Y()
	} else {
		velocity[1] = state.Motion.VerticalVelocity
	}
	s.dbg.Notify(debug.ModeSlide, true, "sliding: angle=%v speed=%v time=%v", g.SlopeAngleBelow, speed, sl.SlidingTime)
	return velocity
}

// snapToGround settles a descending, non-sliding body exactly one skin width above ground within the
// snap tolerance. Diagonal sweeps can end closer than the skin, so the snap may also lift the body.
// It returns the distance moved down, negative when lifted.
func (s *Simulator) snapToGround(state *RuntimeState) float32 {
	g := &state.Body.Ground
	if !state.Ground.IsGrounded || state.Motion.VerticalVelocity > 0 || state.Sliding.IsSliding || !g.Found {
		return 0
	}
	delta := g.Distance - s.motor.SkinWidth()
	if math32.Abs(delta) <= game.MinMoveDistance || delta > s.cfg.Motor.SnapTolerance {
		return 0
	}
	state.Body.Position[1] -= delta
	g.Distance -= delta
	g.Contact = true
	s.dbg.Notify(debug.ModeLocomotion, true, "snapped %v onto collider %d", delta, g.Collider)
	return delta
}

// reprojectOnGround rotates a horizontal velocity onto the ground plane, keeping its magnitude.
func reprojectOnGround(horizontal, normal mgl32.Vec3) mgl32.Vec3 {
	speed := horizontal.Len()
	if speed <= 1e-6 {
		return horizontal
	}
	projected := game.SafeNormalize(game.ProjectOnPlane(horizontal, normal))
	if projected == (mgl32.Vec3{}) {
		return horizontal
	}
	return projected.Mul(speed)
}
