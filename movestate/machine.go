package movestate

import (
	"github.com/chewxy/math32"
	"github.com/oomph-ac/locomotion/debug"
	"github.com/oomph-ac/locomotion/settings"
)

// Machine decides movement states. It holds only configuration; everything that changes between
// ticks lives in a Runtime.
type Machine struct {
	cfg          settings.Locomotion
	dt           float32
	jumpVelocity float32
	trigger      settings.RollTrigger
	dbg          *debug.Debugger
}

// New returns a machine for cfg.
func New(cfg settings.Locomotion, dbg *debug.Debugger) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Machine{
		cfg:          cfg,
		dt:           cfg.DeltaTime(),
		jumpVelocity: JumpVelocity(cfg.Movement.Gravity, cfg.Jump.Height),
		trigger:      cfg.Landing.Trigger(),
		dbg:          dbg,
	}, nil
}

// JumpVelocity returns the launch speed that reaches height under gravity.
func JumpVelocity(gravity, height float32) float32 {
	return math32.Sqrt(2 * gravity * height)
}

// Update advances rt by one tick of s and returns what the simulator should do this tick.
func (m *Machine) Update(rt *Runtime, s Sample) Directive {
	rt.TimeInState += m.dt
	if stable(s) {
		rt.TimeSinceStable = 0
		rt.LastStableY = s.Height
		rt.FallDistance = 0
		rt.JumpConsumed = false
	} else {
		rt.TimeSinceStable += m.dt
		rt.FallDistance = max(rt.LastStableY-s.Height, 0)
	}
	if rt.JumpBufferTimer > 0 {
		rt.JumpBufferTimer = max(rt.JumpBufferTimer-m.dt, 0)
	}

	next := m.Decide(*rt, s)

	pressed := s.Jump && rt.JumpReleased
	rt.JumpReleased = !s.Jump
	started := next == StateJump && rt.State != StateJump
	if pressed && next.Airborne() && !started {
		rt.JumpBufferTimer = m.cfg.Jump.BufferTime
		m.dbg.Notify(debug.ModeState, true, "buffered jump press for %vs", rt.JumpBufferTimer)
	}

	var d Directive
	if next != rt.State {
		m.exit(rt, rt.State)
		m.dbg.Notify(debug.ModeState, true, "%s -> %s after %vs", rt.State, next, rt.TimeInState)
		rt.Previous, rt.State, rt.TimeInState = rt.State, next, 0
		m.enter(rt, next, s, &d)
		d.Changed = true
	}
	d.Crouch = rt.Crouching
	d.Halt = rt.Halted
	if rt.Rolling {
		d.SpeedModifier = m.cfg.Landing.RollSpeedModifier
	}
	return d
}

// Decide returns the state rt should be in for s. It has no side effects.
func (m *Machine) Decide(rt Runtime, s Sample) State {
	switch rt.State {
	case StateJump:
		if s.VerticalVelocity <= 0 || rt.TimeInState >= m.cfg.Jump.Duration {
			return StateFall
		}
		return StateJump
	case StateFall:
		if !s.Grounded {
			if m.canJump(rt, s) {
				return StateJump
			}
			return StateFall
		}
		if s.Sliding {
			return StateSlide
		}
		if rt.JumpBufferTimer > 0 && !rt.JumpConsumed {
			return StateJump
		}
		next, _ := ClassifyLanding(m.cfg.Landing, math32.Abs(s.VerticalVelocity), rollIntent(m.trigger, s))
		return next
	}

	if rt.State != StateHardLand && rt.State != StateRoll && m.canJump(rt, s) {
		return StateJump
	}
	if s.Sliding {
		return StateSlide
	}
	if !stable(s) && (rt.FallDistance > m.cfg.Jump.MinFallDistance || rt.TimeSinceStable > m.cfg.Jump.CoyoteTime) {
		return StateFall
	}

	gait := m.gait(s)
	switch {
	case rt.State == StateRoll:
		if s.AnimationComplete || rt.TimeInState >= rt.Recovery {
			return gait
		}
		return StateRoll
	case rt.State == StateSoftLand:
		if s.Move || s.AnimationExitAllowed || rt.TimeInState >= rt.Recovery {
			return gait
		}
		return StateSoftLand
	case rt.State == StateHardLand:
		if s.AnimationExitAllowed || rt.TimeInState >= rt.Recovery {
			return gait
		}
		return StateHardLand
	case rt.State.Stopping():
		if s.Move {
			return gait
		}
		if s.HorizontalSpeed <= m.cfg.Stop.SpeedThreshold || rt.TimeInState >= rt.Recovery {
			return StateIdle
		}
		return rt.State
	}

	if !s.Move && s.HorizontalSpeed > m.cfg.Stop.SpeedThreshold {
		switch rt.State {
		case StateWalk:
			return StateStopLight
		case StateRun:
			return StateStopMedium
		case StateSprint:
			return StateStopHard
		}
	}
	return gait
}

// canJump reports whether a jump press is accepted: the previous press must have been released, and
// the character must be grounded or within coyote time of leaving stable ground.
func (m *Machine) canJump(rt Runtime, s Sample) bool {
	if !s.Jump || !rt.JumpReleased || rt.JumpConsumed {
		return false
	}
	return s.Grounded || rt.TimeSinceStable <= m.cfg.Jump.CoyoteTime
}

// gait picks the locomotion state for the current buttons and speed.
func (m *Machine) gait(s Sample) State {
	switch {
	case s.Crouch:
		if s.Move {
			return StateCrouchMove
		}
		return StateCrouchIdle
	case !s.Move:
		return StateIdle
	case s.Sprint && s.HorizontalSpeed >= (m.cfg.Movement.RunSpeed+m.cfg.Movement.SprintSpeed)*0.5:
		return StateSprint
	case s.Sprint:
		return StateRun
	}
	return StateWalk
}

// stable reports whether the character stands on ground it can stay on.
func stable(s Sample) bool {
	return s.Grounded && (s.Walkable || s.StepStable)
}
