package movestate

import (
	"github.com/chewxy/math32"
	"github.com/oomph-ac/locomotion/debug"
)

// enter runs when rt switches into state.
func (m *Machine) enter(rt *Runtime, state State, s Sample, d *Directive) {
	switch state {
	case StateJump:
		rt.JumpConsumed = true
		rt.JumpBufferTimer = 0
		d.Jump = true
		d.JumpVelocity = m.jumpVelocity
	case StateCrouchIdle, StateCrouchMove:
		rt.Crouching = true
	case StateSoftLand, StateHardLand, StateRoll:
		rt.LandingSpeed = math32.Abs(s.VerticalVelocity)
		_, rt.Recovery = ClassifyLanding(m.cfg.Landing, rt.LandingSpeed, rollIntent(m.trigger, s))
		rt.Halted = state == StateHardLand
		rt.Rolling = state == StateRoll
		m.dbg.Notify(debug.ModeState, true, "landed at %v m/s: %s for %vs", rt.LandingSpeed, state, rt.Recovery)
	case StateStopLight:
		rt.Recovery = m.cfg.Stop.LightRecovery
	case StateStopMedium:
		rt.Recovery = m.cfg.Stop.MediumRecovery
	case StateStopHard:
		rt.Recovery = m.cfg.Stop.HardRecovery
	}
}

// exit runs when rt leaves state. Every flag an enter hook sets is cleared here.
func (m *Machine) exit(rt *Runtime, state State) {
	switch state {
	case StateCrouchIdle, StateCrouchMove:
		rt.Crouching = false
	case StateSoftLand, StateHardLand, StateRoll:
		rt.Halted = false
		rt.Rolling = false
		rt.LandingSpeed = 0
		rt.Recovery = 0
	case StateStopLight, StateStopMedium, StateStopHard:
		rt.Recovery = 0
	}
}
