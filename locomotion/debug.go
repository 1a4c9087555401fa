package locomotion

import "github.com/oomph-ac/locomotion/debug"

// DebugView returns a read-only view of the state for overlays and logs. Calling it has no effect on
// the simulation.
func (s *Simulator) DebugView(state RuntimeState) *debug.Data {
	data := debug.NewData()
	data.Set("pos", state.Body.Position)
	data.Set("yaw", state.Body.Yaw)
	data.Set("vel", state.Motion.Velocity)
	data.Set("flags", state.Motion.CollisionFlags.String())
	state.Ground.Debug(data)
	data.Set("sliding", state.Sliding.IsSliding)
	if state.Sliding.IsSliding {
		data.Set("slide_time", state.Sliding.SlidingTime)
		data.Set("slide_dir", state.Sliding.SlideDirection)
		data.Set("slide_speed", SlideSpeed(s.cfg.Slope, state.Ground.SlopeAngleBelow, state.Sliding.SlidingTime))
	}
	data.Set("step_stable", state.StepStable)
	return data
}
