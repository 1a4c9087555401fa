package character

import "github.com/oomph-ac/locomotion/debug"

// DebugView returns the simulator's view of the current state extended with the movement state. It
// is read-only.
func (c *Character) DebugView() *debug.Data {
	data := c.sim.DebugView(c.current.Locomotion)
	data.Set("tick", c.current.Tick)
	data.Set("state", c.current.Movement.State.String())
	data.Set("time_in_state", c.current.Movement.TimeInState)
	data.Set("crouched", c.current.Movement.State.Crouched())
	if c.current.Movement.Recovery > 0 {
		data.Set("recovery", c.current.Movement.Recovery)
	}
	data.Set("fall_distance", c.current.Movement.FallDistance)
	data.Set("checksum", c.current.Checksum())
	return data
}
