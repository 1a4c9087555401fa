package grounding

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

// Memory holds the last slope sample a probe found, so a brief gap in probe coverage (crossing a
// seam, stepping over a crack) does not read as flat ground.
type Memory struct {
	Normal mgl32.Vec3
	Angle  float32
	// Age is the time in seconds since the sample was taken.
	Age   float32
	Valid bool
}

// Remember stores a fresh sample.
func (m *Memory) Remember(normal mgl32.Vec3, angle float32) {
	m.Normal, m.Angle, m.Age, m.Valid = normal, angle, 0, true
}

// Recall ages the sample by dt and returns it if it is still within the hold window.
func (m *Memory) Recall(dt float32) (mgl32.Vec3, float32, bool) {
	if !m.Valid {
		return mgl32.Vec3{}, 0, false
	}
	m.Age += dt
	if m.Age > game.SlopeHoldWindow {
		m.Valid = false
		return mgl32.Vec3{}, 0, false
	}
	return m.Normal, m.Angle, true
}

// Reset drops the sample.
func (m *Memory) Reset() {
	*m = Memory{}
}
