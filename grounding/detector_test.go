package grounding

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/motor"
	"github.com/oomph-ac/locomotion/scene"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDetector(t *testing.T, w *scene.World, strategy string) (*motor.Motor, *Detector) {
	t.Helper()
	cfg := settings.Default()
	cfg.Motor.Strategy = strategy
	m, err := motor.New(w, cfg, nil)
	require.NoError(t, err)
	d, err := NewDetector(m, cfg, nil)
	require.NoError(t, err)
	return m, d
}

// dropOnto moves a body down from pos until it rests on something.
func dropOnto(m *motor.Motor, pos mgl32.Vec3) motor.Body {
	b := motor.Body{Position: pos}
	m.Move(&b, mgl32.Vec3{0, -5, 0})
	return b
}

// perchOnEdge places a body whose capsule rests on the edge of the platform at x=0.2 while its centre
// hangs past it.
func perchOnEdge(m *motor.Motor) motor.Body {
	b := motor.Body{Position: mgl32.Vec3{0.5, -0.15, 0}}
	b.Ground = m.ProbeGround(b)
	return b
}

func TestNewDetectorRequiresMotor(t *testing.T) {
	_, err := NewDetector(nil, settings.Default(), nil)
	assert.Error(t, err)
}

func TestDetectFlatGround(t *testing.T) {
	w := scene.NewWorld()
	w.AddStatic(scene.NewBox(cube.Box(-50, -1, -50, 50, 0, 50)))
	m, d := newTestDetector(t, w, "capsule")
	var mem Memory
	assert.Equal(t, settings.Default().Slope.MaxAngle, d.MaxSlope())

	b := dropOnto(m, mgl32.Vec3{0, 1, 0})
	info := d.Detect(b, Airborne(), &mem, 1.0/60)
	assert.True(t, info.IsGrounded)
	assert.True(t, info.IsWalkable)
	assert.True(t, info.JustLanded)
	assert.False(t, info.JustLeftGround)
	assert.InDelta(t, 0, info.SlopeAngleBelow, 0.01)
	assert.True(t, info.IsWalkableBelow)
	assert.Equal(t, SourceCenter, info.BelowSource)
	assert.True(t, mem.Valid)

	again := d.Detect(b, info, &mem, 1.0/60)
	assert.False(t, again.JustLanded)

	b.Position = b.Position.Add(mgl32.Vec3{0, 3, 0})
	b.Ground = m.ProbeGround(b)
	air := d.Detect(b, again, &mem, 1.0/60)
	assert.False(t, air.IsGrounded)
	assert.False(t, air.IsWalkable)
	assert.True(t, air.JustLeftGround)
}

func TestDetectSteepRamp(t *testing.T) {
	w := scene.NewWorld()
	w.AddStatic(scene.Ramp(mgl32.Vec3{0, 0, -5}, 6, 10, 1, 60, 0))
	m, d := newTestDetector(t, w, "capsule")
	var mem Memory

	b := dropOnto(m, mgl32.Vec3{0, 8, -2.5})
	info := d.Detect(b, Airborne(), &mem, 1.0/60)
	assert.True(t, info.IsGrounded)
	assert.InDelta(t, 60, info.SlopeAngle, 0.5)
	assert.False(t, info.IsWalkable)
	assert.InDelta(t, 60, info.SlopeAngleBelow, 0.5)
	assert.False(t, info.IsWalkableBelow)
	assert.Equal(t, SourceCenter, info.BelowSource)
}

func TestDetectEdgeFallbacks(t *testing.T) {
	newWorld := func() *scene.World {
		w := scene.NewWorld()
		w.AddStatic(scene.NewBox(cube.Box(-5, -1, -5, 0.2, 0, 5)))
		return w
	}

	t.Run("capsule uses ring probes", func(t *testing.T) {
		m, d := newTestDetector(t, newWorld(), "capsule")
		var mem Memory
		b := perchOnEdge(m)
		require.True(t, b.Ground.Found)

		info := d.Detect(b, Airborne(), &mem, 1.0/60)
		assert.Equal(t, SourceRing, info.BelowSource)
		assert.InDelta(t, 0, info.SlopeAngleBelow, 0.01)
	})
	t.Run("controller falls back to the sweep", func(t *testing.T) {
		m, d := newTestDetector(t, newWorld(), "controller")
		var mem Memory
		b := perchOnEdge(m)
		require.True(t, b.Ground.Found)

		info := d.Detect(b, Airborne(), &mem, 1.0/60)
		assert.Equal(t, SourceSweep, info.BelowSource)
		assert.Greater(t, info.SlopeAngleBelow, float32(0))
	})
}

func TestDetectHoldsSlopeSample(t *testing.T) {
	for _, strategy := range []string{"capsule", "controller"} {
		t.Run(strategy, func(t *testing.T) {
			_, d := newTestDetector(t, scene.NewWorld(), strategy)
			ramp := scene.Ramp(mgl32.Vec3{}, 1, 1, 1, 60, 0).Normal()
			var mem Memory
			mem.Remember(ramp, 60)

			b := motor.Body{Position: mgl32.Vec3{0, 100, 0}}
			for i := 0; i < 2; i++ {
				info := d.Detect(b, Airborne(), &mem, 0.125)
				assert.Equal(t, SourceMemory, info.BelowSource)
				assert.InDelta(t, 60, info.SlopeAngleBelow, 0.01)
				assert.False(t, info.IsWalkableBelow)
			}

			info := d.Detect(b, Airborne(), &mem, 0.125)
			assert.Equal(t, SourceNone, info.BelowSource)
			assert.InDelta(t, 0, info.SlopeAngleBelow, 1e-4)
			assert.True(t, info.IsWalkableBelow)
			assert.False(t, mem.Valid)
		})
	}
}

func TestMemory(t *testing.T) {
	var mem Memory
	_, _, ok := mem.Recall(0.1)
	assert.False(t, ok)

	mem.Remember(mgl32.Vec3{0, 1, 0}, 0)
	_, _, ok = mem.Recall(0.25)
	assert.True(t, ok)
	mem.Reset()
	assert.False(t, mem.Valid)
}
