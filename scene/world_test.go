package scene

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

var down = mgl32.Vec3{0, -1, 0}

func floorWorld() (*World, ColliderID) {
	w := NewWorld()
	id := w.AddStatic(NewBox(cube.Box(-50, -1, -50, 50, 0, 50)))
	return w, id
}

func standingCapsule(feet mgl32.Vec3) Capsule {
	const r, h = 0.35, 1.8
	return Capsule{
		Bottom: feet.Add(mgl32.Vec3{0, r, 0}),
		Top:    feet.Add(mgl32.Vec3{0, h - r, 0}),
		Radius: r,
	}
}

func TestBoxClosest(t *testing.T) {
	b := NewBox(cube.Box(0, 0, 0, 1, 1, 1))

	d, n := b.Closest(mgl32.Vec3{0.5, 3, 0.5})
	assert.InDelta(t, 2, d, 1e-5)
	assert.True(t, n.ApproxEqual(mgl32.Vec3{0, 1, 0}))

	d, n = b.Closest(mgl32.Vec3{0.5, 0.9, 0.5})
	assert.InDelta(t, -0.1, d, 1e-5)
	assert.True(t, n.ApproxEqual(mgl32.Vec3{0, 1, 0}))

	d, _ = b.Closest(mgl32.Vec3{2, 2, 0.5})
	assert.InDelta(t, math32.Sqrt(2), d, 1e-5)
}

func TestSweepCapsuleOntoFloor(t *testing.T) {
	w, floor := floorWorld()
	c := standingCapsule(mgl32.Vec3{0, 1, 0})

	hit, ok := w.SweepCapsule(c, down, 2, Filter{})
	require.True(t, ok)
	assert.InDelta(t, 1, hit.Distance, 1e-3)
	assert.InDelta(t, 1, hit.Normal.Y(), 1e-4)
	assert.InDelta(t, 0, hit.Point.Y(), 1e-3)
	assert.Equal(t, floor, hit.Collider)

	_, ok = w.SweepCapsule(c, down, 0.5, Filter{})
	assert.False(t, ok, "floor is out of reach")

	_, ok = w.SweepCapsule(c, mgl32.Vec3{0, 1, 0}, 2, Filter{})
	assert.False(t, ok, "moving away never hits")
}

func TestSweepAlongFloorDoesNotSnag(t *testing.T) {
	w, _ := floorWorld()
	c := standingCapsule(mgl32.Vec3{0, 0.01, 0})

	_, ok := w.SweepCapsule(c, mgl32.Vec3{1, 0, 0}, 3, Filter{})
	assert.False(t, ok)
}

func TestSweepHitsWall(t *testing.T) {
	w, _ := floorWorld()
	wall := w.AddStatic(NewBox(cube.Box(2, 0, -5, 3, 3, 5)))
	c := standingCapsule(mgl32.Vec3{0, 0.02, 0})

	hit, ok := w.SweepCapsule(c, mgl32.Vec3{1, 0, 0}, 5, Filter{})
	require.True(t, ok)
	assert.Equal(t, wall, hit.Collider)
	assert.InDelta(t, 2-0.35, hit.Distance, 1e-3)
	assert.InDelta(t, -1, hit.Normal.X(), 1e-4)
}

func TestRaycastRampNormal(t *testing.T) {
	w := NewWorld()
	ramp := Ramp(mgl32.Vec3{}, 4, 4, 0.5, 30, 0)
	w.AddStatic(ramp)

	hit, ok := w.Raycast(mgl32.Vec3{0, 5, 1}, down, 10, Filter{})
	require.True(t, ok)
	assert.InDelta(t, 5-math32.Tan(mgl32.DegToRad(30)), hit.Distance, 1e-3)

	angle := mgl32.RadToDeg(math32.Acos(hit.Normal.Dot(mgl32.Vec3{0, 1, 0})))
	assert.InDelta(t, 30, angle, 0.05)
	assert.True(t, hit.Normal.ApproxEqualThreshold(ramp.Normal(), 1e-4))
	assert.Less(t, hit.Normal.Z(), float32(0), "a ramp rising towards +Z faces -Z")
}

func TestPenetrations(t *testing.T) {
	w, floor := floorWorld()
	c := standingCapsule(mgl32.Vec3{0, -0.1, 0})

	pens := w.Penetrations(c, Filter{})
	require.Len(t, pens, 1)
	assert.Equal(t, floor, pens[0].Collider)
	assert.InDelta(t, 0.1, pens[0].Depth, 1e-3)
	assert.InDelta(t, 1, pens[0].Direction.Y(), 1e-4)

	assert.Empty(t, w.Penetrations(standingCapsule(mgl32.Vec3{0, 0.05, 0}), Filter{}))
}

func TestFilterExcludesTriggersAndIgnored(t *testing.T) {
	w := NewWorld()
	trigger := w.AddTrigger(NewBox(cube.Box(-1, -1, -1, 1, 0, 1)))

	_, ok := w.Raycast(mgl32.Vec3{0, 2, 0}, down, 5, Filter{})
	assert.False(t, ok)

	hit, ok := w.Raycast(mgl32.Vec3{0, 2, 0}, down, 5, Filter{IncludeTriggers: true})
	require.True(t, ok)
	assert.Equal(t, trigger, hit.Collider)

	solid := w.AddStatic(NewBox(cube.Box(-1, -3, -1, 1, -2, 1)))
	hit, ok = w.Raycast(mgl32.Vec3{0, 2, 0}, down, 10, Filter{IncludeTriggers: true, Ignore: []ColliderID{trigger}})
	require.True(t, ok)
	assert.Equal(t, solid, hit.Collider)
}

func TestWorldMutation(t *testing.T) {
	w := NewWorld()
	static := w.AddStatic(NewBox(cube.Box(0, 0, 0, 1, 1, 1)))
	dynamic := w.AddDynamic(NewBox(cube.Box(0, 0, 0, 1, 1, 1)))

	assert.False(t, w.SetShape(static, NewBox(cube.Box(5, 5, 5, 6, 6, 6))))
	assert.True(t, w.SetShape(dynamic, NewBox(cube.Box(5, 5, 5, 6, 6, 6))))
	c, ok := w.Collider(dynamic)
	require.True(t, ok)
	assert.Equal(t, float32(5), c.Shape.BBox().Min().X())

	assert.True(t, w.Remove(static))
	assert.False(t, w.Remove(static))
	assert.Equal(t, 1, w.Len())
}

func TestMoverPingPong(t *testing.T) {
	w := NewWorld()
	id := w.AddDynamic(NewBox(cube.Box(0, 0, 0, 2, 0.5, 2)))
	m, err := NewMover(w, id, mgl32.Vec3{0, 2, 0}, 1, ease.Linear)
	require.NoError(t, err)

	delta := m.Tick(0.5)
	assert.InDelta(t, 1, delta.Y(), 1e-4)
	m.Tick(0.5)
	assert.InDelta(t, 2, m.Offset().Y(), 1e-4)

	m.Tick(0.5)
	assert.InDelta(t, 1, m.Offset().Y(), 1e-4)
	c, _ := w.Collider(id)
	assert.InDelta(t, 1, c.Shape.BBox().Min().Y(), 1e-4)

	_, err = NewMover(w, w.AddStatic(NewBox(cube.Box(0, 0, 0, 1, 1, 1))), mgl32.Vec3{}, 1, nil)
	assert.Error(t, err)
}
