package scene

import (
	"slices"
	"sync"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
)

const (
	// broadPhaseMargin pads query bounds so touching geometry is never culled.
	broadPhaseMargin = float32(0.05)
	// maxSweepIterations bounds the conservative advancement loop of a single sweep.
	maxSweepIterations = 32
	// rayNormalBackoff is how far before a ray hit the surface normal is sampled.
	rayNormalBackoff = float32(1e-3)
)

// Collider is a shape registered in a World.
type Collider struct {
	ID    ColliderID
	Shape Shape
	// Trigger colliders are volumes that never block movement.
	Trigger bool
	// Dynamic colliders may be moved between ticks with SetShape.
	Dynamic bool
}

// World is an in-memory Provider over a flat list of colliders. Queries take a read lock, so a world
// may be shared by every entity of a scene while dynamic colliders are moved between ticks.
type World struct {
	mu        sync.RWMutex
	colliders []*Collider
	nextID    ColliderID
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{}
}

// AddStatic adds a blocking collider that never moves.
func (w *World) AddStatic(s Shape) ColliderID {
	return w.add(&Collider{Shape: s})
}

// AddDynamic adds a blocking collider that may be moved with SetShape.
func (w *World) AddDynamic(s Shape) ColliderID {
	return w.add(&Collider{Shape: s, Dynamic: true})
}

// AddTrigger adds a non-blocking trigger volume.
func (w *World) AddTrigger(s Shape) ColliderID {
	return w.add(&Collider{Shape: s, Trigger: true})
}

func (w *World) add(c *Collider) ColliderID {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	c.ID = w.nextID
	w.colliders = append(w.colliders, c)
	return c.ID
}

// Remove removes a collider. It returns false if no collider has the ID.
func (w *World) Remove(id ColliderID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, c := range w.colliders {
		if c.ID == id {
			w.colliders = slices.Delete(w.colliders, i, i+1)
			return true
		}
	}
	return false
}

// SetShape replaces the shape of a dynamic collider. It returns false for unknown or static colliders.
func (w *World) SetShape(id ColliderID, s Shape) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, c := range w.colliders {
		if c.ID == id {
			if !c.Dynamic {
				return false
			}
			c.Shape = s
			return true
		}
	}
	return false
}

// Collider returns a copy of the collider with the ID.
func (w *World) Collider(id ColliderID) (Collider, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, c := range w.colliders {
		if c.ID == id {
			return *c, true
		}
	}
	return Collider{}, false
}

// Len returns the number of colliders in the world.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.colliders)
}

// gather appends every collider accepted by f whose bounds intersect bb. The caller must hold the read lock.
func (w *World) gather(bb cube.BBox, f Filter, dst *[]*Collider) {
	bb = bb.Grow(broadPhaseMargin)
	for _, c := range w.colliders {
		if f.accepts(c) && c.Shape.BBox().IntersectsWith(bb) {
			*dst = append(*dst, c)
		}
	}
}

func (w *World) SweepCapsule(c Capsule, dir mgl32.Vec3, dist float32, f Filter) (Hit, bool) {
	if dist <= 0 {
		return Hit{}, false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()

	candidates := getCandidates()
	defer putCandidates(candidates)
	w.gather(c.BBox().Extend(dir.Mul(dist)), f, candidates)

	var (
		best  Hit
		found bool
	)
	for _, col := range *candidates {
		hit, ok := sweepShape(c, dir, dist, col.Shape)
		if ok && (!found || hit.Distance < best.Distance) {
			hit.Collider = col.ID
			best, found = hit, true
		}
	}
	return best, found
}

func (w *World) Raycast(origin, dir mgl32.Vec3, dist float32, f Filter) (Hit, bool) {
	if dist <= 0 {
		return Hit{}, false
	}
	w.mu.RLock()
	defer w.mu.RUnlock()

	end := origin.Add(dir.Mul(dist))
	bounds := cube.Box(
		min(origin[0], end[0]), min(origin[1], end[1]), min(origin[2], end[2]),
		max(origin[0], end[0]), max(origin[1], end[1]), max(origin[2], end[2]),
	)
	candidates := getCandidates()
	defer putCandidates(candidates)
	w.gather(bounds, f, candidates)

	var (
		best  Hit
		found bool
	)
	for _, col := range *candidates {
		pos, ok := col.Shape.Intercept(origin, end)
		if !ok {
			continue
		}
		d := pos.Sub(origin).Len()
		if found && d >= best.Distance {
			continue
		}
		_, n := col.Shape.Closest(pos.Sub(dir.Mul(rayNormalBackoff)))
		best, found = Hit{Distance: d, Point: pos, Normal: n, Collider: col.ID}, true
	}
	return best, found
}

func (w *World) Penetrations(c Capsule, f Filter) []Penetration {
	w.mu.RLock()
	defer w.mu.RUnlock()

	candidates := getCandidates()
	defer putCandidates(candidates)
	w.gather(c.BBox(), f, candidates)

	var out []Penetration
	for _, col := range *candidates {
		d, n, _ := capsuleDistance(c, col.Shape)
		if d < -game.PenetrationSlop {
			out = append(out, Penetration{Collider: col.ID, Direction: n, Depth: -d})
		}
	}
	return out
}

// sweepShape finds the first contact of the capsule moving along dir against a single convex shape.
// The separation along the path is convex, so each step to the root of its tangent never overshoots
// the first contact.
func sweepShape(c Capsule, dir mgl32.Vec3, maxDist float32, s Shape) (Hit, bool) {
	var t float32
	for i := 0; i < maxSweepIterations; i++ {
		d, n, p := capsuleDistance(c.Translate(dir.Mul(t)), s)
		if d <= game.ContactEpsilon {
			if i == 0 && n.Dot(dir) >= 0 {
				// Touching at the start while moving away or along the surface.
				return Hit{}, false
			}
			return Hit{Distance: t, Point: p, Normal: n}, true
		}
		approach := -n.Dot(dir)
		if approach <= 1e-6 {
			return Hit{}, false
		}
		t += d / approach
		if t > maxDist {
			return Hit{}, false
		}
	}
	_, n, p := capsuleDistance(c.Translate(dir.Mul(t)), s)
	return Hit{Distance: t, Point: p, Normal: n}, true
}
