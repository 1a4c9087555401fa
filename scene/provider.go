package scene

import "github.com/go-gl/mathgl/mgl32"

// ColliderID identifies a collider within a World. The zero ID is never assigned.
type ColliderID uint32

// Filter narrows which colliders a query considers. Triggers are skipped unless IncludeTriggers is set.
type Filter struct {
	IncludeTriggers bool
	Ignore          []ColliderID
}

func (f Filter) accepts(c *Collider) bool {
	if c.Trigger && !f.IncludeTriggers {
		return false
	}
	for _, id := range f.Ignore {
		if id == c.ID {
			return false
		}
	}
	return true
}

// Hit describes the first contact of a sweep or ray.
type Hit struct {
	// Distance is how far the shape or ray travelled before contact.
	Distance float32
	// Point is the contact point on the collider's surface.
	Point mgl32.Vec3
	// Normal is the collider's outward surface normal at the contact.
	Normal   mgl32.Vec3
	Collider ColliderID
}

// Penetration describes an overlap between a capsule and a collider. Moving the capsule by
// Direction*Depth separates the two.
type Penetration struct {
	Collider  ColliderID
	Direction mgl32.Vec3
	Depth     float32
}

// Provider answers geometry queries against the static and dynamic colliders of a scene.
type Provider interface {
	// SweepCapsule moves the capsule along dir (normalized) for up to dist and returns the first contact.
	SweepCapsule(c Capsule, dir mgl32.Vec3, dist float32, f Filter) (Hit, bool)
	// Raycast casts a ray from origin along dir (normalized) for up to dist and returns the first contact.
	Raycast(origin, dir mgl32.Vec3, dist float32, f Filter) (Hit, bool)
	// Penetrations returns every collider the capsule currently overlaps.
	Penetrations(c Capsule, f Filter) []Penetration
}
