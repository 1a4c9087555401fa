package scene

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
)

// Capsule is a swept sphere: every point within Radius of the segment Bottom-Top.
type Capsule struct {
	Bottom, Top mgl32.Vec3
	Radius      float32
}

// Translate returns the capsule moved by v.
func (c Capsule) Translate(v mgl32.Vec3) Capsule {
	return Capsule{Bottom: c.Bottom.Add(v), Top: c.Top.Add(v), Radius: c.Radius}
}

// Center returns the midpoint of the capsule's segment.
func (c Capsule) Center() mgl32.Vec3 {
	return c.Bottom.Add(c.Top).Mul(0.5)
}

// BBox returns the axis-aligned bounds of the capsule.
func (c Capsule) BBox() cube.BBox {
	r := c.Radius
	return cube.Box(
		min(c.Bottom[0], c.Top[0])-r, min(c.Bottom[1], c.Top[1])-r, min(c.Bottom[2], c.Top[2])-r,
		max(c.Bottom[0], c.Top[0])+r, max(c.Bottom[1], c.Top[1])+r, max(c.Bottom[2], c.Top[2])+r,
	)
}

func (c Capsule) pointAt(t float32) mgl32.Vec3 {
	return c.Bottom.Add(c.Top.Sub(c.Bottom).Mul(t))
}

// capsuleSearchIterations bounds the ternary search for the closest point on the capsule's segment.
const capsuleSearchIterations = 28

// capsuleDistance returns the signed distance between the capsule's surface and the shape, the
// shape's outward normal at the closest point and that point on the shape's surface. The signed
// distance of a convex shape is convex, so its minimum along the segment is found by ternary search.
func capsuleDistance(c Capsule, s Shape) (float32, mgl32.Vec3, mgl32.Vec3) {
	eval := func(t float32) (float32, mgl32.Vec3, mgl32.Vec3) {
		p := c.pointAt(t)
		d, n := s.Closest(p)
		return d, n, p
	}

	bestT := float32(0)
	if c.Top.Sub(c.Bottom).LenSqr() > 1e-12 {
		lo, hi := float32(0), float32(1)
		for range capsuleSearchIterations {
			m1 := lo + (hi-lo)/3
			m2 := hi - (hi-lo)/3
			d1, _, _ := eval(m1)
			d2, _, _ := eval(m2)
			if d1 <= d2 {
				hi = m2
			} else {
				lo = m1
			}
		}
		bestT = (lo + hi) * 0.5

		// The ends are checked explicitly, a flat distance profile lets the search stop anywhere.
		bd, _, _ := eval(bestT)
		if d0, _, _ := eval(0); d0 <= bd {
			bestT, bd = 0, d0
		}
		if d1, _, _ := eval(1); d1 < bd {
			bestT = 1
		}
	}

	d, n, p := eval(bestT)
	return d - c.Radius, n, p.Sub(n.Mul(d))
}
