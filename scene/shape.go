package scene

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
)

// Shape is convex collision geometry.
type Shape interface {
	// BBox returns the axis-aligned bounds of the shape.
	BBox() cube.BBox
	// Closest returns the signed distance from p to the surface (negative inside) and the outward
	// surface normal nearest to p.
	Closest(p mgl32.Vec3) (float32, mgl32.Vec3)
	// Intercept returns the first point where the segment start-end enters the shape.
	Intercept(start, end mgl32.Vec3) (mgl32.Vec3, bool)
	// Translate returns the shape moved by v.
	Translate(v mgl32.Vec3) Shape
}

// Box is an axis-aligned box.
type Box struct {
	bb cube.BBox
}

// NewBox returns a box shape covering bb.
func NewBox(bb cube.BBox) Box {
	return Box{bb: bb}
}

// BoxFromCenter returns a box centred on center with the given half extents.
func BoxFromCenter(center, half mgl32.Vec3) Box {
	return Box{bb: cube.Box(
		center[0]-half[0], center[1]-half[1], center[2]-half[2],
		center[0]+half[0], center[1]+half[1], center[2]+half[2],
	)}
}

func (b Box) BBox() cube.BBox {
	return b.bb
}

func (b Box) Closest(p mgl32.Vec3) (float32, mgl32.Vec3) {
	center := b.bb.Min().Add(b.bb.Max()).Mul(0.5)
	half := b.bb.Max().Sub(b.bb.Min()).Mul(0.5)
	return boxDistance(p.Sub(center), half)
}

func (b Box) Intercept(start, end mgl32.Vec3) (mgl32.Vec3, bool) {
	result, ok := trace.BBoxIntercept(b.bb, start, end)
	if !ok {
		return mgl32.Vec3{}, false
	}
	return result.Position(), true
}

func (b Box) Translate(v mgl32.Vec3) Shape {
	return Box{bb: b.bb.Translate(v)}
}

// OrientedBox is a box rotated about its centre. Ramps and tilted platforms are built from it.
type OrientedBox struct {
	center mgl32.Vec3
	half   mgl32.Vec3
	rot    mgl32.Quat
	inv    mgl32.Quat
	bounds cube.BBox
}

// NewOrientedBox returns a box with the given centre, half extents and rotation.
func NewOrientedBox(center, half mgl32.Vec3, rot mgl32.Quat) OrientedBox {
	rot = rot.Normalize()
	o := OrientedBox{center: center, half: half, rot: rot, inv: rot.Conjugate()}

	lo := mgl32.Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32}
	hi := lo.Mul(-1)
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{half[0], half[1], half[2]}
		if i&1 != 0 {
			corner[0] = -corner[0]
		}
		if i&2 != 0 {
			corner[1] = -corner[1]
		}
		if i&4 != 0 {
			corner[2] = -corner[2]
		}
		w := center.Add(rot.Rotate(corner))
		for axis := 0; axis < 3; axis++ {
			lo[axis] = min(lo[axis], w[axis])
			hi[axis] = max(hi[axis], w[axis])
		}
	}
	o.bounds = cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2])
	return o
}

// Ramp returns a slab whose top face rises at angle degrees along the direction yaw faces. foot is
// the centre of the top face's lower edge, which touches the ground at foot's height.
func Ramp(foot mgl32.Vec3, width, length, thickness, angle, yaw float32) OrientedBox {
	rot := mgl32.QuatRotate(mgl32.DegToRad(yaw), mgl32.Vec3{0, 1, 0}).Mul(
		mgl32.QuatRotate(-mgl32.DegToRad(angle), mgl32.Vec3{1, 0, 0}),
	)
	half := mgl32.Vec3{width * 0.5, thickness * 0.5, length * 0.5}
	// Local offset from the lower edge of the top face to the box centre.
	offset := rot.Rotate(mgl32.Vec3{0, -half[1], half[2]})
	return NewOrientedBox(foot.Add(offset), half, rot)
}

// Normal returns the world-space normal of the box's top face.
func (o OrientedBox) Normal() mgl32.Vec3 {
	return o.rot.Rotate(mgl32.Vec3{0, 1, 0})
}

func (o OrientedBox) BBox() cube.BBox {
	return o.bounds
}

func (o OrientedBox) Closest(p mgl32.Vec3) (float32, mgl32.Vec3) {
	d, n := boxDistance(o.inv.Rotate(p.Sub(o.center)), o.half)
	return d, o.rot.Rotate(n)
}

func (o OrientedBox) Intercept(start, end mgl32.Vec3) (mgl32.Vec3, bool) {
	local := cube.Box(-o.half[0], -o.half[1], -o.half[2], o.half[0], o.half[1], o.half[2])
	result, ok := trace.BBoxIntercept(local, o.inv.Rotate(start.Sub(o.center)), o.inv.Rotate(end.Sub(o.center)))
	if !ok {
		return mgl32.Vec3{}, false
	}
	return o.center.Add(o.rot.Rotate(result.Position())), true
}

func (o OrientedBox) Translate(v mgl32.Vec3) Shape {
	moved := o
	moved.center = o.center.Add(v)
	moved.bounds = o.bounds.Translate(v)
	return moved
}

// boxDistance is the signed distance from q to a box of half extents h centred on the origin.
func boxDistance(q, h mgl32.Vec3) (float32, mgl32.Vec3) {
	d := mgl32.Vec3{math32.Abs(q[0]) - h[0], math32.Abs(q[1]) - h[1], math32.Abs(q[2]) - h[2]}
	outside := mgl32.Vec3{max(d[0], 0), max(d[1], 0), max(d[2], 0)}
	if l := outside.Len(); l > 0 {
		n := mgl32.Vec3{sign(q[0]) * outside[0], sign(q[1]) * outside[1], sign(q[2]) * outside[2]}
		return l, n.Mul(1 / l)
	}

	axis := 0
	if d[1] > d[axis] {
		axis = 1
	}
	if d[2] > d[axis] {
		axis = 2
	}
	var n mgl32.Vec3
	n[axis] = sign(q[axis])
	return d[axis], n
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
