package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Mover drives a dynamic collider back and forth between its original placement and an offset. Each
// leg is a tween over duration seconds.
type Mover struct {
	world    *World
	id       ColliderID
	base     Shape
	offset   mgl32.Vec3
	duration float32
	curve    ease.TweenFunc

	tween   *gween.Tween
	forward bool
	current mgl32.Vec3
}

// NewMover returns a mover for the dynamic collider id.
func NewMover(w *World, id ColliderID, offset mgl32.Vec3, duration float32, curve ease.TweenFunc) (*Mover, error) {
	if w == nil {
		return nil, oerror.New("scene: mover requires a world")
	}
	c, ok := w.Collider(id)
	if !ok || !c.Dynamic {
		return nil, oerror.New("scene: collider %d is not a dynamic collider", id)
	}
	if duration <= 0 {
		return nil, oerror.New("scene: mover duration must be positive (got %v)", duration)
	}
	if curve == nil {
		curve = ease.Linear
	}
	return &Mover{
		world:    w,
		id:       id,
		base:     c.Shape,
		offset:   offset,
		duration: duration,
		curve:    curve,
		tween:    gween.New(0, 1, duration, curve),
		forward:  true,
	}, nil
}

// Tick advances the mover by dt, moves its collider and returns the displacement applied.
func (m *Mover) Tick(dt float32) mgl32.Vec3 {
	progress, finished := m.tween.Update(dt)
	if finished {
		m.forward = !m.forward
		if m.forward {
			m.tween = gween.New(0, 1, m.duration, m.curve)
		} else {
			m.tween = gween.New(1, 0, m.duration, m.curve)
		}
	}

	next := m.offset.Mul(progress)
	delta := next.Sub(m.current)
	m.current = next
	m.world.SetShape(m.id, m.base.Translate(next))
	return delta
}

// Offset returns the collider's current displacement from its original placement.
func (m *Mover) Offset() mgl32.Vec3 {
	return m.current
}
