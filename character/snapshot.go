package character

import (
	"encoding/binary"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/movestate"
	"github.com/zeebo/xxh3"
)

// Input is what the host samples from its input devices on a tick.
type Input struct {
	Move mgl32.Vec2
	Look mgl32.Vec3

	Sprint bool
	Crouch bool
	Jump   bool

	// AnimationExitAllowed and AnimationComplete are copied from the animator before the tick runs,
	// so that a replay of the tick sees the same signals.
	AnimationExitAllowed bool
	AnimationComplete    bool
}

// InputSnapshot is the input recorded for one tick.
type InputSnapshot struct {
	Tick  int64
	Input Input
}

// Snapshot is the complete mutable state of a character after a tick. It contains no references,
// so copying it is enough to restore the character later.
type Snapshot struct {
	Tick       int64
	Locomotion locomotion.RuntimeState
	Movement   movestate.Runtime
}

// Checksum returns an xxh3 digest of every field of the snapshot. Two snapshots have the same
// checksum exactly when a replay reproduced the tick bit for bit.
func (s Snapshot) Checksum() uint64 {
	buf, err := binary.Append(make([]byte, 0, binary.Size(s)), binary.LittleEndian, s)
	if err != nil {
		panic(err)
	}
	return xxh3.Hash(buf)
}

// Prediction returns the replicated part of the snapshot.
func (s Snapshot) Prediction() PredictionState {
	p := PredictionState{
		Tick:       s.Tick,
		Position:   s.Locomotion.Body.Position,
		Yaw:        s.Locomotion.Body.Yaw,
		Velocity:   s.Locomotion.Motion.Velocity,
		State:      s.Movement.State.String(),
		IsGrounded: s.Locomotion.Ground.IsGrounded,
	}
	p.Checksum = p.digest()
	return p
}

// PredictionState is the part of a tick's result that an authority replicates and a predicting
// client compares against.
type PredictionState struct {
	Tick       int64
	Position   mgl32.Vec3
	Yaw        float32
	Velocity   mgl32.Vec3
	State      string
	IsGrounded bool

	// Checksum is the digest of the fields above. Equal checksums let a reconciler skip the
	// tolerance comparison.
	Checksum uint64
}

func (p PredictionState) digest() uint64 {
	h := xxh3.New()
	_ = binary.Write(h, binary.LittleEndian, struct {
		Tick       int64
		Position   mgl32.Vec3
		Yaw        float32
		Velocity   mgl32.Vec3
		IsGrounded bool
	}{p.Tick, p.Position, p.Yaw, p.Velocity, p.IsGrounded})
	_, _ = h.WriteString(p.State)
	return h.Sum64()
}

// Valid reports whether the checksum matches the fields, which catches states that were edited
// after they were produced.
func (p PredictionState) Valid() bool {
	return p.Checksum == p.digest()
}
