package character

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/grounding"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/motor"
	"github.com/oomph-ac/locomotion/movestate"
	"github.com/oomph-ac/locomotion/prediction"
	"github.com/oomph-ac/locomotion/scene"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var walk = Input{Move: mgl32.Vec2{0, 1}, Look: mgl32.Vec3{0, 0, 1}}

type recordingAnimator struct {
	requests []string
}

func (a *recordingAnimator) ExitAllowed() bool { return false }
func (a *recordingAnimator) Complete() bool    { return false }
func (a *recordingAnimator) Request(state string) {
	a.requests = append(a.requests, state)
}

func testWorld() *scene.World {
	w := scene.NewWorld()
	w.AddStatic(scene.NewBox(cube.Box(-50, -1, -50, 50, 0, 50)))
	// A low step across the path of a character walking along +Z.
	w.AddStatic(scene.NewBox(cube.Box(-5, 0, 4, 5, 0.25, 50)))
	return w
}

func newTestCharacter(t *testing.T, anim movestate.Animator) *Character {
	t.Helper()
	cfg := settings.Default()
	m, err := motor.New(testWorld(), cfg, nil)
	require.NoError(t, err)
	d, err := grounding.NewDetector(m, cfg, nil)
	require.NoError(t, err)
	sim, err := locomotion.New(m, d, cfg, nil)
	require.NoError(t, err)
	machine, err := movestate.New(cfg, nil)
	require.NoError(t, err)
	c, err := New(sim, machine, anim, cfg, mgl32.Vec3{0, 0.02, 0}, 0, nil)
	require.NoError(t, err)
	return c
}

func run(c *Character, in Input, ticks int) {
	for i := 0; i < ticks; i++ {
		c.Tick(in)
	}
}

func TestNewValidates(t *testing.T) {
	cfg := settings.Default()
	m, err := motor.New(testWorld(), cfg, nil)
	require.NoError(t, err)
	d, err := grounding.NewDetector(m, cfg, nil)
	require.NoError(t, err)
	sim, err := locomotion.New(m, d, cfg, nil)
	require.NoError(t, err)
	machine, err := movestate.New(cfg, nil)
	require.NoError(t, err)

	_, err = New(nil, machine, nil, cfg, mgl32.Vec3{}, 0, nil)
	assert.Error(t, err)
	_, err = New(sim, nil, nil, cfg, mgl32.Vec3{}, 0, nil)
	assert.Error(t, err)

	bad := cfg
	bad.Prediction.BufferCapacity = 0
	_, err = New(sim, machine, nil, bad, mgl32.Vec3{}, 0, nil)
	assert.Error(t, err)
}

func TestTickRecordsHistory(t *testing.T) {
	c := newTestCharacter(t, nil)
	run(c, walk, 10)

	assert.EqualValues(t, 10, c.CurrentTick())
	_, ok := c.History(0)
	assert.True(t, ok, "spawn state is the base of history")
	_, ok = c.RecordedInput(0)
	assert.False(t, ok)

	in, ok := c.RecordedInput(10)
	require.True(t, ok)
	assert.Equal(t, walk.Move, in.Input.Move)

	latest, ok := c.Latest()
	require.True(t, ok)
	assert.EqualValues(t, 10, latest.Tick)
	assert.True(t, latest.Valid())
	assert.Equal(t, c.Snapshot().Prediction(), latest)
}

func TestWalkingEntersWalkState(t *testing.T) {
	anim := &recordingAnimator{}
	c := newTestCharacter(t, anim)
	run(c, walk, 30)

	assert.Equal(t, movestate.StateWalk, c.State())
	assert.Greater(t, c.Snapshot().Locomotion.Body.Position.Z(), float32(0.5))
	require.NotEmpty(t, anim.requests)
	assert.Equal(t, "walk", anim.requests[0])
}

func TestHeldJumpJumpsOnce(t *testing.T) {
	c := newTestCharacter(t, nil)
	run(c, Input{}, 5)
	require.Equal(t, movestate.StateIdle, c.State())

	jump := Input{Jump: true}
	state := c.Tick(jump)
	assert.Equal(t, "jump", state.State)
	assert.Greater(t, state.Position.Y(), float32(0.1))

	peak := state.Position.Y()
	for i := 0; i < 150; i++ {
		state = c.Tick(jump)
		peak = max(peak, state.Position.Y())
	}
	assert.InDelta(t, 1.2, peak, 0.15)
	assert.True(t, state.IsGrounded)
	assert.Equal(t, "idle", state.State, "a held button must not jump again")
	assert.InDelta(t, 0.02, state.Position.Y(), 0.01)
}

func TestReplayIsIdempotent(t *testing.T) {
	c := newTestCharacter(t, nil)
	script := []struct {
		in    Input
		ticks int
	}{
		{walk, 40},
		{Input{Move: mgl32.Vec2{1, 1}, Look: mgl32.Vec3{0, 0, 1}, Sprint: true}, 30},
		{Input{Jump: true, Move: mgl32.Vec2{0, 1}, Look: mgl32.Vec3{0, 0, 1}}, 10},
		{Input{Look: mgl32.Vec3{0, 0, 1}}, 30},
		{Input{Crouch: true, Move: mgl32.Vec2{-1, 0}, Look: mgl32.Vec3{0, 0, 1}}, 40},
	}
	for _, s := range script {
		run(c, s.in, s.ticks)
	}
	require.EqualValues(t, 150, c.CurrentTick())

	from, ok := c.History(40)
	require.True(t, ok)
	var inputs []InputSnapshot
	for tick := int64(41); tick <= 150; tick++ {
		in, ok := c.RecordedInput(tick)
		require.True(t, ok, "tick %d", tick)
		inputs = append(inputs, in)
	}

	replayed := c.Resimulate(from, inputs)
	assert.Equal(t, c.Snapshot(), replayed)
	assert.Equal(t, c.Snapshot().Checksum(), replayed.Checksum())

	again := c.Resimulate(from, inputs)
	assert.Equal(t, replayed.Checksum(), again.Checksum())
}

func TestReconcileConfirmsMatchingState(t *testing.T) {
	c := newTestCharacter(t, nil)
	run(c, walk, 20)

	snap, ok := c.History(10)
	require.True(t, ok)
	res, err := c.Reconcile(snap.Prediction())
	require.NoError(t, err)
	assert.Equal(t, prediction.VerdictConfirmed, res.Verdict)

	_, ok = c.History(9)
	assert.False(t, ok, "history before the confirmed tick is pruned")
	_, ok = c.History(10)
	assert.True(t, ok)
	assert.EqualValues(t, 20, c.CurrentTick())
}

func TestReconcileWithinToleranceConfirms(t *testing.T) {
	c := newTestCharacter(t, nil)
	run(c, walk, 20)
	before := c.Snapshot()

	snap, _ := c.History(10)
	auth := snap.Prediction()
	auth.Position = auth.Position.Add(mgl32.Vec3{0.001, 0, 0})
	res, err := c.Reconcile(auth)
	require.NoError(t, err)
	assert.Equal(t, prediction.VerdictConfirmed, res.Verdict)
	assert.Equal(t, before, c.Snapshot())
}

func TestReconcileRollsBack(t *testing.T) {
	c := newTestCharacter(t, nil)
	run(c, walk, 30)
	before := c.Snapshot().Locomotion.Body.Position

	snap, ok := c.History(10)
	require.True(t, ok)
	auth := snap.Prediction()
	auth.Position = auth.Position.Add(mgl32.Vec3{1, 0, 0})

	res, err := c.Reconcile(auth)
	require.NoError(t, err)
	assert.Equal(t, prediction.VerdictRolledBack, res.Verdict)
	assert.Equal(t, 20, res.Resimulated)
	assert.EqualValues(t, 30, c.CurrentTick())

	after := c.Snapshot().Locomotion.Body.Position
	assert.InDelta(t, before.X()+1, after.X(), 1e-3)
	assert.InDelta(t, before.Z(), after.Z(), 1e-3)

	newest, ok := c.History(30)
	require.True(t, ok)
	assert.Equal(t, c.Snapshot(), newest)
}

func TestReconcileStaleTick(t *testing.T) {
	c := newTestCharacter(t, nil)
	run(c, walk, 5)
	before := c.Snapshot()

	res, err := c.Reconcile(PredictionState{Tick: 99})
	require.NoError(t, err)
	assert.Equal(t, prediction.VerdictStale, res.Verdict)
	assert.Equal(t, before, c.Snapshot())
}

func TestRollback(t *testing.T) {
	c := newTestCharacter(t, nil)
	run(c, walk, 20)
	at10, _ := c.History(10)

	require.True(t, c.Rollback(10))
	assert.EqualValues(t, 10, c.CurrentTick())
	assert.Equal(t, at10, c.Snapshot())
	_, ok := c.RecordedInput(11)
	assert.False(t, ok)

	state := c.Tick(walk)
	assert.EqualValues(t, 11, state.Tick)
	assert.False(t, c.Rollback(99))
}

func TestChecksums(t *testing.T) {
	c := newTestCharacter(t, nil)
	run(c, walk, 3)

	a := c.Snapshot()
	b := a
	assert.Equal(t, a.Checksum(), b.Checksum())
	b.Locomotion.Body.Position[0] += 1e-6
	assert.NotEqual(t, a.Checksum(), b.Checksum())

	p := a.Prediction()
	assert.True(t, p.Valid())
	p.State = "fall"
	assert.False(t, p.Valid())
}

func TestDebugView(t *testing.T) {
	c := newTestCharacter(t, nil)
	run(c, walk, 10)

	data := c.DebugView()
	state, ok := data.Get("state")
	require.True(t, ok)
	assert.Equal(t, "walk", state)
	tick, ok := data.Get("tick")
	require.True(t, ok)
	assert.EqualValues(t, 10, tick)
	_, ok = data.Get("pos")
	assert.True(t, ok)
	crouched, ok := data.Get("crouched")
	require.True(t, ok)
	assert.Equal(t, false, crouched)
	assert.EqualValues(t, 10, c.CurrentTick(), "the view does not advance the character")

	run(c, Input{Crouch: true}, 40)
	crouched, _ = c.DebugView().Get("crouched")
	assert.Equal(t, true, crouched)
	assert.Equal(t, movestate.StateCrouchIdle, c.State())
}
