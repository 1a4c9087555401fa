package character

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/assert"
	"github.com/oomph-ac/locomotion/debug"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/movestate"
	"github.com/oomph-ac/locomotion/oerror"
	"github.com/oomph-ac/locomotion/prediction"
	"github.com/oomph-ac/locomotion/settings"
)

// Character runs the full tick of one entity: the state machine decides, the simulator moves and
// the result is recorded for reconciliation. A Character must be ticked from a single goroutine.
// History lookups go through the ring buffers and may be made from any goroutine.
type Character struct {
	sim      *locomotion.Simulator
	machine  *movestate.Machine
	animator movestate.Animator
	cfg      settings.Prediction
	dbg      *debug.Debugger

	current Snapshot

	inputs     *prediction.Buffer[InputSnapshot]
	states     *prediction.Buffer[Snapshot]
	reconciler *prediction.Reconciler[InputSnapshot, Snapshot]
}

// New returns a character standing at pos facing yaw. A nil animator is replaced with
// movestate.NopAnimator.
func New(sim *locomotion.Simulator, machine *movestate.Machine, animator movestate.Animator, cfg settings.Locomotion, pos mgl32.Vec3, yaw float32, dbg *debug.Debugger) (*Character, error) {
	if sim == nil {
		return nil, oerror.New(game.ErrorMissingSimulator)
	}
	if machine == nil {
		return nil, oerror.New(game.ErrorMissingMachine)
	}
	if animator == nil {
		animator = movestate.NopAnimator{}
	}

	inputs, err := prediction.NewBuffer[InputSnapshot](cfg.Prediction.BufferCapacity)
	if err != nil {
		return nil, err
	}
	states, err := prediction.NewBuffer[Snapshot](cfg.Prediction.BufferCapacity)
	if err != nil {
		return nil, err
	}

	c := &Character{
		sim:      sim,
		machine:  machine,
		animator: animator,
		cfg:      cfg.Prediction,
		dbg:      dbg,
		inputs:   inputs,
		states:   states,
	}
	c.reconciler, err = prediction.NewReconciler(inputs, states, c.step, c.diverged, dbg)
	if err != nil {
		return nil, err
	}

	loc := sim.NewState(pos, yaw)
	c.current = Snapshot{Locomotion: loc, Movement: movestate.NewRuntime(pos.Y())}
	c.record(nil, c.current)
	return c, nil
}

// Tick runs one tick with the given input and returns the replicated result.
func (c *Character) Tick(in Input) PredictionState {
	in.AnimationExitAllowed = in.AnimationExitAllowed || c.animator.ExitAllowed()
	in.AnimationComplete = in.AnimationComplete || c.animator.Complete()

	rec := InputSnapshot{Tick: c.current.Tick + 1, Input: in}
	next, directive := c.advance(c.current, rec)
	if directive.Changed {
		c.animator.Request(next.Movement.State.String())
	}
	c.current = next
	c.record(&rec, next)
	return next.Prediction()
}

// Reconcile compares the prediction at auth.Tick against the authoritative state. Within tolerance
// the prediction is confirmed and older history pruned. Otherwise the authoritative transform,
// velocity and state replace the prediction and every recorded input since is replayed.
func (c *Character) Reconcile(auth PredictionState) (prediction.Reconciliation[Snapshot], error) {
	predicted, ok := c.states.TryGet(auth.Tick)
	corrected := predicted
	if ok {
		corrected = c.correct(predicted, auth)
	}
	res, err := c.reconciler.Reconcile(auth.Tick, corrected)
	if err != nil {
		return res, err
	}
	if res.Verdict == prediction.VerdictRolledBack {
		if c.dbg.Enabled(debug.ModeReconcile) {
			data := debug.NewData()
			data.Set("tick", auth.Tick)
			data.Set("predicted_pos", predicted.Locomotion.Body.Position)
			data.Set("auth_pos", auth.Position)
			data.Set("predicted_state", predicted.Movement.State.String())
			data.Set("auth_state", auth.State)
			data.Set("resimulated", res.Resimulated)
			c.dbg.Notify(debug.ModeReconcile, true, "prediction diverged %s", debug.OrderedMapToString(data))
		}
		c.current = res.State
	}
	return res, nil
}

// Rollback restores the snapshot recorded at tick and forgets everything after it. It returns false
// if the tick is no longer in history.
func (c *Character) Rollback(tick int64) bool {
	snap, ok := c.states.TryGet(tick)
	if !ok {
		return false
	}
	c.states.DiscardAfter(tick)
	c.inputs.DiscardAfter(tick)
	c.current = snap
	c.dbg.Notify(debug.ModeReconcile, true, "rolled back to tick %d", tick)
	return true
}

// Resimulate replays inputs on top of from and returns the final snapshot. Nothing is recorded and
// the animator is not notified.
func (c *Character) Resimulate(from Snapshot, inputs []InputSnapshot) Snapshot {
	for _, in := range inputs {
		from = c.step(from, in)
	}
	return from
}

// Snapshot returns the state after the most recent tick.
func (c *Character) Snapshot() Snapshot { return c.current }

// DeltaTime returns the fixed tick length the character is simulated with.
func (c *Character) DeltaTime() float32 { return c.sim.DeltaTime() }

// CurrentTick returns the most recently simulated tick.
func (c *Character) CurrentTick() int64 { return c.current.Tick }

// State returns the current movement state.
func (c *Character) State() movestate.State { return c.current.Movement.State }

// History returns the snapshot recorded at tick.
func (c *Character) History(tick int64) (Snapshot, bool) { return c.states.TryGet(tick) }

// RecordedInput returns the input recorded at tick.
func (c *Character) RecordedInput(tick int64) (InputSnapshot, bool) { return c.inputs.TryGet(tick) }

// Latest returns the replicated state of the newest recorded tick.
func (c *Character) Latest() (PredictionState, bool) {
	_, snap, ok := c.states.Latest()
	if !ok {
		return PredictionState{}, false
	}
	return snap.Prediction(), true
}

func (c *Character) record(in *InputSnapshot, snap Snapshot) {
	if in != nil {
		err := c.inputs.Add(in.Tick, *in)
		assert.IsTrue(err == nil, "recording input for tick %d: %v", in.Tick, err)
	}
	err := c.states.Add(snap.Tick, snap)
	assert.IsTrue(err == nil, "recording state for tick %d: %v", snap.Tick, err)
}

func (c *Character) step(s Snapshot, in InputSnapshot) Snapshot {
	next, _ := c.advance(s, in)
	return next
}

// advance is the whole tick as a function of the previous snapshot and the recorded input.
func (c *Character) advance(s Snapshot, in InputSnapshot) (Snapshot, movestate.Directive) {
	loc := &s.Locomotion
	move := locomotion.Input{MoveDirection: in.Input.Move}.HasMovement()
	sample := movestate.Sample{
		Grounded:         loc.Ground.IsGrounded,
		Walkable:         loc.Ground.IsWalkable,
		StepStable:       loc.StepStable,
		Sliding:          loc.Sliding.IsSliding,
		VerticalVelocity: loc.Motion.VerticalVelocity,
		HorizontalSpeed:  game.Horizontal(loc.Motion.HorizontalVelocity).Len(),
		Height:           loc.Body.Position.Y(),

		Move:   move,
		Sprint: in.Input.Sprint,
		Crouch: in.Input.Crouch,
		Jump:   in.Input.Jump,

		AnimationExitAllowed: in.Input.AnimationExitAllowed,
		AnimationComplete:    in.Input.AnimationComplete,
	}
	d := c.machine.Update(&s.Movement, sample)

	c.sim.Simulate(loc, locomotion.Input{
		MoveDirection:            in.Input.Move,
		LookDirection:            in.Input.Look,
		SprintHeld:               in.Input.Sprint,
		Crouch:                   d.Crouch,
		OverrideVertical:         d.Jump,
		VerticalVelocityOverride: d.JumpVelocity,
		SpeedModifier:            d.SpeedModifier,
		Halt:                     d.Halt,
	})
	s.Tick = in.Tick
	return s, d
}

// correct applies the authoritative fields of auth to a predicted snapshot.
func (c *Character) correct(predicted Snapshot, auth PredictionState) Snapshot {
	out := predicted
	c.sim.Correct(&out.Locomotion, auth.Position, auth.Yaw, auth.Velocity)
	if state, ok := movestate.StateFromString(auth.State); ok && state != out.Movement.State {
		out.Movement.Previous = out.Movement.State
		out.Movement.State = state
		out.Movement.TimeInState = 0
	}
	return out
}

func (c *Character) diverged(predicted, authoritative Snapshot) bool {
	p, a := predicted.Prediction(), authoritative.Prediction()
	if p.Checksum == a.Checksum {
		return false
	}
	return p.Position.Sub(a.Position).Len() > c.cfg.PositionTolerance ||
		p.Velocity.Sub(a.Velocity).Len() > c.cfg.VelocityTolerance ||
		p.State != a.State
}
