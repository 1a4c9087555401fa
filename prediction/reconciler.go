package prediction

import (
	"context"
	"fmt"

	"github.com/oomph-ac/locomotion/debug"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/oerror"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// StepFunc advances state by one tick of input. It must be deterministic.
type StepFunc[I, S any] func(state S, input I) S

// DivergenceFunc reports whether a predicted state is too far from the authoritative one.
type DivergenceFunc[S any] func(predicted, authoritative S) bool

// Verdict describes what a reconciliation did.
type Verdict uint8

const (
	// VerdictConfirmed means the prediction matched and history before the tick was pruned.
	VerdictConfirmed Verdict = iota
	// VerdictRolledBack means the prediction diverged and recorded inputs were replayed.
	VerdictRolledBack
	// VerdictStale means the tick is no longer, or not yet, in the state history.
	VerdictStale
)

func (v Verdict) String() string {
	switch v {
	case VerdictConfirmed:
		return "confirmed"
	case VerdictRolledBack:
		return "rolled_back"
	}
	return "stale"
}

// Reconciliation is the result of comparing a prediction against an authoritative state.
type Reconciliation[S any] struct {
	Tick    int64
	Verdict Verdict
	// Resimulated is the number of ticks replayed after a rollback.
	Resimulated int
	// State is the newest state after reconciliation. It is only set on rollback.
	State S
}

// Reconciler corrects predicted history with authoritative states. Inputs and states are the
// buffers the owning simulation records into every tick; the state at a tick is the state after that
// tick's input was applied.
type Reconciler[I, S any] struct {
	inputs   *Buffer[I]
	states   *Buffer[S]
	step     StepFunc[I, S]
	diverged DivergenceFunc[S]
	dbg      *debug.Debugger

	reconciles  metric.Int64Counter
	resimulated metric.Int64Counter
}

// NewReconciler returns a reconciler over the given buffers. Metrics go to the global OTel meter
// provider, which is a no-op unless the host installs one.
func NewReconciler[I, S any](inputs *Buffer[I], states *Buffer[S], step StepFunc[I, S], diverged DivergenceFunc[S], dbg *debug.Debugger) (*Reconciler[I, S], error) {
	if inputs == nil || states == nil {
		return nil, oerror.New(game.ErrorMissingBuffer)
	}
	if step == nil || diverged == nil {
		return nil, oerror.New(game.ErrorMissingStepFunction)
	}
	r := &Reconciler[I, S]{inputs: inputs, states: states, step: step, diverged: diverged, dbg: dbg}

	m := meter()
	var err error
	r.reconciles, err = m.Int64Counter(
		"prediction.reconciles",
		metric.WithDescription("Authoritative states compared against predictions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reconcile counter: %w", err)
	}
	r.resimulated, err = m.Int64Counter(
		"prediction.resimulated_ticks",
		metric.WithDescription("Ticks replayed after a rollback"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resimulation counter: %w", err)
	}
	return r, nil
}

// Reconcile compares the prediction for tick with authoritative. A match prunes history older than
// tick. A divergence overwrites the prediction, replays every recorded input after tick and prunes
// the same way. A tick missing from the state history is reported as stale, not as an error.
func (r *Reconciler[I, S]) Reconcile(tick int64, authoritative S) (Reconciliation[S], error) {
	res := Reconciliation[S]{Tick: tick}
	defer func() {
		r.reconciles.Add(context.Background(), 1, metric.WithAttributes(attribute.String("verdict", res.Verdict.String())))
	}()

	predicted, ok := r.states.TryGet(tick)
	if !ok {
		res.Verdict = VerdictStale
		r.dbg.Notify(debug.ModeReconcile, true, "tick %d is not in the state history", tick)
		return res, nil
	}
	if !r.diverged(predicted, authoritative) {
		res.Verdict = VerdictConfirmed
		r.prune(tick)
		return res, nil
	}

	res.Verdict = VerdictRolledBack
	if err := r.states.Add(tick, authoritative); err != nil {
		return res, err
	}
	state := authoritative
	newest, ok := r.inputs.NewestTick()
	for t := tick + 1; ok && t <= newest; t++ {
		input, found := r.inputs.TryGet(t)
		if !found {
			return res, oerror.New(game.ErrorMissingInput, t)
		}
		state = r.step(state, input)
		if err := r.states.Add(t, state); err != nil {
			return res, err
		}
		res.Resimulated++
	}
	res.State = state
	r.resimulated.Add(context.Background(), int64(res.Resimulated))
	r.dbg.Notify(debug.ModeReconcile, true, "rolled back to tick %d and replayed %d ticks", tick, res.Resimulated)
	r.prune(tick)
	return res, nil
}

// prune drops history older than tick from both buffers. The tick itself stays as the base for
// later rollbacks.
func (r *Reconciler[I, S]) prune(tick int64) {
	r.inputs.PruneBefore(tick)
	r.states.PruneBefore(tick)
}
