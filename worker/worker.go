package worker

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/locomotion/character"
	"github.com/oomph-ac/locomotion/debug"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/oerror"
)

// InputSource returns the input for the given tick.
type InputSource func(tick int64) character.Input

// Config configures a Runner. The tick length is not configured here: the runner uses the
// character's, so hooks always see the dt the simulation integrates with.
type Config struct {
	// Input samples the host's input. A nil source feeds empty input.
	Input InputSource
	// Before runs ahead of every tick with the fixed tick length, for example to move platforms.
	Before func(dt float32)
	// After receives the result of every tick.
	After func(state character.PredictionState)
}

// Runner ticks a character at a fixed rate on a dedicated goroutine.
type Runner struct {
	char *character.Character
	conf Config
	dt   float32
	dbg  *debug.Debugger

	queue chan func(*character.Character)
}

// NewRunner returns a runner for c. Nothing runs until Run is called.
func NewRunner(c *character.Character, conf Config, dbg *debug.Debugger) (*Runner, error) {
	if c == nil {
		return nil, oerror.New(game.ErrorMissingCharacter)
	}
	if conf.Input == nil {
		conf.Input = func(int64) character.Input { return character.Input{} }
	}
	return &Runner{
		char:  c,
		conf:  conf,
		dt:    c.DeltaTime(),
		dbg:   dbg,
		queue: make(chan func(*character.Character), 64),
	}, nil
}

// Submit queues f to run on the runner goroutine before the next tick. Use it for anything that
// touches the character, such as reconciling against authoritative states. It blocks while the
// queue is full.
func (r *Runner) Submit(f func(c *character.Character)) {
	r.queue <- f
}

// Run ticks until ctx is cancelled and returns the context's error. A panic inside a tick is
// reported to Sentry and returned as an error.
func (r *Runner) Run(ctx context.Context) (err error) {
	defer func() {
		if v := recover(); v != nil {
			sentry.CurrentHub().Recover(v)
			err = oerror.New("runner stopped after panic: %v", v)
		}
	}()

	ticker := time.NewTicker(r.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.dbg.Notify(debug.ModeRunner, true, "stopped at tick %d", r.char.CurrentTick())
			return ctx.Err()
		case <-ticker.C:
			r.Step()
		}
	}
}

// DeltaTime returns the tick length passed to Config.Before.
func (r *Runner) DeltaTime() float32 { return r.dt }

// Interval returns the wall-clock period between ticks in Run.
func (r *Runner) Interval() time.Duration {
	return time.Duration(float64(r.dt) * float64(time.Second))
}

// Step drains the job queue and runs a single tick on the calling goroutine. It lets hosts that own
// their own loop, and tests, drive the runner without a ticker.
func (r *Runner) Step() character.PredictionState {
	r.drain()
	if r.conf.Before != nil {
		r.conf.Before(r.dt)
	}
	tick := r.char.CurrentTick() + 1
	state := r.char.Tick(r.conf.Input(tick))
	if r.conf.After != nil {
		r.conf.After(state)
	}
	return state
}

func (r *Runner) drain() {
	for {
		select {
		case f := <-r.queue:
			f(r.char)
		default:
			return
		}
	}
}
