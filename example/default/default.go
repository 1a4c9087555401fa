package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/character"
	"github.com/oomph-ac/locomotion/debug"
	"github.com/oomph-ac/locomotion/grounding"
	"github.com/oomph-ac/locomotion/locomotion"
	"github.com/oomph-ac/locomotion/motor"
	"github.com/oomph-ac/locomotion/movestate"
	"github.com/oomph-ac/locomotion/scene"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/oomph-ac/locomotion/worker"
	"github.com/sirupsen/logrus"
	"github.com/tanema/gween/ease"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath  = flag.String("config", "", "settings file (toml, json or yaml); defaults are used when empty")
	writeConfig = flag.String("write-config", "", "write the default settings to this path and exit")
	logFile     = flag.String("log-file", "", "write logs to a rolling file instead of stderr")
	debugModes  = flag.String("debug", "state,reconcile", "comma separated debug modes, or \"all\"")
	ticks       = flag.Int64("ticks", 600, "number of ticks to simulate")
	realtime    = flag.Bool("realtime", false, "tick at the configured rate instead of as fast as possible")
)

// The following program walks a character through a small course of a floor, stairs, a steep ramp
// and a moving platform, and corrects it once as an authoritative server would.
func main() {
	flag.Parse()
	if *writeConfig != "" {
		if err := settings.SaveDefault(*writeConfig); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		return
	}

	log := newLogger()
	cfg, err := settings.Load(*configPath)
	if err != nil {
		log.Fatalf("unable to load settings: %v", err)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.Errorf("unable to initialise sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	dbg := debug.New(log, parseModes(log, *debugModes)...)
	w, platform := buildCourse(log)

	m, err := motor.New(w, cfg, dbg)
	if err != nil {
		log.Fatal(err)
	}
	detector, err := grounding.NewDetector(m, cfg, dbg)
	if err != nil {
		log.Fatal(err)
	}
	sim, err := locomotion.New(m, detector, cfg, dbg)
	if err != nil {
		log.Fatal(err)
	}
	machine, err := movestate.New(cfg, dbg)
	if err != nil {
		log.Fatal(err)
	}
	c, err := character.New(sim, machine, &logAnimator{log: log}, cfg, mgl32.Vec3{0, 0.02, 0}, 0, dbg)
	if err != nil {
		log.Fatal(err)
	}

	var runner *worker.Runner
	runner, err = worker.NewRunner(c, worker.Config{
		Input:  script,
		Before: func(dt float32) { platform.Tick(dt) },
		After: func(state character.PredictionState) {
			if state.Tick%60 == 0 {
				log.Infof("tick %d %s", state.Tick, debug.OrderedMapToString(c.DebugView()))
			}
			if state.Tick == 240 {
				runner.Submit(correctFrom(log, state.Tick-30))
			}
		},
	}, dbg)
	if err != nil {
		log.Fatal(err)
	}

	if !*realtime {
		for c.CurrentTick() < *ticks {
			runner.Step()
		}
		log.Infof("finished at %s", debug.OrderedMapToString(c.DebugView()))
		return
	}

	d := time.Duration(*ticks) * runner.Interval()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	if err := runner.Run(ctx); err != nil && ctx.Err() == nil {
		log.Errorf("runner stopped: %v", err)
	}
	log.Infof("finished at %s", debug.OrderedMapToString(c.DebugView()))
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	log.SetLevel(logrus.DebugLevel)
	if *logFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   *logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		})
	}
	return log
}

func parseModes(log *logrus.Logger, list string) []debug.Mode {
	var modes []debug.Mode
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		mode, ok := debug.ModeFromString(name)
		if !ok {
			log.Warnf("unknown debug mode %q", name)
			continue
		}
		modes = append(modes, mode)
	}
	return modes
}

// buildCourse lays out the course along +Z: flat ground, three stairs, a platform, a steep ramp
// facing back towards the start and a lift moving across the far end.
func buildCourse(log *logrus.Logger) (*scene.World, *scene.Mover) {
	w := scene.NewWorld()
	w.AddStatic(scene.NewBox(cube.Box(-40, -1, -40, 40, 0, 80)))
	for i := 0; i < 3; i++ {
		z := 6 + float32(i)*0.4
		w.AddStatic(scene.NewBox(cube.Box(-3, 0, z, 3, 0.25*float32(i+1), 30)))
	}
	w.AddStatic(scene.Ramp(mgl32.Vec3{6, 0, 20}, 4, 6, 0.5, 60, 180))
	lift := w.AddDynamic(scene.NewBox(cube.Box(-2, 0, 32, 2, 0.3, 36)))
	w.AddTrigger(scene.NewBox(cube.Box(-3, 0, 40, 3, 2, 42)))

	mover, err := scene.NewMover(w, lift, mgl32.Vec3{8, 0, 0}, 3, ease.InOutQuad)
	if err != nil {
		log.Fatal(err)
	}
	return w, mover
}

// script returns the input of a scripted run through the course.
func script(tick int64) character.Input {
	look := mgl32.Vec3{0, 0, 1}
	switch {
	case tick < 120:
		return character.Input{Move: mgl32.Vec2{0, 1}, Look: look}
	case tick < 200:
		return character.Input{Move: mgl32.Vec2{0, 1}, Look: look, Sprint: true}
	case tick < 205:
		return character.Input{Move: mgl32.Vec2{0, 1}, Look: look, Sprint: true, Jump: true}
	case tick < 300:
		return character.Input{Move: mgl32.Vec2{0, 1}, Look: look}
	case tick < 330:
		return character.Input{Look: look}
	case tick < 400:
		return character.Input{Move: mgl32.Vec2{1, 0}, Look: look, Crouch: true}
	case tick < 480:
		return character.Input{Move: mgl32.Vec2{1, 0.2}, Look: look, Sprint: true}
	}
	return character.Input{Look: look}
}

// correctFrom pretends the server saw the character half a metre to the left at tick, which forces
// a rollback and replay of everything since.
func correctFrom(log *logrus.Logger, tick int64) func(*character.Character) {
	return func(c *character.Character) {
		snap, ok := c.History(tick)
		if !ok {
			log.Warnf("tick %d already left history", tick)
			return
		}
		auth := snap.Prediction()
		auth.Position = auth.Position.Add(mgl32.Vec3{-0.5, 0, 0})
		res, err := c.Reconcile(auth)
		if err != nil {
			log.Errorf("reconcile failed: %v", err)
			return
		}
		log.Infof("reconciled tick %d: %s, replayed %d ticks", res.Tick, res.Verdict, res.Resimulated)
	}
}

// logAnimator stands in for an animation system. It logs requests and lets landings run on their
// recovery timers.
type logAnimator struct {
	movestate.NopAnimator
	log *logrus.Logger
}

func (a *logAnimator) Request(state string) {
	a.log.Debugf("animation %s", state)
}
