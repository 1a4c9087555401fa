package debug

import (
	"fmt"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Mode is a bit in the debugger's mode mask. Each mode gates one family of trace messages.
type Mode uint32

const (
	ModeMotor Mode = 1 << iota
	ModeGround
	ModeSlide
	ModeLocomotion
	ModeState
	ModeReconcile
	ModeRunner

	ModeAll = ModeMotor | ModeGround | ModeSlide | ModeLocomotion | ModeState | ModeReconcile | ModeRunner
)

var modeNames = map[Mode]string{
	ModeMotor:      "motor",
	ModeGround:     "ground",
	ModeSlide:      "slide",
	ModeLocomotion: "locomotion",
	ModeState:      "state",
	ModeReconcile:  "reconcile",
	ModeRunner:     "runner",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", uint32(m))
}

// ModeFromString returns the mode with the given name.
func ModeFromString(name string) (Mode, bool) {
	if name == "all" {
		return ModeAll, true
	}
	for m, n := range modeNames {
		if n == name {
			return m, true
		}
	}
	return 0, false
}

// Debugger writes trace messages for enabled modes. A nil *Debugger is valid and discards everything,
// so components can hold one unconditionally.
type Debugger struct {
	log   *logrus.Logger
	modes atomic.Uint32
}

// New returns a debugger logging to log with the given modes enabled.
func New(log *logrus.Logger, modes ...Mode) *Debugger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	d := &Debugger{log: log}
	for _, m := range modes {
		d.Set(m, true)
	}
	return d
}

// Notify logs the formatted message at debug level if the mode is enabled and cond holds.
func (d *Debugger) Notify(mode Mode, cond bool, format string, args ...any) {
	if !cond || !d.Enabled(mode) {
		return
	}
	d.log.Debugf("["+mode.String()+"] "+format, args...)
}

// Enabled reports whether every bit of mode is enabled.
func (d *Debugger) Enabled(mode Mode) bool {
	if d == nil {
		return false
	}
	return Mode(d.modes.Load())&mode == mode
}

// Toggle flips the mode and returns its new state.
func (d *Debugger) Toggle(mode Mode) bool {
	if d == nil {
		return false
	}
	for {
		old := d.modes.Load()
		if d.modes.CompareAndSwap(old, old^uint32(mode)) {
			return Mode(old^uint32(mode))&mode == mode
		}
	}
}

// Set enables or disables the mode.
func (d *Debugger) Set(mode Mode, enabled bool) {
	if d == nil {
		return
	}
	for {
		old := d.modes.Load()
		next := old &^ uint32(mode)
		if enabled {
			next = old | uint32(mode)
		}
		if d.modes.CompareAndSwap(old, next) {
			return
		}
	}
}

// Log returns the logger the debugger writes to.
func (d *Debugger) Log() *logrus.Logger {
	if d == nil {
		return logrus.StandardLogger()
	}
	return d.log
}
