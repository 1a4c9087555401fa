package movestate

// State is a movement state of a character.
type State uint8

const (
	StateIdle State = iota
	StateWalk
	StateRun
	StateSprint
	StateCrouchIdle
	StateCrouchMove
	StateJump
	StateFall
	StateSlide
	StateRoll
	StateSoftLand
	StateHardLand
	StateStopLight
	StateStopMedium
	StateStopHard
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StateWalk:       "walk",
	StateRun:        "run",
	StateSprint:     "sprint",
	StateCrouchIdle: "crouch_idle",
	StateCrouchMove: "crouch_move",
	StateJump:       "jump",
	StateFall:       "fall",
	StateSlide:      "slide",
	StateRoll:       "roll",
	StateSoftLand:   "soft_land",
	StateHardLand:   "hard_land",
	StateStopLight:  "stop_light",
	StateStopMedium: "stop_medium",
	StateStopHard:   "stop_hard",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// StateFromString returns the state with the given name.
func StateFromString(name string) (State, bool) {
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return 0, false
}

// Airborne reports whether the state is entered without ground contact.
func (s State) Airborne() bool {
	return s == StateJump || s == StateFall
}

// Landing reports whether the state is a landing recovery.
func (s State) Landing() bool {
	return s == StateSoftLand || s == StateHardLand || s == StateRoll
}

// Stopping reports whether the state is a stop recovery.
func (s State) Stopping() bool {
	return s == StateStopLight || s == StateStopMedium || s == StateStopHard
}

// Crouched reports whether the state is a crouch.
func (s State) Crouched() bool {
	return s == StateCrouchIdle || s == StateCrouchMove
}
