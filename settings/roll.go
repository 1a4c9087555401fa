package settings

// RollTrigger decides what counts as movement intent when a hard landing may become a roll.
type RollTrigger uint8

const (
	// RollTriggerMovement rolls whenever there is movement input.
	RollTriggerMovement RollTrigger = iota
	// RollTriggerSprint rolls only with movement input while sprint is held.
	RollTriggerSprint
	// RollTriggerCrouch rolls only with movement input while crouch is held.
	RollTriggerCrouch
)

var rollTriggers = map[string]RollTrigger{
	"movement": RollTriggerMovement,
	"sprint":   RollTriggerSprint,
	"crouch":   RollTriggerCrouch,
}

// RollTriggerFromString parses a roll trigger name.
func RollTriggerFromString(name string) (RollTrigger, bool) {
	t, ok := rollTriggers[name]
	return t, ok
}

func (t RollTrigger) String() string {
	for name, v := range rollTriggers {
		if v == t {
			return name
		}
	}
	return "unknown"
}

// Trigger returns the parsed roll trigger, falling back to RollTriggerMovement.
func (l Landing) Trigger() RollTrigger {
	t, _ := RollTriggerFromString(l.RollTrigger)
	return t
}
