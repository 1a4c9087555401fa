package movestate

import "github.com/oomph-ac/locomotion/settings"

// ClassifyLanding picks the state a fall ends in for a touchdown at speed (the magnitude of the
// vertical velocity at contact) and returns how long that state lasts without an animation signal.
// intent is whether the movement intent required by the roll trigger is present.
func ClassifyLanding(cfg settings.Landing, speed float32, intent bool) (State, float32) {
	if speed >= cfg.HardThreshold {
		if cfg.RollEnabled && intent {
			return StateRoll, cfg.RollDuration
		}
		return StateHardLand, cfg.HardRecovery
	}
	if speed < cfg.SoftThreshold {
		return StateSoftLand, 0
	}
	return StateSoftLand, cfg.SoftRecovery
}

// rollIntent reports whether the sample carries the movement intent the trigger asks for.
func rollIntent(trigger settings.RollTrigger, s Sample) bool {
	switch trigger {
	case settings.RollTriggerSprint:
		return s.Move && s.Sprint
	case settings.RollTriggerCrouch:
		return s.Move && s.Crouch
	}
	return s.Move
}
