package game

const (
	ErrorMissingSceneProvider = "locomotion: scene provider is required"
	ErrorMissingMotor         = "locomotion: motor is required"
	ErrorMissingDetector      = "locomotion: ground detector is required"
	ErrorMissingSimulator     = "locomotion: simulator is required"
	ErrorMissingMachine       = "locomotion: state machine is required"
	ErrorMissingCharacter     = "locomotion: character is required"
	ErrorInvalidCapsule       = "locomotion: invalid capsule (radius=%v height=%v)"
	ErrorInvalidStrategy      = "locomotion: unknown motor strategy %q"
	ErrorInvalidTickRate      = "locomotion: tick rate must be positive (got %v)"
	ErrorInvalidSetting       = "locomotion: invalid setting %s: %v"
	ErrorInvalidCapacity      = "prediction: buffer capacity must be positive (got %d)"
	ErrorTickOutOfOrder       = "prediction: tick %d is older than newest tick %d and not present"
	ErrorMissingInput         = "prediction: no recorded input for tick %d"
	ErrorMissingStepFunction  = "prediction: step and divergence functions are required"
	ErrorMissingBuffer        = "prediction: input and state buffers are required"
)
