package movestate

// Sample is what the machine observes about a character on a tick: ground and motion from the end of
// the previous simulation tick, plus this tick's buttons and animation signals.
type Sample struct {
	// Grounded is true while the motor reports ground contact.
	Grounded bool
	// Walkable is true when that ground can be stood on.
	Walkable bool
	// StepStable is true when step handling put the capsule on its current ground.
	StepStable bool
	// Sliding mirrors the simulator's sticky slide.
	Sliding bool

	VerticalVelocity float32
	HorizontalSpeed  float32
	// Height is the vertical position of the body, used to measure falls.
	Height float32

	Move   bool
	Sprint bool
	Crouch bool
	Jump   bool

	AnimationExitAllowed bool
	AnimationComplete    bool
}

// Runtime is the mutable record the machine threads between ticks. It holds no references, so a copy
// is a snapshot.
type Runtime struct {
	State       State
	Previous    State
	TimeInState float32

	TimeSinceStable float32
	LastStableY     float32
	FallDistance    float32

	JumpReleased    bool
	JumpConsumed    bool
	JumpBufferTimer float32

	// Recovery is how long the current landing, roll or stop state lasts without an animation signal.
	Recovery     float32
	LandingSpeed float32

	Crouching bool
	Halted    bool
	Rolling   bool
}

// NewRuntime returns the runtime of a character standing idle at height y.
func NewRuntime(y float32) Runtime {
	return Runtime{State: StateIdle, Previous: StateIdle, LastStableY: y, JumpReleased: true}
}

// Directive is what the machine asks of the simulator for the tick it was produced on.
type Directive struct {
	// Jump is set on the tick a jump starts. JumpVelocity is the launch speed.
	Jump         bool
	JumpVelocity float32

	Crouch bool
	Halt   bool
	// SpeedModifier scales movement speed. Zero means unscaled.
	SpeedModifier float32

	// Changed is set when the state changed this tick.
	Changed bool
}
