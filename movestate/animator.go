package movestate

// Animator is the animation collaborator. The machine never reads it directly: hosts copy its
// signals into each Sample so that replayed ticks see the values the original tick saw.
type Animator interface {
	// ExitAllowed reports whether the current animation may be interrupted.
	ExitAllowed() bool
	// Complete reports whether the current animation has finished.
	Complete() bool
	// Request asks the animator to play the animation for a state.
	Request(state string)
}

// NopAnimator never allows an early exit, so landing states always fall back to their timers.
type NopAnimator struct{}

func (NopAnimator) ExitAllowed() bool { return false }
func (NopAnimator) Complete() bool    { return false }
func (NopAnimator) Request(string)    {}
