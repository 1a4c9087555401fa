package game

import "github.com/go-gl/mathgl/mgl32"

// WorldUp is the up axis of every scene.
var WorldUp = mgl32.Vec3{0, 1, 0}

const (
	// MaxSlideIterations is the number of sweep/slide passes a single Move may perform.
	MaxSlideIterations = 3
	// MaxDepenetrationIterations caps the overlap resolution passes run after the slide loop.
	MaxDepenetrationIterations = 5

	// BelowNormalAngle and AboveNormalAngle split hit normals into Below, Sides and Above.
	BelowNormalAngle = float32(45)
	AboveNormalAngle = float32(135)

	// SlideCeilingAngle is the steepest slope that still counts as slideable ground. Anything at
	// or past it is treated as a wall.
	SlideCeilingAngle = float32(85)
	// SlideGracePeriod is how long a slide survives without steep slope contact.
	SlideGracePeriod = float32(0.15)
	// SlopeHoldWindow is how long the last valid slope sample is kept when no probe finds ground.
	SlopeHoldWindow = float32(0.3)

	// MinSlideIntensity is the lowest intensity the angle-dependent slide mapping may produce.
	MinSlideIntensity = float32(0.3)
	// SlideRampRate and SlideRampMax shape the speed ramp (1 + min(t*rate, max)) applied over a slide.
	SlideRampRate = float32(0.5)
	SlideRampMax  = float32(1.0)
	// SlideSteerAlignment is the cosine similarity with the uphill direction at or above which
	// steering input is rejected while sliding.
	SlideSteerAlignment = float32(0.5)

	// MinMoveDistance is the shortest motion the motor bothers to sweep.
	MinMoveDistance = float32(1e-5)
	// ContactEpsilon is the gap at which a sweep reports contact.
	ContactEpsilon = float32(1e-4)
	// PenetrationSlop is the overlap depth tolerated before a penetration is resolved.
	PenetrationSlop = float32(1e-4)
)
