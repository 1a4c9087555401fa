package locomotion

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/game"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/tanema/gween/ease"
)

// ShouldSlide reports whether a slope of angle degrees is steep enough to slide down while still
// being ground rather than a wall.
func ShouldSlide(angle, maxWalkable float32) bool {
	return angle >= maxWalkable && angle < game.SlideCeilingAngle
}

// SlideIntensity maps angle from [maxWalkable, 90] onto [floor, 1] along curve. The floor is never
// lower than MinSlideIntensity.
func SlideIntensity(angle, maxWalkable, floor float32, curve ease.TweenFunc) float32 {
	floor = game.Clamp32(max(floor, game.MinSlideIntensity), 0, 1)
	span := 90 - maxWalkable
	if span <= 0 {
		return 1
	}
	if curve == nil {
		curve = ease.Linear
	}
	t := game.Clamp32(angle-maxWalkable, 0, span)
	return game.Clamp32(curve(t, floor, 1-floor, span), floor, 1)
}

// SlideSpeed returns the speed of a slide down a slope of angle degrees that has lasted slidingTime
// seconds.
func SlideSpeed(cfg settings.Slope, angle, slidingTime float32) float32 {
	intensity := float32(1)
	if cfg.AngleDependent {
		intensity = SlideIntensity(angle, cfg.MaxAngle, cfg.IntensityFloor, cfg.SlideCurve())
	}
	return cfg.SlideSpeed * intensity * SlideRamp(slidingTime)
}

// SlideRamp is the speed multiplier a slide builds up over time.
func SlideRamp(slidingTime float32) float32 {
	return 1 + min(max(slidingTime, 0)*game.SlideRampRate, game.SlideRampMax)
}

// DownhillDirection returns the unit direction pointing down the plane with the given normal, or the
// zero vector if the plane is flat.
func DownhillDirection(normal mgl32.Vec3) mgl32.Vec3 {
	lateral := normal.Cross(game.WorldUp)
	if lateral.Len() <= 1e-6 {
		return mgl32.Vec3{}
	}
	dir := game.SafeNormalize(lateral.Cross(normal))
	if dir.Y() > 0 {
		dir = dir.Mul(-1)
	}
	return dir
}

// steerAllowed reports whether a steering direction is far enough from uphill to be applied during
// a slide.
func steerAllowed(steer, downhill mgl32.Vec3) bool {
	uphill := game.SafeNormalize(game.Horizontal(downhill.Mul(-1)))
	s := game.SafeNormalize(game.Horizontal(steer))
	if uphill == (mgl32.Vec3{}) || s == (mgl32.Vec3{}) {
		return s != (mgl32.Vec3{})
	}
	return s.Dot(uphill) < game.SlideSteerAlignment
}
