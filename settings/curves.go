package settings

import "github.com/tanema/gween/ease"

// SlideCurves maps the names accepted by slope.intensity_curve to easing functions. Every curve is
// non-decreasing over its duration, so slide intensity never drops as a slope steepens.
var SlideCurves = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"in-quad":     ease.InQuad,
	"out-quad":    ease.OutQuad,
	"in-out-quad": ease.InOutQuad,
	"in-cubic":    ease.InCubic,
	"out-cubic":   ease.OutCubic,
}

// SlideCurve returns the configured slide intensity curve, falling back to linear.
func (s Slope) SlideCurve() ease.TweenFunc {
	if f, ok := SlideCurves[s.IntensityCurve]; ok {
		return f
	}
	return ease.Linear
}
