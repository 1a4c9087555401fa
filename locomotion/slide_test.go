package locomotion

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/locomotion/scene"
	"github.com/oomph-ac/locomotion/settings"
	"github.com/stretchr/testify/assert"
	"github.com/tanema/gween/ease"
)

func TestShouldSlide(t *testing.T) {
	tests := []struct {
		angle float32
		want  bool
	}{
		{0, false},
		{44.9, false},
		{45, true},
		{60, true},
		{84.9, true},
		{85, false},
		{90, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShouldSlide(tt.angle, 45), "angle %v", tt.angle)
	}
}

func TestSlideIntensity(t *testing.T) {
	assert.InDelta(t, 0.3, SlideIntensity(45, 45, 0.3, ease.Linear), 1e-6)
	assert.InDelta(t, 1, SlideIntensity(90, 45, 0.3, ease.Linear), 1e-6)
	assert.InDelta(t, 0.3+0.7/3, SlideIntensity(60, 45, 0.3, ease.Linear), 1e-5)

	assert.InDelta(t, 0.3, SlideIntensity(45, 45, 0.1, ease.Linear), 1e-6, "floor never drops below 0.3")
	assert.InDelta(t, 0.5, SlideIntensity(45, 45, 0.5, ease.Linear), 1e-6)
	assert.InDelta(t, 0.3, SlideIntensity(30, 45, 0.3, nil), 1e-6)
}

func TestSlideSpeedNonDecreasingInAngle(t *testing.T) {
	for name := range settings.SlideCurves {
		cfg := settings.Default().Slope
		cfg.IntensityCurve = name
		for _, elapsed := range []float32{0, 0.5, 1, 3} {
			prev := SlideSpeed(cfg, cfg.MaxAngle, elapsed)
			for angle := cfg.MaxAngle; angle < 85; angle += 0.5 {
				speed := SlideSpeed(cfg, angle, elapsed)
				assert.GreaterOrEqual(t, speed, prev, "%s at %v degrees after %vs", name, angle, elapsed)
				prev = speed
			}
		}
	}
}

func TestSlideSpeedWithoutAngleDependence(t *testing.T) {
	cfg := settings.Default().Slope
	cfg.AngleDependent = false
	assert.InDelta(t, 12, SlideSpeed(cfg, 50, 0), 1e-6)
	assert.InDelta(t, 18, SlideSpeed(cfg, 80, 1), 1e-5)
}

func TestSlideRamp(t *testing.T) {
	assert.InDelta(t, 1, SlideRamp(0), 1e-6)
	assert.InDelta(t, 1.5, SlideRamp(1), 1e-6)
	assert.InDelta(t, 2, SlideRamp(2), 1e-6)
	assert.InDelta(t, 2, SlideRamp(10), 1e-6)
}

func TestDownhillDirection(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{}, DownhillDirection(mgl32.Vec3{0, 1, 0}))

	normal := scene.Ramp(mgl32.Vec3{}, 1, 1, 1, 60, 0).Normal()
	dir := DownhillDirection(normal)
	assert.InDelta(t, 1, dir.Len(), 1e-5)
	assert.InDelta(t, 0, dir.Dot(normal), 1e-5)
	assert.Less(t, dir.Y(), float32(0))
	assert.Less(t, dir.Z(), float32(0))
}
