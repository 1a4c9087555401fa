package game

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Clamp32 clamps val into [min, max].
func Clamp32(val, min, max float32) float32 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Horizontal drops the vertical component of a vector.
func Horizontal(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v[0], 0, v[2]}
}

// SafeNormalize returns v normalized, or the zero vector if v is too short to normalize.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l <= 1e-6 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// ProjectOnPlane removes the component of v along the plane normal n. n must be normalized.
func ProjectOnPlane(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(v.Dot(n)))
}

// AngleBetween returns the angle in degrees between two normalized vectors.
func AngleBetween(a, b mgl32.Vec3) float32 {
	return mgl32.RadToDeg(math32.Acos(Clamp32(a.Dot(b), -1, 1)))
}

// SlopeAngle returns the angle in degrees between a surface normal and world-up.
func SlopeAngle(normal mgl32.Vec3) float32 {
	return AngleBetween(normal, WorldUp)
}

// MoveTowards moves current towards target by at most maxDelta.
func MoveTowards(current, target mgl32.Vec3, maxDelta float32) mgl32.Vec3 {
	delta := target.Sub(current)
	dist := delta.Len()
	if dist <= maxDelta || dist <= 1e-6 {
		return target
	}
	return current.Add(delta.Mul(maxDelta / dist))
}

// WrapYawDelta wraps a yaw delta into [-180, 180].
func WrapYawDelta(delta float32) float32 {
	delta = math32.Mod(delta, 360)
	if delta > 180 {
		delta -= 360
	} else if delta < -180 {
		delta += 360
	}
	return delta
}

// YawFromDirection returns the yaw, in degrees, of a horizontal direction. A yaw of zero faces +Z.
func YawFromDirection(dir mgl32.Vec3) float32 {
	return mgl32.RadToDeg(math32.Atan2(dir.X(), dir.Z()))
}

// DirectionFromYaw returns the horizontal unit direction a yaw faces.
func DirectionFromYaw(yaw float32) mgl32.Vec3 {
	rad := mgl32.DegToRad(yaw)
	return mgl32.Vec3{math32.Sin(rad), 0, math32.Cos(rad)}
}

// RotateYawTowards turns current towards target by at most maxDelta degrees.
func RotateYawTowards(current, target, maxDelta float32) float32 {
	delta := WrapYawDelta(target - current)
	if math32.Abs(delta) <= maxDelta {
		return WrapYawDelta(target)
	}
	if delta > 0 {
		return WrapYawDelta(current + maxDelta)
	}
	return WrapYawDelta(current - maxDelta)
}
