package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// World axes. The engine is right-handed with +Y up and -Z forward.
var (
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldRight   = mgl32.Vec3{1, 0, 0}
	WorldForward = mgl32.Vec3{0, 0, -1}
)

// approximatelyEpsilon is the absolute floor used by Approximately, eight float32 epsilons.
const approximatelyEpsilon = 8 * 1.1920929e-07

// Lerp linearly interpolates between a and b. The factor t is clamped to [0, 1]
// so the result never overshoots either end.
//
// Parameters:
//   - a: value at t = 0
//   - b: value at t = 1
//   - t: interpolation factor
//
// Returns:
//   - float32: the interpolated value
func Lerp(a, b, t float32) float32 {
	t = mgl32.Clamp(t, 0, 1)
	return a + (b-a)*t
}

// Approximately reports whether two floats are equal within a tolerance that scales
// with their magnitude (1e-6 relative) but never drops below a small absolute floor.
//
// Parameters:
//   - a: first value
//   - b: second value
//
// Returns:
//   - bool: true if a and b are considered equal
func Approximately(a, b float32) bool {
	tol := 1e-6 * float32(math.Max(math.Abs(float64(a)), math.Abs(float64(b))))
	if tol < approximatelyEpsilon {
		tol = approximatelyEpsilon
	}
	return float32(math.Abs(float64(b-a))) < tol
}

// ClampMagnitude returns v scaled down so its length does not exceed maxLength.
// Vectors already within the limit are returned unchanged.
//
// Parameters:
//   - v: the vector to clamp
//   - maxLength: the maximum allowed length (negative values are treated as 0)
//
// Returns:
//   - mgl32.Vec3: the clamped vector
func ClampMagnitude(v mgl32.Vec3, maxLength float32) mgl32.Vec3 {
	if maxLength <= 0 {
		return mgl32.Vec3{}
	}
	l := v.Len()
	if l <= maxLength {
		return v
	}
	return v.Mul(maxLength / l)
}

// Sign returns -1 for negative values and 1 otherwise.
//
// Parameters:
//   - v: the value to inspect
//
// Returns:
//   - float32: -1 or 1
func Sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
