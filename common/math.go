package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ZeroAnimWeightThresh is the weight below which a blend contribution is treated as zero.
const ZeroAnimWeightThresh = 0.00001

// smallNumber guards normalizations against near-zero vectors.
const smallNumber = 1e-8

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpVec3 linearly interpolates between two vectors component-wise.
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// InterpEaseIn interpolates from a to b with an ease-in curve: a + (b-a) * alpha^exp.
//
// Parameters:
//   - a: start value
//   - b: end value
//   - alpha: progress in [0, 1]
//   - exp: curve exponent, 1 is linear
//
// Returns:
//   - float64: the eased value
func InterpEaseIn(a, b, alpha, exp float64) float64 {
	return Lerp(a, b, math.Pow(alpha, exp))
}

// InterpEaseOut interpolates from a to b with an ease-out curve: a + (b-a) * (1 - (1-alpha)^exp).
//
// Parameters:
//   - a: start value
//   - b: end value
//   - alpha: progress in [0, 1]
//   - exp: curve exponent, 1 is linear
//
// Returns:
//   - float64: the eased value
func InterpEaseOut(a, b, alpha, exp float64) float64 {
	return Lerp(a, b, 1-math.Pow(1-alpha, exp))
}

// InterpEaseInOut interpolates from a to b easing in over the first half and out over the second.
//
// Parameters:
//   - a: start value
//   - b: end value
//   - alpha: progress in [0, 1]
//   - exp: curve exponent, 1 is linear
//
// Returns:
//   - float64: the eased value
func InterpEaseInOut(a, b, alpha, exp float64) float64 {
	var t float64
	if alpha < 0.5 {
		t = 0.5 * math.Pow(2*alpha, exp)
	} else {
		t = 1 - 0.5*math.Pow(2*(1-alpha), exp)
	}
	return Lerp(a, b, t)
}

// InterpEaseInOutVec3 applies InterpEaseInOut to each component of a vector.
func InterpEaseInOutVec3(a, b mgl64.Vec3, alpha, exp float64) mgl64.Vec3 {
	return mgl64.Vec3{
		InterpEaseInOut(a[0], b[0], alpha, exp),
		InterpEaseInOut(a[1], b[1], alpha, exp),
		InterpEaseInOut(a[2], b[2], alpha, exp),
	}
}

// SafeNormal returns v normalized, or the zero vector when v is too short to normalize.
func SafeNormal(v mgl64.Vec3) mgl64.Vec3 {
	if v.LenSqr() < smallNumber {
		return mgl64.Vec3{}
	}
	return v.Normalize()
}

// SafeNormal2D returns v projected onto the XY plane and normalized, or zero if the projection is degenerate.
func SafeNormal2D(v mgl64.Vec3) mgl64.Vec3 {
	return SafeNormal(mgl64.Vec3{v[0], v[1], 0})
}

// RotateAngleAxis rotates v by angleDeg degrees around axis.
// A degenerate axis leaves v unchanged.
//
// Parameters:
//   - v: vector to rotate
//   - angleDeg: rotation angle in degrees
//   - axis: rotation axis, need not be normalized
//
// Returns:
//   - mgl64.Vec3: the rotated vector
func RotateAngleAxis(v mgl64.Vec3, angleDeg float64, axis mgl64.Vec3) mgl64.Vec3 {
	n := SafeNormal(axis)
	if n.LenSqr() == 0 || angleDeg == 0 {
		return v
	}
	return mgl64.QuatRotate(mgl64.DegToRad(angleDeg), n).Rotate(v)
}

// ClosestPointOnLine returns the point on the infinite line through origin along direction that is
// closest to point. A zero direction returns origin.
//
// Parameters:
//   - point: the query point
//   - direction: line direction, need not be normalized
//   - origin: any point on the line
//
// Returns:
//   - mgl64.Vec3: the closest point on the line
func ClosestPointOnLine(point, direction, origin mgl64.Vec3) mgl64.Vec3 {
	lenSqr := direction.LenSqr()
	if lenSqr < smallNumber {
		return origin
	}
	t := point.Sub(origin).Dot(direction) / lenSqr
	return origin.Add(direction.Mul(t))
}
