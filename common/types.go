// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Rotator is an orientation expressed as three Euler angles in degrees.
// The frame is X forward, Y right, Z up. Pitch rotates around the right axis (positive looks up),
// Yaw around the up axis and Roll around the forward axis.
type Rotator struct {
	// Pitch is the up/down angle in degrees.
	Pitch float64 `yaml:"pitch"`
	// Yaw is the left/right angle in degrees.
	Yaw float64 `yaml:"yaw"`
	// Roll is the bank angle in degrees.
	Roll float64 `yaml:"roll"`
}

// Add returns the component-wise sum of two rotators.
func (r Rotator) Add(o Rotator) Rotator {
	return Rotator{Pitch: r.Pitch + o.Pitch, Yaw: r.Yaw + o.Yaw, Roll: r.Roll + o.Roll}
}

// Sub returns the component-wise difference r - o.
func (r Rotator) Sub(o Rotator) Rotator {
	return Rotator{Pitch: r.Pitch - o.Pitch, Yaw: r.Yaw - o.Yaw, Roll: r.Roll - o.Roll}
}

// Scale multiplies every component by s.
func (r Rotator) Scale(s float64) Rotator {
	return Rotator{Pitch: r.Pitch * s, Yaw: r.Yaw * s, Roll: r.Roll * s}
}

// Normalized returns a copy with each component wrapped into (-180, 180].
func (r Rotator) Normalized() Rotator {
	return Rotator{Pitch: NormalizeAxis(r.Pitch), Yaw: NormalizeAxis(r.Yaw), Roll: NormalizeAxis(r.Roll)}
}

// ApproxEqualThreshold reports whether the normalized difference of every component is within epsilon degrees.
//
// Parameters:
//   - o: rotator to compare against
//   - epsilon: tolerance in degrees
//
// Returns:
//   - bool: true if the rotators describe the same orientation within tolerance
func (r Rotator) ApproxEqualThreshold(o Rotator, epsilon float64) bool {
	d := r.Sub(o).Normalized()
	return math.Abs(d.Pitch) <= epsilon && math.Abs(d.Yaw) <= epsilon && math.Abs(d.Roll) <= epsilon
}

// Axes returns the forward, right and up unit vectors of the rotation matrix described by r.
//
// Returns:
//   - forward: the rotated X axis
//   - right: the rotated Y axis
//   - up: the rotated Z axis
func (r Rotator) Axes() (forward, right, up mgl64.Vec3) {
	sp, cp := math.Sincos(mgl64.DegToRad(r.Pitch))
	sy, cy := math.Sincos(mgl64.DegToRad(r.Yaw))
	sr, cr := math.Sincos(mgl64.DegToRad(r.Roll))

	forward = mgl64.Vec3{cp * cy, cp * sy, sp}
	right = mgl64.Vec3{sr*sp*cy - cr*sy, sr*sp*sy + cr*cy, -sr * cp}
	up = mgl64.Vec3{-(cr*sp*cy + sr*sy), cy*sr - cr*sp*sy, cr * cp}
	return
}

// Vector returns the unit direction the rotator is facing.
func (r Rotator) Vector() mgl64.Vec3 {
	f, _, _ := r.Axes()
	return f
}

// RotateVector transforms a local-space vector (X forward, Y right, Z up) into the space described by r.
//
// Parameters:
//   - v: local-space vector
//
// Returns:
//   - mgl64.Vec3: the rotated vector
func (r Rotator) RotateVector(v mgl64.Vec3) mgl64.Vec3 {
	f, rt, u := r.Axes()
	return f.Mul(v[0]).Add(rt.Mul(v[1])).Add(u.Mul(v[2]))
}

// RotatorFromVector returns the rotator that faces along v. Roll is always zero.
// A zero vector yields the zero rotator.
func RotatorFromVector(v mgl64.Vec3) Rotator {
	if v.LenSqr() == 0 {
		return Rotator{}
	}
	return Rotator{
		Pitch: mgl64.RadToDeg(math.Atan2(v[2], math.Hypot(v[0], v[1]))),
		Yaw:   mgl64.RadToDeg(math.Atan2(v[1], v[0])),
	}
}

// ClampAxis wraps an angle in degrees into [0, 360).
func ClampAxis(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

// NormalizeAxis wraps an angle in degrees into (-180, 180].
func NormalizeAxis(angle float64) float64 {
	angle = ClampAxis(angle)
	if angle > 180 {
		angle -= 360
	}
	return angle
}

// ClampAngle clamps an angle to the arc running from minAngle to maxAngle.
// Angles outside the arc snap to the nearest end. The result is normalized to (-180, 180].
//
// Parameters:
//   - angle: angle to clamp in degrees
//   - minAngle: start of the arc in degrees
//   - maxAngle: end of the arc in degrees
//
// Returns:
//   - float64: the clamped, normalized angle
func ClampAngle(angle, minAngle, maxAngle float64) float64 {
	maxDelta := ClampAxis(maxAngle-minAngle) * 0.5
	rangeCenter := ClampAxis(minAngle + maxDelta)
	deltaFromCenter := NormalizeAxis(angle - rangeCenter)

	if deltaFromCenter > maxDelta {
		return NormalizeAxis(rangeCenter + maxDelta)
	} else if deltaFromCenter < -maxDelta {
		return NormalizeAxis(rangeCenter - maxDelta)
	}
	return NormalizeAxis(angle)
}

// CurveInterpMode selects how a FloatCurve interpolates between two keys.
type CurveInterpMode uint8

const (
	// CurveInterpLinear draws straight lines between keys.
	CurveInterpLinear CurveInterpMode = iota
	// CurveInterpConstant holds each key's value until the next key.
	CurveInterpConstant
	// CurveInterpCubic uses a Hermite spline with automatic (Catmull-Rom) tangents and flat end tangents.
	CurveInterpCubic
)

var curveInterpModeNames = map[CurveInterpMode]string{
	CurveInterpLinear:   "linear",
	CurveInterpConstant: "constant",
	CurveInterpCubic:    "cubic",
}

func (m CurveInterpMode) String() string {
	if name, ok := curveInterpModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("CurveInterpMode(%d)", uint8(m))
}

// UnmarshalYAML decodes an interpolation mode from its lower-case name.
func (m *CurveInterpMode) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	for mode, n := range curveInterpModeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			*m = mode
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown curve interpolation %q", value.Line, name)
}

// CurveKey is a single (time, value) sample of a FloatCurve.
type CurveKey struct {
	Time  float64 `yaml:"time"`
	Value float64 `yaml:"value"`
}

// FloatCurve is a keyed one-dimensional curve. Keys must be sorted by time (see Sort).
// Outside the keyed range the curve holds its end values. An empty curve evaluates to 0.
type FloatCurve struct {
	Keys   []CurveKey      `yaml:"keys"`
	Interp CurveInterpMode `yaml:"interp"`
}
