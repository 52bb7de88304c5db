package common

import (
	"sort"
)

// NewFloatCurve builds a curve from keys, sorting them by time.
//
// Parameters:
//   - interp: interpolation mode between keys
//   - keys: curve samples in any order
//
// Returns:
//   - FloatCurve: the sorted curve
func NewFloatCurve(interp CurveInterpMode, keys ...CurveKey) FloatCurve {
	c := FloatCurve{Keys: append([]CurveKey(nil), keys...), Interp: interp}
	c.Sort()
	return c
}

// Sort orders the keys by time. Decoded curves must be sorted before Eval.
func (c *FloatCurve) Sort() {
	sort.SliceStable(c.Keys, func(i, j int) bool { return c.Keys[i].Time < c.Keys[j].Time })
}

// Eval samples the curve at time t.
//
// Parameters:
//   - t: the sample time (for offset curves this is the view pitch in degrees)
//
// Returns:
//   - float64: the interpolated value
func (c FloatCurve) Eval(t float64) float64 {
	n := len(c.Keys)
	switch {
	case n == 0:
		return 0
	case t <= c.Keys[0].Time:
		return c.Keys[0].Value
	case t >= c.Keys[n-1].Time:
		return c.Keys[n-1].Value
	}

	// first key strictly after t; t lies in [i-1, i)
	i := sort.Search(n, func(i int) bool { return c.Keys[i].Time > t })
	k0, k1 := c.Keys[i-1], c.Keys[i]
	span := k1.Time - k0.Time
	if span <= 0 {
		return k1.Value
	}
	u := (t - k0.Time) / span

	switch c.Interp {
	case CurveInterpConstant:
		return k0.Value
	case CurveInterpCubic:
		m0 := c.tangent(i-1) * span
		m1 := c.tangent(i) * span
		u2 := u * u
		u3 := u2 * u
		return (2*u3-3*u2+1)*k0.Value + (u3-2*u2+u)*m0 + (-2*u3+3*u2)*k1.Value + (u3-u2)*m1
	default:
		return Lerp(k0.Value, k1.Value, u)
	}
}

// tangent returns the automatic slope at key i. End keys are flat.
func (c FloatCurve) tangent(i int) float64 {
	if i <= 0 || i >= len(c.Keys)-1 {
		return 0
	}
	prev, next := c.Keys[i-1], c.Keys[i+1]
	if next.Time == prev.Time {
		return 0
	}
	return (next.Value - prev.Value) / (next.Time - prev.Time)
}
