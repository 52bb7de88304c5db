package view

import (
	"fmt"
	"math"
	"strings"
)

// BlendFunction is the easing curve that maps a mode's blend alpha to its blend weight.
type BlendFunction uint8

const (
	// BlendLinear maps alpha straight to weight.
	BlendLinear BlendFunction = iota
	// BlendEaseIn starts slow and accelerates: alpha^exp.
	BlendEaseIn
	// BlendEaseOut starts fast and decelerates: 1 - (1-alpha)^exp.
	BlendEaseOut
	// BlendEaseInOut eases in over the first half and out over the second.
	BlendEaseInOut
)

var blendFunctionNames = [...]string{
	BlendLinear:    "linear",
	BlendEaseIn:    "ease_in",
	BlendEaseOut:   "ease_out",
	BlendEaseInOut: "ease_in_out",
}

func (f BlendFunction) String() string {
	if f.Valid() {
		return blendFunctionNames[f]
	}
	return fmt.Sprintf("BlendFunction(%d)", uint8(f))
}

// Valid reports whether f is one of the known blend functions.
func (f BlendFunction) Valid() bool {
	return int(f) < len(blendFunctionNames)
}

// ParseBlendFunction converts a name such as "ease_out" (case-insensitive, '-' or ' ' accepted for '_')
// into a BlendFunction.
//
// Parameters:
//   - name: the blend function name
//
// Returns:
//   - BlendFunction: the parsed function
//   - error: an error if the name is unknown
func ParseBlendFunction(name string) (BlendFunction, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for i, n := range blendFunctionNames {
		if n == key || strings.ReplaceAll(n, "_", "") == key {
			return BlendFunction(i), nil
		}
	}
	return BlendLinear, fmt.Errorf("view: unknown blend function %q", name)
}

// Evaluate maps alpha in [0, 1] to a blend weight.
// An exponent <= 0 is treated as 1. For an invalid function the weight equals alpha and ok is false.
//
// Parameters:
//   - alpha: blend progress in [0, 1]
//   - exp: curve exponent
//
// Returns:
//   - float64: the blend weight
//   - bool: false if f is not a known blend function
func (f BlendFunction) Evaluate(alpha, exp float64) (float64, bool) {
	if exp <= 0 {
		exp = 1
	}
	switch f {
	case BlendLinear:
		return alpha, true
	case BlendEaseIn:
		return math.Pow(alpha, exp), true
	case BlendEaseOut:
		return 1 - math.Pow(1-alpha, exp), true
	case BlendEaseInOut:
		if alpha < 0.5 {
			return 0.5 * math.Pow(2*alpha, exp), true
		}
		return 1 - 0.5*math.Pow(2*(1-alpha), exp), true
	default:
		return alpha, false
	}
}

// Invert returns the alpha that Evaluate maps to weight, so that Evaluate(Invert(w, e), e) == w.
// Every curve is inverted by evaluating it with the reciprocal exponent.
//
// Parameters:
//   - weight: blend weight in [0, 1]
//   - exp: curve exponent
//
// Returns:
//   - float64: the matching alpha
func (f BlendFunction) Invert(weight, exp float64) float64 {
	if exp <= 0 {
		exp = 1
	}
	alpha, _ := f.Evaluate(weight, 1/exp)
	return alpha
}
