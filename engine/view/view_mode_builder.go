package view

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl64"
)

// Default pitch clamp of a view mode, in degrees.
const (
	DefaultViewPitchMin = -89.0
	DefaultViewPitchMax = 89.0
)

// Default third person penetration blend times, in seconds.
const (
	DefaultPenetrationBlendInTime  = 0.1
	DefaultPenetrationBlendOutTime = 0.15
)

const (
	minFieldOfView = 5.0
	maxFieldOfView = 170.0
	pitchLimit     = 89.9
)

// viewModeSettings collects the options shared by every view mode constructor.
// Each constructor reads only the fields that apply to it.
type viewModeSettings struct {
	name string

	fieldOfView   float64
	viewPitchMin  float64
	viewPitchMax  float64
	blendFunction BlendFunction
	blendTime     float64
	blendExponent float64
	actions       []Action

	crouchBlendMultiplier float64

	targetOffsetX common.FloatCurve
	targetOffsetY common.FloatCurve
	targetOffsetZ common.FloatCurve

	preventPenetration       bool
	predictiveAvoidance      bool
	collisionPushOutDistance float64
	penetrationBlendInTime   float64
	penetrationBlendOutTime  float64
	reportPenetrationPercent float64
	feelers                  []PenetrationAvoidanceFeeler
}

func newViewModeSettings(name string, crouchBlendMultiplier float64) *viewModeSettings {
	return &viewModeSettings{
		name:                     name,
		fieldOfView:              DefaultFieldOfView,
		viewPitchMin:             DefaultViewPitchMin,
		viewPitchMax:             DefaultViewPitchMax,
		blendFunction:            BlendEaseOut,
		blendTime:                0.5,
		blendExponent:            4,
		crouchBlendMultiplier:    crouchBlendMultiplier,
		preventPenetration:       true,
		predictiveAvoidance:      true,
		collisionPushOutDistance: 2,
		penetrationBlendInTime:   DefaultPenetrationBlendInTime,
		penetrationBlendOutTime:  DefaultPenetrationBlendOutTime,
		reportPenetrationPercent: 0,
		feelers:                  DefaultPenetrationAvoidanceFeelers(),
	}
}

func (s *viewModeSettings) apply(options []ViewModeBuilderOption) {
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
}

// ViewModeBuilderOption configures a view mode at construction time.
type ViewModeBuilderOption func(*viewModeSettings)

// WithName sets the mode's display name.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - ViewModeBuilderOption: a function that sets the name
func WithName(name string) ViewModeBuilderOption {
	return func(s *viewModeSettings) {
		s.name = name
	}
}

// WithFieldOfView sets the horizontal field of view in degrees, clamped to [5, 170].
//
// Parameters:
//   - degrees: the field of view
//
// Returns:
//   - ViewModeBuilderOption: a function that sets the field of view
func WithFieldOfView(degrees float64) ViewModeBuilderOption {
	return func(s *viewModeSettings) {
		s.fieldOfView = mgl64.Clamp(degrees, minFieldOfView, maxFieldOfView)
	}
}

// WithViewPitchRange sets the pitch clamp in degrees. Both ends are limited to [-89.9, 89.9]
// and swapped if given in the wrong order.
//
// Parameters:
//   - minPitch: lowest allowed pitch
//   - maxPitch: highest allowed pitch
//
// Returns:
//   - ViewModeBuilderOption: a function that sets the pitch range
func WithViewPitchRange(minPitch, maxPitch float64) ViewModeBuilderOption {
	return func(s *viewModeSettings) {
		minPitch = mgl64.Clamp(minPitch, -pitchLimit, pitchLimit)
		maxPitch = mgl64.Clamp(maxPitch, -pitchLimit, pitchLimit)
		if minPitch > maxPitch {
			minPitch, maxPitch = maxPitch, minPitch
		}
		s.viewPitchMin = minPitch
		s.viewPitchMax = maxPitch
	}
}

// WithBlendFunction sets the curve that maps blend alpha to weight.
//
// Parameters:
//   - fn: the blend function
//
// Returns:
//   - ViewModeBuilderOption: a function that sets the blend function
func WithBlendFunction(fn BlendFunction) ViewModeBuilderOption {
	return func(s *viewModeSettings) {
		s.blendFunction = fn
	}
}

// WithBlendTime sets how many seconds the mode takes to blend in. Negative values become 0 (instant).
//
// Parameters:
//   - seconds: the blend time
//
// Returns:
//   - ViewModeBuilderOption: a function that sets the blend time
func WithBlendTime(seconds float64) ViewModeBuilderOption {
	return func(s *viewModeSettings) {
		s.blendTime = max(seconds, 0)
	}
}

// WithBlendExponent sets the exponent of the blend curve. Values <= 0 behave as 1.
//
// Parameters:
//   - exp: the exponent
//
// Returns:
//   - ViewModeBuilderOption: a function that sets the blend exponent
func WithBlendExponent(exp float64) ViewModeBuilderOption {
	return func(s *viewModeSettings) {
		s.blendExponent = exp
	}
}

// WithActions appends lifecycle observers to the mode.
//
// Parameters:
//   - actions: the observers, nil entries are skipped when dispatching
//
// Returns:
//   - ViewModeBuilderOption: a function that attaches the actions
func WithActions(actions ...Action) ViewModeBuilderOption {
	return func(s *viewModeSettings) {
		s.actions = append(s.actions, actions...)
	}
}

// WithCrouchBlendMultiplier sets how fast the crouch offset eases, in blend units per second.
// Applies to first and third person modes.
//
// Parameters:
//   - multiplier: the rate, values <= 0 snap instantly
//
// Returns:
//   - ViewModeBuilderOption: a function that sets the multiplier
func WithCrouchBlendMultiplier(multiplier float64) ViewModeBuilderOption {
	return func(s *viewModeSettings) {
		s.crouchBlendMultiplier = multiplier
	}
}

// WithTargetOffsetCurves sets the third person camera offset from the pivot, in the rotated frame,
// as three curves keyed by view pitch in degrees.
//
// Parameters:
//   - x: forward offset curve (negative places the camera behind the target)
//   - y: right offset curve
//   - z: up offset curve
//
// Returns:
//   - ViewModeBuilderOption: a function that sets the offset curves
func WithTargetOffsetCurves(x, y, z common.FloatCurve) ViewModeBuilderOption {
	return func(s *viewModeSettings) {
		s.targetOffsetX = x
		s.targetOffsetY = y
		s.targetOffsetZ = z
		s.targetOffsetX.Sort()
		s.targetOffsetY.Sort()
		s.targetOffsetZ.Sort()
	}
}

// WithPreventPenetration toggles third person penetration avoidance.
func WithPreventPenetration(enabled bool) ViewModeBuilderOption {
	return func(s *viewModeSettings) {
		s.preventPenetration = enabled
	}
}

// WithPredictiveAvoidance toggles tracing of the secondary feelers. When disabled only the primary ray is traced.
func WithPredictiveAvoidance(enabled bool) ViewModeBuilderOption {
	return func(s *viewModeSettings) {
		s.predictiveAvoidance = enabled
	}
}

// WithCollisionPushOutDistance sets how far in front of a hit the camera is held.
func WithCollisionPushOutDistance(distance float64) ViewModeBuilderOption {
	return func(s *viewModeSettings) {
		s.collisionPushOutDistance = max(distance, 0)
	}
}

// WithPenetrationBlendTimes sets how many seconds the camera takes to move toward an obstruction (in)
// and back out once it clears (out). Zero snaps.
//
// Parameters:
//   - in: blend-in time in seconds
//   - out: blend-out time in seconds
//
// Returns:
//   - ViewModeBuilderOption: a function that sets the blend times
func WithPenetrationBlendTimes(in, out float64) ViewModeBuilderOption {
	return func(s *viewModeSettings) {
		s.penetrationBlendInTime = max(in, 0)
		s.penetrationBlendOutTime = max(out, 0)
	}
}

// WithReportPenetrationPercent sets the blocked fraction below which PenetrationAssist observers are notified.
func WithReportPenetrationPercent(pct float64) ViewModeBuilderOption {
	return func(s *viewModeSettings) {
		s.reportPenetrationPercent = mgl64.Clamp(pct, 0, 1)
	}
}

// WithPenetrationFeelers replaces the feeler set. The first feeler is the primary ray.
//
// Parameters:
//   - feelers: the feelers, copied
//
// Returns:
//   - ViewModeBuilderOption: a function that sets the feelers
func WithPenetrationFeelers(feelers ...PenetrationAvoidanceFeeler) ViewModeBuilderOption {
	return func(s *viewModeSettings) {
		s.feelers = append([]PenetrationAvoidanceFeeler(nil), feelers...)
	}
}
