package view

import (
	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl64"
)

// ThirdPersonCrouchBlendMultiplier is the default crouch blend rate of third person modes.
const ThirdPersonCrouchBlendMultiplier = 5.0

type thirdPersonViewModeImpl struct {
	viewModeImpl
	crouch CrouchOffset

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

	distBlockedPct     float64
	resetInterpolation bool
	safeLocation       mgl64.Vec3
}

// ThirdPersonViewMode is a ViewMode that orbits the target at a pitch-dependent offset and pulls the
// camera in when geometry blocks the line from the target to the desired camera location.
type ThirdPersonViewMode interface {
	ViewMode

	// DistBlockedPct returns the smoothed fraction of the aim line that is unobstructed, in [0, 1].
	//
	// Returns:
	//   - float64: the blocked fraction, 1 when the camera is not pulled in
	DistBlockedPct() float64

	// SafeLocation returns the point inside the target that the last penetration check swept from.
	//
	// Returns:
	//   - mgl64.Vec3: the safe location
	SafeLocation() mgl64.Vec3

	// ResetInterpolation makes the next penetration check snap to its result instead of easing.
	// The request is consumed by that check.
	ResetInterpolation()

	// Feelers returns a copy of the feeler set including its retrace counters.
	//
	// Returns:
	//   - []PenetrationAvoidanceFeeler: the feelers
	Feelers() []PenetrationAvoidanceFeeler
}

var _ ThirdPersonViewMode = &thirdPersonViewModeImpl{}

// NewThirdPersonViewMode creates a third person mode. Without offset curves the camera sits at the pivot.
//
// Parameters:
//   - owner: supplies the view target and spatial query, may be nil
//   - options: builder options
//
// Returns:
//   - ThirdPersonViewMode: the new mode in the Deactivated state
func NewThirdPersonViewMode(owner Owner, options ...ViewModeBuilderOption) ThirdPersonViewMode {
	s := newViewModeSettings("ThirdPerson", ThirdPersonCrouchBlendMultiplier)
	s.apply(options)

	m := &thirdPersonViewModeImpl{
		crouch:                   NewCrouchOffset(s.crouchBlendMultiplier),
		targetOffsetX:            s.targetOffsetX,
		targetOffsetY:            s.targetOffsetY,
		targetOffsetZ:            s.targetOffsetZ,
		preventPenetration:       s.preventPenetration,
		predictiveAvoidance:      s.predictiveAvoidance,
		collisionPushOutDistance: s.collisionPushOutDistance,
		penetrationBlendInTime:   s.penetrationBlendInTime,
		penetrationBlendOutTime:  s.penetrationBlendOutTime,
		reportPenetrationPercent: s.reportPenetrationPercent,
		feelers:                  append([]PenetrationAvoidanceFeeler(nil), s.feelers...),
		distBlockedPct:           1,
	}
	m.init(m, owner, s)
	m.onStateChange = func(state ActivationState) {
		if state == ActivationPreActivate {
			m.resetInterpolation = true
		}
	}
	return m
}

func (m *thirdPersonViewModeImpl) UpdateViewMode(deltaTime float64) {
	m.updateView(deltaTime)
	m.updateBlending(deltaTime)
}

func (m *thirdPersonViewModeImpl) DistBlockedPct() float64 {
	return m.distBlockedPct
}

func (m *thirdPersonViewModeImpl) SafeLocation() mgl64.Vec3 {
	return m.safeLocation
}

func (m *thirdPersonViewModeImpl) ResetInterpolation() {
	m.resetInterpolation = true
}

func (m *thirdPersonViewModeImpl) Feelers() []PenetrationAvoidanceFeeler {
	return append([]PenetrationAvoidanceFeeler(nil), m.feelers...)
}

func (m *thirdPersonViewModeImpl) updateView(deltaTime float64) {
	target := m.target()
	if target == nil {
		return
	}

	crouchOffset := m.crouch.updateForTarget(target, deltaTime)
	pivot, rotation := m.applyPivot(target, crouchOffset)

	offset := mgl64.Vec3{
		m.targetOffsetX.Eval(rotation.Pitch),
		m.targetOffsetY.Eval(rotation.Pitch),
		m.targetOffsetZ.Eval(rotation.Pitch),
	}
	m.info.Location = pivot.Add(rotation.RotateVector(offset))

	m.updatePreventPenetration(target, deltaTime)
}
