package view

import (
	"log"
	"math"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/go-gl/mathgl/mgl64"
)

type viewModeImpl struct {
	// self is the outermost mode, handed to actions so they observe the variant rather than the embedded base.
	self  ViewMode
	owner Owner

	name string

	fieldOfView  float64
	viewPitchMin float64
	viewPitchMax float64

	blendFunction BlendFunction
	blendTime     float64
	blendExponent float64
	blendAlpha    float64
	blendWeight   float64

	state   ActivationState
	actions []Action

	info ViewModeInfo

	warnedBlendFunction bool
	onStateChange       func(state ActivationState)
}

// ViewMode computes a camera pose for its owner's view target and tracks how strongly that pose
// contributes to the blended view while it sits on a ViewModeStack.
//
// A ViewMode is not safe for concurrent use. Each stack, and the modes it caches, belongs to a single viewer.
type ViewMode interface {
	// Name returns the mode's display name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Owner returns the owner the mode frames and sweeps through.
	//
	// Returns:
	//   - Owner: the owner, possibly nil
	Owner() Owner

	// ActivationState returns the current lifecycle state.
	//
	// Returns:
	//   - ActivationState: the state
	ActivationState() ActivationState

	// SetActivationState changes the lifecycle state and notifies every attached Action.
	// Setting the current state again does nothing.
	//
	// Parameters:
	//   - state: the new state
	SetActivationState(state ActivationState)

	// UpdateViewMode recomputes the pose and then advances the blend by deltaTime seconds.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	UpdateViewMode(deltaTime float64)

	// SetBlendWeight clamps weight to [0, 1] and back-solves the blend alpha through the inverse of
	// the blend curve, so that blending resumes from the same visible weight.
	//
	// Parameters:
	//   - weight: the desired blend weight
	SetBlendWeight(weight float64)

	// BlendTime returns the seconds needed to blend in from 0 to 1.
	//
	// Returns:
	//   - float64: the blend time
	BlendTime() float64

	// BlendAlpha returns the linear blend progress in [0, 1].
	//
	// Returns:
	//   - float64: the blend alpha
	BlendAlpha() float64

	// BlendWeight returns the eased blend weight in [0, 1].
	//
	// Returns:
	//   - float64: the blend weight
	BlendWeight() float64

	// ViewModeInfo returns the pose computed by the last update.
	//
	// Returns:
	//   - ViewModeInfo: the pose
	ViewModeInfo() ViewModeInfo

	// FieldOfView returns the configured horizontal field of view in degrees.
	//
	// Returns:
	//   - float64: the field of view
	FieldOfView() float64

	// ViewPitchMin returns the lowest pitch the mode allows, in degrees.
	//
	// Returns:
	//   - float64: the minimum pitch
	ViewPitchMin() float64

	// ViewPitchMax returns the highest pitch the mode allows, in degrees.
	//
	// Returns:
	//   - float64: the maximum pitch
	ViewPitchMax() float64

	// BlendFunction returns the curve that maps alpha to weight.
	//
	// Returns:
	//   - BlendFunction: the blend function
	BlendFunction() BlendFunction

	// BlendExponent returns the exponent of the blend curve.
	//
	// Returns:
	//   - float64: the exponent
	BlendExponent() float64
}

var _ ViewMode = &viewModeImpl{}

// NewViewMode creates the base view mode, which places the camera at the target's eyes without
// any offset. Options for crouch offsets and penetration avoidance are ignored.
//
// Parameters:
//   - owner: supplies the view target, may be nil
//   - options: builder options
//
// Returns:
//   - ViewMode: the new mode in the Deactivated state
func NewViewMode(owner Owner, options ...ViewModeBuilderOption) ViewMode {
	s := newViewModeSettings("ViewMode", 0)
	s.apply(options)

	m := &viewModeImpl{}
	m.init(m, owner, s)
	return m
}

// init copies the shared settings into the base and records the outermost mode.
func (m *viewModeImpl) init(self ViewMode, owner Owner, s *viewModeSettings) {
	m.self = self
	m.owner = owner
	m.name = s.name
	m.fieldOfView = s.fieldOfView
	m.viewPitchMin = s.viewPitchMin
	m.viewPitchMax = s.viewPitchMax
	m.blendFunction = s.blendFunction
	m.blendTime = s.blendTime
	m.blendExponent = s.blendExponent
	m.actions = append([]Action(nil), s.actions...)
	m.blendAlpha = 1
	m.blendWeight = 1
	m.state = ActivationDeactivated
	m.info = DefaultViewModeInfo()
	m.info.FieldOfView = m.fieldOfView
}

func (m *viewModeImpl) Name() string {
	return m.name
}

func (m *viewModeImpl) Owner() Owner {
	return m.owner
}

func (m *viewModeImpl) ActivationState() ActivationState {
	return m.state
}

func (m *viewModeImpl) SetActivationState(state ActivationState) {
	if m.state == state {
		return
	}
	m.state = state
	if m.onStateChange != nil {
		m.onStateChange(state)
	}
	dispatch(m.actions, m.self, state)
}

func (m *viewModeImpl) UpdateViewMode(deltaTime float64) {
	m.updateView(deltaTime)
	m.updateBlending(deltaTime)
}

func (m *viewModeImpl) SetBlendWeight(weight float64) {
	m.blendWeight = mgl64.Clamp(weight, 0, 1)
	if !m.blendFunction.Valid() {
		m.warnInvalidBlendFunction()
		m.blendAlpha = m.blendWeight
		return
	}
	m.blendAlpha = m.blendFunction.Invert(m.blendWeight, m.blendExponent)
}

func (m *viewModeImpl) BlendTime() float64 {
	return m.blendTime
}

func (m *viewModeImpl) BlendAlpha() float64 {
	return m.blendAlpha
}

func (m *viewModeImpl) BlendWeight() float64 {
	return m.blendWeight
}

func (m *viewModeImpl) ViewModeInfo() ViewModeInfo {
	return m.info
}

func (m *viewModeImpl) FieldOfView() float64 {
	return m.fieldOfView
}

func (m *viewModeImpl) ViewPitchMin() float64 {
	return m.viewPitchMin
}

func (m *viewModeImpl) ViewPitchMax() float64 {
	return m.viewPitchMax
}

func (m *viewModeImpl) BlendFunction() BlendFunction {
	return m.blendFunction
}

func (m *viewModeImpl) BlendExponent() float64 {
	return m.blendExponent
}

// target returns the owner's view target, or nil.
func (m *viewModeImpl) target() Target {
	if m.owner == nil {
		return nil
	}
	return m.owner.ViewTarget()
}

// updateView computes the base pose: the target's eyes looking along its clamped view rotation.
func (m *viewModeImpl) updateView(deltaTime float64) {
	target := m.target()
	if target == nil {
		return
	}
	m.applyPivot(target, mgl64.Vec3{})
}

// applyPivot writes the pose at the target's pivot plus offset and returns the clamped rotation.
func (m *viewModeImpl) applyPivot(target Target, offset mgl64.Vec3) (mgl64.Vec3, common.Rotator) {
	location := pivotLocation(target).Add(offset)

	rotation := target.ViewRotation()
	rotation.Pitch = common.ClampAngle(rotation.Pitch, m.viewPitchMin, m.viewPitchMax)

	m.info = ViewModeInfo{
		Location:        location,
		Rotation:        rotation,
		ControlRotation: rotation,
		FieldOfView:     m.fieldOfView,
	}
	return location, rotation
}

// updateBlending advances alpha by deltaTime and maps it through the blend curve.
func (m *viewModeImpl) updateBlending(deltaTime float64) {
	if m.blendTime > 0 {
		m.blendAlpha = math.Min(m.blendAlpha+deltaTime/m.blendTime, 1)
	} else {
		m.blendAlpha = 1
	}

	weight, ok := m.blendFunction.Evaluate(m.blendAlpha, m.blendExponent)
	if !ok {
		m.warnInvalidBlendFunction()
	}
	m.blendWeight = weight
}

func (m *viewModeImpl) warnInvalidBlendFunction() {
	if m.warnedBlendFunction {
		return
	}
	m.warnedBlendFunction = true
	log.Printf("[ViewMode] %s: invalid blend function %s, using alpha as weight", m.name, m.blendFunction)
}

// pivotLocation returns the point the camera orbits. Characters pivot at eye height above the capsule
// center, compensated for a shrunken (crouched) capsule; other targets use their pawn view location.
func pivotLocation(target Target) mgl64.Vec3 {
	if c, ok := target.(Character); ok {
		height := (c.DefaultCapsuleHalfHeight() - c.CapsuleHalfHeight()) + c.BaseEyeHeight()
		return c.Location().Add(mgl64.Vec3{0, 0, height})
	}
	return target.PawnViewLocation()
}
