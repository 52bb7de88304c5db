package view

// FirstPersonCrouchBlendMultiplier is the default crouch blend rate of first person modes.
const FirstPersonCrouchBlendMultiplier = 8.0

type firstPersonViewModeImpl struct {
	viewModeImpl
	crouch CrouchOffset
}

var _ ViewMode = &firstPersonViewModeImpl{}

// NewFirstPersonViewMode creates a mode that places the camera at the target's eyes, easing the
// eye height when a character crouches. Third person options are ignored.
//
// Parameters:
//   - owner: supplies the view target, may be nil
//   - options: builder options
//
// Returns:
//   - ViewMode: the new mode in the Deactivated state
func NewFirstPersonViewMode(owner Owner, options ...ViewModeBuilderOption) ViewMode {
	s := newViewModeSettings("FirstPerson", FirstPersonCrouchBlendMultiplier)
	s.apply(options)

	m := &firstPersonViewModeImpl{crouch: NewCrouchOffset(s.crouchBlendMultiplier)}
	m.init(m, owner, s)
	return m
}

func (m *firstPersonViewModeImpl) UpdateViewMode(deltaTime float64) {
	m.updateView(deltaTime)
	m.updateBlending(deltaTime)
}

func (m *firstPersonViewModeImpl) updateView(deltaTime float64) {
	target := m.target()
	if target == nil {
		return
	}
	offset := m.crouch.updateForTarget(target, deltaTime)
	m.applyPivot(target, offset)
}
