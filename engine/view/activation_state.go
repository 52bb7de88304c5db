package view

import "fmt"

// ActivationState tracks where a ViewMode is in its stack lifecycle.
type ActivationState uint8

const (
	// ActivationDeactivated is the state of a mode that is not on the stack.
	ActivationDeactivated ActivationState = iota
	// ActivationPreActivate is set when a mode is pushed to the top of the stack and is still blending in.
	ActivationPreActivate
	// ActivationActivated is set once the top mode has fully blended in and nothing remains below it.
	ActivationActivated
	// ActivationPreDeactivate is set when a mode is covered by a newly pushed mode.
	ActivationPreDeactivate
)

func (s ActivationState) String() string {
	switch s {
	case ActivationDeactivated:
		return "Deactivated"
	case ActivationPreActivate:
		return "PreActivate"
	case ActivationActivated:
		return "Activated"
	case ActivationPreDeactivate:
		return "PreDeactivate"
	default:
		return fmt.Sprintf("ActivationState(%d)", uint8(s))
	}
}
