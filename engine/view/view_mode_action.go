package view

// Action observes the activation lifecycle of a ViewMode.
// Actions are attached with WithActions and are invoked in order on every state change.
type Action interface {
	// PreActivateMode is called when the mode is pushed to the top of a stack.
	PreActivateMode(mode ViewMode)
	// PostActivateMode is called when the mode has fully blended in.
	PostActivateMode(mode ViewMode)
	// PreDeactivateMode is called when the mode is covered by a newly pushed mode.
	PreDeactivateMode(mode ViewMode)
	// PostDeactivateMode is called when the mode is evicted from the stack.
	PostDeactivateMode(mode ViewMode)
}

// ActionFuncs adapts plain functions to the Action interface. Nil fields are skipped.
type ActionFuncs struct {
	PreActivate    func(ViewMode)
	PostActivate   func(ViewMode)
	PreDeactivate  func(ViewMode)
	PostDeactivate func(ViewMode)
}

var _ Action = ActionFuncs{}

func (a ActionFuncs) PreActivateMode(mode ViewMode) {
	if a.PreActivate != nil {
		a.PreActivate(mode)
	}
}

func (a ActionFuncs) PostActivateMode(mode ViewMode) {
	if a.PostActivate != nil {
		a.PostActivate(mode)
	}
}

func (a ActionFuncs) PreDeactivateMode(mode ViewMode) {
	if a.PreDeactivate != nil {
		a.PreDeactivate(mode)
	}
}

func (a ActionFuncs) PostDeactivateMode(mode ViewMode) {
	if a.PostDeactivate != nil {
		a.PostDeactivate(mode)
	}
}

// dispatch invokes the hook of every action that matches state.
func dispatch(actions []Action, mode ViewMode, state ActivationState) {
	for _, action := range actions {
		if action == nil {
			continue
		}
		switch state {
		case ActivationPreActivate:
			action.PreActivateMode(mode)
		case ActivationActivated:
			action.PostActivateMode(mode)
		case ActivationPreDeactivate:
			action.PreDeactivateMode(mode)
		case ActivationDeactivated:
			action.PostDeactivateMode(mode)
		}
	}
}
