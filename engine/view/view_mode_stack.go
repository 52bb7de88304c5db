package view

import "log"

type viewModeInstance struct {
	class *ViewModeClass
	mode  ViewMode
}

type viewModeStackImpl struct {
	owner Owner

	// instances caches one mode per class for the lifetime of the stack.
	instances []viewModeInstance
	// active is ordered top first: index 0 is the most recently pushed mode.
	active []ViewMode
}

// ViewModeStack blends a stack of view modes into one pose.
// The most recently pushed mode sits on top and blends in over the modes below it. Modes that are fully
// covered by a completely blended mode are evicted on the next update.
//
// A ViewModeStack is owned by a single viewer and is not safe for concurrent use.
type ViewModeStack interface {
	// PushViewMode moves the mode of class to the top of the stack, creating and caching it on first use.
	// Pushing the mode that is already on top, or a nil class, does nothing.
	//
	// Parameters:
	//   - class: the class to activate
	PushViewMode(class *ViewModeClass)

	// UpdateStack ticks the active modes top to bottom until one is fully blended, then evicts the modes
	// below it without ticking them. If that mode is on top it becomes Activated.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	UpdateStack(deltaTime float64)

	// BlendStack folds the active poses from the bottom of the stack to the top into out.
	// An empty stack leaves out untouched.
	//
	// Parameters:
	//   - out: receives the blended pose
	BlendStack(out *ViewModeInfo)

	// EvaluateStack runs UpdateStack and then BlendStack.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	//   - out: receives the blended pose
	EvaluateStack(deltaTime float64, out *ViewModeInfo)

	// Len returns the number of active modes.
	//
	// Returns:
	//   - int: the active mode count
	Len() int

	// Active returns a copy of the active modes, top first.
	//
	// Returns:
	//   - []ViewMode: the active modes
	Active() []ViewMode

	// Instance returns the cached mode for class without creating one.
	//
	// Parameters:
	//   - class: the class to look up
	//
	// Returns:
	//   - ViewMode: the cached mode, or nil
	Instance(class *ViewModeClass) ViewMode
}

var _ ViewModeStack = &viewModeStackImpl{}

// NewViewModeStack creates an empty stack whose modes frame owner's view target.
//
// Parameters:
//   - owner: passed to every mode the stack creates
//
// Returns:
//   - ViewModeStack: the empty stack
func NewViewModeStack(owner Owner) ViewModeStack {
	return &viewModeStackImpl{owner: owner}
}

func (s *viewModeStackImpl) PushViewMode(class *ViewModeClass) {
	if class == nil {
		return
	}
	mode := s.instanceFor(class)
	if mode == nil {
		return
	}
	if len(s.active) > 0 && s.active[0] == mode {
		return
	}

	existingIndex := -1
	contribution := 1.0
	for i, m := range s.active {
		same := m == mode
		if existingIndex < 0 {
			if same {
				existingIndex = i
				contribution *= m.BlendWeight()
			} else {
				contribution *= 1 - m.BlendWeight()
			}
		}
		if !same {
			m.SetActivationState(ActivationPreDeactivate)
		}
	}

	if existingIndex < 0 {
		contribution = 0
	} else {
		s.active = append(s.active[:existingIndex], s.active[existingIndex+1:]...)
	}

	weight := 1.0
	if mode.BlendTime() > 0 && len(s.active) > 0 {
		weight = contribution
	}
	mode.SetBlendWeight(weight)

	s.active = append([]ViewMode{mode}, s.active...)
	if len(s.active) > 1 {
		s.active[1].SetBlendWeight(1)
	}

	mode.SetActivationState(ActivationPreActivate)
}

func (s *viewModeStackImpl) UpdateStack(deltaTime float64) {
	if len(s.active) == 0 {
		return
	}

	// entries below the first fully blended one are evicted without being ticked
	for i, mode := range s.active {
		mode.UpdateViewMode(deltaTime)
		if mode.BlendWeight() < 1 {
			continue
		}
		if i == 0 {
			mode.SetActivationState(ActivationActivated)
		}
		for _, evicted := range s.active[i+1:] {
			evicted.SetActivationState(ActivationDeactivated)
		}
		clear(s.active[i+1:])
		s.active = s.active[:i+1]
		return
	}
}

func (s *viewModeStackImpl) BlendStack(out *ViewModeInfo) {
	if out == nil || len(s.active) == 0 {
		return
	}

	last := len(s.active) - 1
	*out = s.active[last].ViewModeInfo()
	for i := last - 1; i >= 0; i-- {
		out.Blend(s.active[i].ViewModeInfo(), s.active[i].BlendWeight())
	}
}

func (s *viewModeStackImpl) EvaluateStack(deltaTime float64, out *ViewModeInfo) {
	s.UpdateStack(deltaTime)
	s.BlendStack(out)
}

func (s *viewModeStackImpl) Len() int {
	return len(s.active)
}

func (s *viewModeStackImpl) Active() []ViewMode {
	return append([]ViewMode(nil), s.active...)
}

func (s *viewModeStackImpl) Instance(class *ViewModeClass) ViewMode {
	for _, inst := range s.instances {
		if inst.class == class {
			return inst.mode
		}
	}
	return nil
}

// instanceFor returns the cached mode for class, creating it on first use.
func (s *viewModeStackImpl) instanceFor(class *ViewModeClass) ViewMode {
	if mode := s.Instance(class); mode != nil {
		return mode
	}
	mode := class.NewInstance(s.owner)
	if mode == nil {
		log.Printf("[ViewModeStack] class %q produced no view mode", class.Name())
		return nil
	}
	s.instances = append(s.instances, viewModeInstance{class: class, mode: mode})
	return mode
}
