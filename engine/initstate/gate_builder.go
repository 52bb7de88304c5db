package initstate

// GateBuilderOption configures a Gate at construction time.
type GateBuilderOption func(*gateImpl)

// WithTransition guards entering state with t.
//
// Parameters:
//   - state: the state being entered
//   - t: predicate and action for that state
//
// Returns:
//   - GateBuilderOption: a function that registers the transition
func WithTransition(state State, t Transition) GateBuilderOption {
	return func(g *gateImpl) {
		g.transitions[state] = t
	}
}
