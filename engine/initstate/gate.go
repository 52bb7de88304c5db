// Package initstate sequences component start-up through a fixed chain of states.
// Each step is guarded by a predicate and followed by an action, so a component can
// retry the chain whenever one of its dependencies becomes ready.
package initstate

import (
	"fmt"
	"log"
	"sync"
)

// State is a stage of component initialization.
type State uint8

const (
	// StateNone is the state before anything happened.
	StateNone State = iota
	// StateSpawned means the component exists and has an owner.
	StateSpawned
	// StateDataAvailable means the data the component depends on can be read.
	StateDataAvailable
	// StateDataInitialized means the component has applied its data.
	StateDataInitialized
	// StateGameplayReady means the component is fully usable.
	StateGameplayReady
)

// DefaultChain is the full start-up chain in order.
var DefaultChain = []State{StateSpawned, StateDataAvailable, StateDataInitialized, StateGameplayReady}

func (s State) String() string {
	switch s {
	case StateNone:
		return "None"
	case StateSpawned:
		return "Spawned"
	case StateDataAvailable:
		return "DataAvailable"
	case StateDataInitialized:
		return "DataInitialized"
	case StateGameplayReady:
		return "GameplayReady"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Transition guards and reacts to entering a state.
type Transition struct {
	// CanEnter reports whether the state may be entered. Nil always allows it.
	CanEnter func() bool
	// OnEnter runs after the state was entered. Nil does nothing.
	OnEnter func()
}

type gateImpl struct {
	mu *sync.Mutex

	name        string
	state       State
	transitions map[State]Transition
}

// Gate walks a component through the initialization states one step at a time.
// It is safe for concurrent use. Transition callbacks run without the gate's lock held.
type Gate interface {
	// Name returns the name used in log lines.
	//
	// Returns:
	//   - string: the gate name
	Name() string

	// State returns the current state.
	//
	// Returns:
	//   - State: the current state
	State() State

	// HasReached reports whether the gate is at or past state.
	//
	// Parameters:
	//   - state: the state to compare against
	//
	// Returns:
	//   - bool: true if state has been reached
	HasReached(state State) bool

	// TryChange enters desired if it directly follows the current state and its predicate allows it.
	//
	// Parameters:
	//   - desired: the state to enter
	//
	// Returns:
	//   - bool: true if the state was entered
	TryChange(desired State) bool

	// ContinueChain advances through chain from the current state until a step is refused.
	//
	// Parameters:
	//   - chain: ordered states, DefaultChain if empty
	//
	// Returns:
	//   - State: the state reached
	ContinueChain(chain ...State) State
}

var _ Gate = &gateImpl{}

// NewGate creates a gate in StateNone.
//
// Parameters:
//   - name: used in log lines
//   - options: builder options
//
// Returns:
//   - Gate: the new gate
func NewGate(name string, options ...GateBuilderOption) Gate {
	g := &gateImpl{
		mu:          &sync.Mutex{},
		name:        name,
		state:       StateNone,
		transitions: make(map[State]Transition),
	}
	for _, option := range options {
		option(g)
	}
	return g
}

func (g *gateImpl) Name() string {
	return g.name
}

func (g *gateImpl) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *gateImpl) HasReached(state State) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state >= state
}

func (g *gateImpl) TryChange(desired State) bool {
	g.mu.Lock()
	current := g.state
	transition := g.transitions[desired]
	g.mu.Unlock()

	if desired != current+1 {
		return false
	}
	if transition.CanEnter != nil && !transition.CanEnter() {
		return false
	}

	g.mu.Lock()
	if g.state != current {
		// another caller advanced the gate while the predicate ran
		g.mu.Unlock()
		return false
	}
	g.state = desired
	g.mu.Unlock()

	log.Printf("[InitState] %s: reached %s", g.name, desired)
	if transition.OnEnter != nil {
		transition.OnEnter()
	}
	return true
}

func (g *gateImpl) ContinueChain(chain ...State) State {
	if len(chain) == 0 {
		chain = DefaultChain
	}
	for _, next := range chain {
		current := g.State()
		if next <= current {
			continue
		}
		if !g.TryChange(next) {
			break
		}
	}
	return g.State()
}
