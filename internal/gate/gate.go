// Package gate guards protected surfaces behind the session lifecycle.
package gate

import (
	"sync"

	"taskify/internal/session"
)

// State is the gate's rendering decision
type State int

const (
	// Loading blocks rendering while the identity check resolves.
	Loading State = iota
	// Unauthorized redirects to the sign-in surface, replacing history
	// so back-navigation cannot return to a gated page.
	Unauthorized
	// Authorized renders the wrapped content.
	Authorized
)

// String returns the string representation of the gate state
func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Unauthorized:
		return "unauthorized"
	case Authorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Evaluate derives the gate state from a session snapshot. The mapping is
// total: loading wins, then presence of a user decides.
func Evaluate(s session.State) State {
	if s.Loading {
		return Loading
	}
	if s.User == nil {
		return Unauthorized
	}
	return Authorized
}

// Gate re-evaluates on every session change and reports transitions.
// There is no terminal state: a logout flips an authorized gate straight
// back to unauthorized.
type Gate struct {
	mu       sync.Mutex
	state    State
	onChange func(State)
	sub      *session.Subscription
}

// New creates a gate over the session store. onChange, when non-nil, is
// invoked with the new state on every transition (including the initial
// evaluation).
func New(store *session.Store, onChange func(State)) *Gate {
	g := &Gate{
		state:    Evaluate(store.State()),
		onChange: onChange,
	}
	g.sub = store.Subscribe(func(s session.State) {
		g.apply(Evaluate(s))
	})
	if g.onChange != nil {
		g.onChange(g.state)
	}
	return g
}

// State returns the current gate state
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Close unsubscribes the gate from the session store
func (g *Gate) Close() {
	g.sub.Unsubscribe()
}

func (g *Gate) apply(next State) {
	g.mu.Lock()
	changed := next != g.state
	g.state = next
	g.mu.Unlock()

	if changed && g.onChange != nil {
		g.onChange(next)
	}
}
