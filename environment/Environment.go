// Package environment outlines the interfaces and structs needed to
// implement concrete simulated worlds
package environment

import (
	"errors"
)

var (
	// ErrIllegalAction is returned by SimWorld.Update when the action
	// is not legal in the current state. This is a violation of the
	// caller's contract: the training loop must always consult
	// LegalActions or IsLegal first.
	ErrIllegalAction = errors.New("illegal action")

	// ErrInvalidState is returned when a State cannot be decoded by
	// the SimWorld it was passed to
	ErrInvalidState = errors.New("invalid state")
)

// SimWorld implements a simulated world that an Actor can learn to
// act in. The training loop owns an episode: it calls
// ProduceInitialState to begin one, then repeatedly queries
// LegalActions and calls Update until IsFinalState or IsFailedState
// returns true or its own step budget runs out.
//
// A SimWorld never talks to an Actor directly.
type SimWorld interface {
	// ProduceInitialState resets the world (randomizing where the world
	// specifies it), clears all episode-local failure flags and step
	// counters, and returns the encoded initial state
	ProduceInitialState() State

	// Update applies action a, advances the world by one step and
	// returns the reward. If a is illegal in the current state, the
	// returned error wraps ErrIllegalAction and the world is unchanged.
	Update(a Action) (float64, error)

	// CurrentState returns the encoded current state. It has no side
	// effects.
	CurrentState() State

	// IsFinalState returns whether the episode ended in success
	IsFinalState() bool

	// IsFailedState returns whether a failure condition was triggered
	// at any point this episode. Once true, it stays true until the
	// next call to ProduceInitialState.
	IsFailedState() bool

	// LegalActions returns the actions that are legal from the
	// argument state, or from the current state if no state is given
	LegalActions(s ...State) ([]Action, error)

	// IsLegal returns whether a is legal in the current state
	IsLegal(a Action) bool
}

// Historian is a SimWorld which records a scalar trajectory of the
// current episode, for example the pole angle or the number of coins
type Historian interface {
	SimWorld

	// History returns a copy of the trajectory of the current episode
	History() []float64

	// Steps returns the number of steps taken in the current episode
	Steps() int
}

// StateLengther is a SimWorld which knows the length of its encoded
// states without producing one
type StateLengther interface {
	StateLen() int
}

// StateLen returns the length of the encoded state representation of
// a SimWorld
func StateLen(w SimWorld) int {
	if l, ok := w.(StateLengther); ok {
		return l.StateLen()
	}
	return w.CurrentState().Len()
}
