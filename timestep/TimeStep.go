// Package timestep implements timesteps of the actor-world interaction
package timestep

import (
	"fmt"

	env "github.com/samuelfneumann/gprl/environment"
)

// StepType denotes the type of step that a TimeStep can be, either the
// first step of an episode, a middle step, or the last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single timestep in a SimWorld. State is
// the state reached on the step, Action the action which led to it and
// Reward the reward for taking it. The first TimeStep of an episode has
// Number 0, no reward and Action env.NoAction.
type TimeStep struct {
	stepType StepType
	Reward   float64
	State    env.State
	Action   env.Action
	Number   int

	// TDError is the critic's TD error on the transition into State
	TDError float64

	// Failed records whether the world was in a failed state
	Failed bool
}

// New returns a new TimeStep
func New(t StepType, r float64, s env.State, a env.Action, n int) TimeStep {
	return TimeStep{stepType: t, Reward: r, State: s, Action: a, Number: n}
}

// StepType returns the type of the TimeStep
func (t TimeStep) StepType() StepType {
	return t.stepType
}

// First returns whether a TimeStep is the first in an episode
func (t TimeStep) First() bool {
	return t.stepType == First
}

// Mid returns whether a TimeStep is a middle step in an episode
func (t TimeStep) Mid() bool {
	return t.stepType == Mid
}

// Last returns whether a TimeStep is the last step in an episode
func (t TimeStep) Last() bool {
	return t.stepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Action: %v  |  " +
		"Step Number:  %v"

	return fmt.Sprintf(str, t.stepType, t.Reward, t.Action, t.Number)
}
