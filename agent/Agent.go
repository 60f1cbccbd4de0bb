// Package agent combines a tabular actor, a critic and a behaviour
// policy into an actor-critic agent
package agent

import (
	"fmt"
	"io"

	"github.com/samuelfneumann/gprl/agent/tabular/actor"
	"github.com/samuelfneumann/gprl/agent/tabular/policy"
	env "github.com/samuelfneumann/gprl/environment"
)

// Critic estimates state values and learns from TD errors
type Critic interface {
	// Value returns the estimated value of s
	Value(s env.State) float64

	// TDError returns the TD error of the transition from s to next
	// with reward r. If terminal is true, next has value 0.
	TDError(s env.State, r float64, next env.State, terminal bool) float64

	// Update updates the estimated value of s, and any states traced by
	// the critic, using tdError
	Update(s env.State, tdError float64) error

	// InitiateEligibility resets the eligibility traces of the critic
	// at the start of an episode
	InitiateEligibility()
}

// ActorCritic is an actor-critic agent. The Critic computes the TD
// error of each transition, which both the Critic and Actor learn
// from. Actions are selected by an ε-greedy policy over the Actor.
type ActorCritic struct {
	actor     *actor.Actor
	critic    Critic
	behaviour *policy.EGreedy
}

// NewActorCritic returns a new ActorCritic
func NewActorCritic(a *actor.Actor, c Critic,
	behaviour *policy.EGreedy) *ActorCritic {
	return &ActorCritic{actor: a, critic: c, behaviour: behaviour}
}

// Actor returns the agent's Actor
func (ac *ActorCritic) Actor() *actor.Actor {
	return ac.actor
}

// Critic returns the agent's Critic
func (ac *ActorCritic) Critic() Critic {
	return ac.critic
}

// Policy returns the agent's behaviour policy
func (ac *ActorCritic) Policy() *policy.EGreedy {
	return ac.behaviour
}

// InitiateEligibility resets the eligibility traces of the Actor and
// Critic. It should be called at the start of each episode.
func (ac *ActorCritic) InitiateEligibility() {
	ac.actor.InitiateEligibility()
	ac.critic.InitiateEligibility()
}

// SelectAction selects an action in state s from the legal actions
// using the behaviour policy
func (ac *ActorCritic) SelectAction(s env.State,
	actions []env.Action) (env.Action, error) {
	return ac.behaviour.SelectAction(s, actions)
}

// Learn updates the Critic and Actor on the transition from state s
// to next after taking action a and receiving reward r, and returns
// the TD error of the transition
func (ac *ActorCritic) Learn(s env.State, a env.Action, r float64,
	next env.State, terminal bool) (float64, error) {
	tdError := ac.critic.TDError(s, r, next, terminal)

	if err := ac.critic.Update(s, tdError); err != nil {
		return tdError, fmt.Errorf("learn: could not update critic: %v", err)
	}
	ac.actor.Step(env.NewKey(s, a), tdError)

	return tdError, nil
}

// Close releases any resources held by the Critic
func (ac *ActorCritic) Close() error {
	if c, ok := ac.critic.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
