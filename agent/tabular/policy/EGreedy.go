// Package policy implements behaviour policies over a tabular actor
package policy

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gprl/agent/tabular/actor"
	env "github.com/samuelfneumann/gprl/environment"
	"gonum.org/v1/gonum/stat/distuv"
)

// EGreedy implements an ε-greedy policy over an Actor: with
// probability ε a legal action is chosen uniformly at random, otherwise
// the Actor's greedy action is chosen
type EGreedy struct {
	actor   *actor.Actor
	explore distuv.Bernoulli
}

// NewEGreedy returns a new ε-greedy policy over a, where e is the
// probability of exploring
func NewEGreedy(e float64, a *actor.Actor, src rand.Source) (*EGreedy,
	error) {
	if e < 0 || e > 1 {
		return nil, fmt.Errorf("newEGreedy: epsilon %v not in [0, 1]", e)
	}
	return &EGreedy{a, distuv.Bernoulli{P: e, Src: src}}, nil
}

// NewGreedy returns a new greedy policy over a
func NewGreedy(a *actor.Actor, src rand.Source) *EGreedy {
	p, _ := NewEGreedy(0.0, a, src)
	return p
}

// SelectAction selects an action in state s from the legal actions
func (p *EGreedy) SelectAction(s env.State, actions []env.Action) (env.Action,
	error) {
	greedy := true
	if p.explore.P > 0 {
		greedy = p.explore.Rand() == 0
	}
	return p.actor.ProposedAction(greedy, s, actions)
}

// Epsilon returns the probability of exploring
func (p *EGreedy) Epsilon() float64 {
	return p.explore.P
}

// SetEpsilon sets the probability of exploring
func (p *EGreedy) SetEpsilon(e float64) {
	if e < 0 || e > 1 {
		panic(fmt.Sprintf("setEpsilon: epsilon %v not in [0, 1]", e))
	}
	p.explore.P = e
}

// Decay multiplies ε by factor, without letting it drop below min
func (p *EGreedy) Decay(factor, min float64) {
	e := p.explore.P * factor
	if e < min {
		e = min
	}
	if e > 1 {
		e = 1
	}
	p.explore.P = e
}
