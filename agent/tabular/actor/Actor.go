// Package actor implements a tabular actor which learns a policy from
// the TD errors of a critic using eligibility traces
package actor

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gprl/agent/tabular/table"
	env "github.com/samuelfneumann/gprl/environment"
)

// ErrNoActions is returned when an action is requested from an empty
// list of candidate actions
var ErrNoActions = errors.New("no actions to choose from")

// Trace determines how the eligibility of a visited state-action pair
// is bumped
type Trace int

const (
	// Replacing traces set the eligibility of a visited pair to 1
	Replacing Trace = iota

	// Accumulating traces add 1 to the eligibility of a visited pair
	Accumulating
)

// String implements the fmt.Stringer interface
func (t Trace) String() string {
	switch t {
	case Replacing:
		return "replacing"
	case Accumulating:
		return "accumulating"
	}
	return fmt.Sprintf("Trace(%d)", int(t))
}

// Config determines the hyperparameters of an Actor
type Config struct {
	LearningRate float64
	DiscountRate float64
	TraceDecay   float64
	Trace        Trace
}

// Validate returns an error if the configuration is invalid
func (c Config) Validate() error {
	if c.LearningRate <= 0 {
		return fmt.Errorf("validate: learning rate must be positive")
	}
	if c.DiscountRate < 0 || c.DiscountRate > 1 {
		return fmt.Errorf("validate: discount rate %v not in [0, 1]",
			c.DiscountRate)
	}
	if c.TraceDecay < 0 || c.TraceDecay > 1 {
		return fmt.Errorf("validate: trace decay %v not in [0, 1]",
			c.TraceDecay)
	}
	if c.Trace != Replacing && c.Trace != Accumulating {
		return fmt.Errorf("validate: unknown trace %v", c.Trace)
	}
	return nil
}

// Actor is a tabular actor. It stores a preference value for every
// state-action pair it has seen in its policy table, and an
// eligibility for every pair visited in the current episode. Both
// tables read absent pairs as 0.
//
// Each step, the Actor decays all tracked eligibilities by
// DiscountRate * TraceDecay, bumps the eligibility of the pair just
// visited, and moves the value of every tracked pair by
// LearningRate * δ * eligibility, where δ is the critic's TD error.
type Actor struct {
	policy      *table.Table
	eligibility *table.Table

	lrate      float64
	drate      float64
	traceDecay float64
	trace      Trace

	rng *rand.Rand
}

// New returns a new Actor. The Actor breaks ties and explores using
// src, which should be shared with the rest of the run.
func New(c Config, src rand.Source) (*Actor, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	return &Actor{
		policy:      table.New(),
		eligibility: table.New(),
		lrate:       c.LearningRate,
		drate:       c.DiscountRate,
		traceDecay:  c.TraceDecay,
		trace:       c.Trace,
		rng:         rand.New(src),
	}, nil
}

// Value returns the policy value of k
func (a *Actor) Value(k env.Key) float64 {
	return a.policy.Get(k)
}

// SetValue sets the policy value of k
func (a *Actor) SetValue(k env.Key, v float64) {
	a.policy.Set(k, v)
}

// Eligibility returns the eligibility of k
func (a *Actor) Eligibility(k env.Key) float64 {
	return a.eligibility.Get(k)
}

// SetEligibility sets the eligibility of k
func (a *Actor) SetEligibility(k env.Key, e float64) {
	a.eligibility.Set(k, e)
}

// UpdateValue moves the policy value of k by LearningRate * tdError *
// eligibility(k)
func (a *Actor) UpdateValue(k env.Key, tdError float64) {
	a.policy.Add(k, a.lrate*tdError*a.eligibility.Get(k))
}

// UpdateEligibility decays the eligibility of k by DiscountRate *
// TraceDecay
func (a *Actor) UpdateEligibility(k env.Key) {
	a.eligibility.Set(k, a.drate*a.traceDecay*a.eligibility.Get(k))
}

// DecayEligibilities decays the eligibility of every tracked pair
func (a *Actor) DecayEligibilities() {
	decay := a.drate * a.traceDecay
	a.eligibility.Map(func(_ env.Key, e float64) float64 {
		return decay * e
	})
}

// Visit bumps the eligibility of k according to the Actor's Trace
func (a *Actor) Visit(k env.Key) {
	a.eligibility.Set(k, a.bump(a.eligibility.Get(k)))
}

// bump returns the eligibility e after a visit
func (a *Actor) bump(e float64) float64 {
	if a.trace == Accumulating {
		return e + 1.0
	}
	return 1.0
}

// Tracked returns the pairs with a tracked eligibility, in a
// deterministic order
func (a *Actor) Tracked() []env.Key {
	return a.eligibility.Keys()
}

// InitiateEligibility clears all eligibilities. It should be called at
// the start of each episode.
func (a *Actor) InitiateEligibility() {
	a.eligibility.Clear()
}

// Step performs one learning step after taking the action of k in the
// state of k and observing the TD error tdError
//
// This is equivalent to DecayEligibilities, then Visit(k), then
// UpdateValue for every tracked pair, in a single pass over the
// eligibilities.
func (a *Actor) Step(k env.Key, tdError float64) {
	decay := a.drate * a.traceDecay
	tracked := a.eligibility.Contains(k)

	a.eligibility.Map(func(pair env.Key, e float64) float64 {
		e *= decay
		if pair == k {
			e = a.bump(e)
		}
		a.policy.Add(pair, a.lrate*tdError*e)
		return e
	})

	if !tracked {
		e := a.bump(0)
		a.eligibility.Set(k, e)
		a.policy.Add(k, a.lrate*tdError*e)
	}
}

// ProposedAction returns an action from actions. If doArgmax is true,
// the action with the largest value in state is returned, breaking
// ties uniformly at random. Otherwise, an action is chosen uniformly at
// random.
func (a *Actor) ProposedAction(doArgmax bool, state env.State,
	actions []env.Action) (env.Action, error) {
	if len(actions) == 0 {
		return env.NoAction, fmt.Errorf("proposedAction: %w", ErrNoActions)
	}

	if !doArgmax {
		return actions[a.rng.Intn(len(actions))], nil
	}

	best := []env.Action{actions[0]}
	bestValue := a.Value(env.NewKey(state, actions[0]))
	for _, action := range actions[1:] {
		v := a.Value(env.NewKey(state, action))
		if v > bestValue {
			best = best[:0]
			best = append(best, action)
			bestValue = v
		} else if v == bestValue {
			best = append(best, action)
		}
	}

	if len(best) == 1 {
		return best[0], nil
	}
	return best[a.rng.Intn(len(best))], nil
}

// Policy returns the greedy action for each of the argument states,
// where actions[i] are the candidate actions in states[i]
func (a *Actor) Policy(states []env.State,
	actions [][]env.Action) ([]env.Action, error) {
	if len(states) != len(actions) {
		return nil, fmt.Errorf("policy: %v states but %v action lists",
			len(states), len(actions))
	}

	greedy := make([]env.Action, len(states))
	for i := range states {
		var err error
		greedy[i], err = a.ProposedAction(true, states[i], actions[i])
		if err != nil {
			return nil, fmt.Errorf("policy: state %v: %w", states[i], err)
		}
	}
	return greedy, nil
}

// ParseTrace returns the Trace named s, one of "replacing" or
// "accumulating". The empty string names Replacing.
func ParseTrace(s string) (Trace, error) {
	switch s {
	case "", Replacing.String():
		return Replacing, nil
	case Accumulating.String():
		return Accumulating, nil
	}
	return Replacing, fmt.Errorf("parseTrace: unknown trace %q", s)
}

// Config returns the configuration of the Actor
func (a *Actor) Config() Config {
	return Config{
		LearningRate: a.lrate,
		DiscountRate: a.drate,
		TraceDecay:   a.traceDecay,
		Trace:        a.trace,
	}
}

// GobEncode implements the gob.GobEncoder interface. Only the
// configuration and policy table are encoded; eligibilities are
// episode-local.
func (a *Actor) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(a.Config()); err != nil {
		return nil, fmt.Errorf("gobEncode: could not encode config: %v", err)
	}
	if err := enc.Encode(a.policy.Entries()); err != nil {
		return nil, fmt.Errorf("gobEncode: could not encode policy: %v", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface. The Actor keeps
// its random source if it has one, otherwise a source seeded with 0 is
// used.
func (a *Actor) GobDecode(in []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(in))

	var c Config
	if err := dec.Decode(&c); err != nil {
		return fmt.Errorf("gobDecode: could not decode config: %v", err)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("gobDecode: %v", err)
	}

	var entries []table.Entry
	if err := dec.Decode(&entries); err != nil {
		return fmt.Errorf("gobDecode: could not decode policy: %v", err)
	}

	rng := a.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}

	*a = Actor{
		policy:      table.New(),
		eligibility: table.New(),
		lrate:       c.LearningRate,
		drate:       c.DiscountRate,
		traceDecay:  c.TraceDecay,
		trace:       c.Trace,
		rng:         rng,
	}
	a.policy.Load(entries)
	return nil
}
