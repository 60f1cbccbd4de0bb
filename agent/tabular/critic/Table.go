// Package critic implements a tabular state-value critic which learns
// with TD errors and eligibility traces
package critic

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gprl/agent/tabular/table"
	env "github.com/samuelfneumann/gprl/environment"
	"gonum.org/v1/gonum/stat/distuv"
)

// InitScale is the upper bound of the initial state values of a Table
// critic, which are drawn uniformly from [0, InitScale)
const InitScale = 0.1

// Config determines the hyperparameters of a Table critic
type Config struct {
	LearningRate float64
	DiscountRate float64
	TraceDecay   float64
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
	return nil
}

// Table is a tabular state-value critic. Values of unseen states are
// drawn uniformly from [0, InitScale) on first use. Eligibilities use
// replacing traces.
type Table struct {
	values      *table.Table
	eligibility *table.Table

	lrate      float64
	drate      float64
	traceDecay float64
}

// NewTable returns a new Table critic drawing initial values from src
func NewTable(c Config, src rand.Source) (*Table, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newTable: %v", err)
	}

	init := distuv.Uniform{Min: 0, Max: InitScale, Src: src}
	return &Table{
		values: table.NewInitialized(func(env.Key) float64 {
			return init.Rand()
		}),
		eligibility: table.New(),
		lrate:       c.LearningRate,
		drate:       c.DiscountRate,
		traceDecay:  c.TraceDecay,
	}, nil
}

// Value returns the estimated value of s
func (t *Table) Value(s env.State) float64 {
	return t.values.Get(env.StateKey(s))
}

// SetValue sets the estimated value of s
func (t *Table) SetValue(s env.State, v float64) {
	t.values.Set(env.StateKey(s), v)
}

// Eligibility returns the eligibility of s
func (t *Table) Eligibility(s env.State) float64 {
	return t.eligibility.Get(env.StateKey(s))
}

// TDError returns r + γ·V(next)·(1 - terminal) - V(s)
func (t *Table) TDError(s env.State, r float64, next env.State,
	terminal bool) float64 {
	target := r
	if !terminal {
		target += t.drate * t.Value(next)
	}
	return target - t.Value(s)
}

// Update decays all eligibilities, sets the eligibility of s to 1 and
// moves the value of every traced state by LearningRate * tdError *
// eligibility
func (t *Table) Update(s env.State, tdError float64) error {
	for _, k := range t.eligibility.Keys() {
		t.eligibility.Set(k, t.drate*t.traceDecay*t.eligibility.Get(k))
	}
	t.eligibility.Set(env.StateKey(s), 1.0)

	for _, k := range t.eligibility.Keys() {
		t.values.Add(k, t.lrate*tdError*t.eligibility.Get(k))
	}
	return nil
}

// InitiateEligibility clears all eligibilities. It should be called at
// the start of each episode.
func (t *Table) InitiateEligibility() {
	t.eligibility.Clear()
}

// Len returns the number of states with an estimated value
func (t *Table) Len() int {
	return t.values.Len()
}
