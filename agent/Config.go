package agent

import (
	"fmt"

	"golang.org/x/exp/rand"

	lcritic "github.com/samuelfneumann/gprl/agent/linear/critic"
	nncritic "github.com/samuelfneumann/gprl/agent/nonlinear/critic"
	"github.com/samuelfneumann/gprl/agent/tabular/actor"
	tcritic "github.com/samuelfneumann/gprl/agent/tabular/critic"
	"github.com/samuelfneumann/gprl/agent/tabular/policy"
	"github.com/samuelfneumann/gprl/initwfn"
	"github.com/samuelfneumann/gprl/network"
	"github.com/samuelfneumann/gprl/solver"
)

// CriticType determines which value function approximator the Critic
// uses
type CriticType string

const (
	Table  CriticType = "table"
	Linear CriticType = "linear"
	MLP    CriticType = "mlp"
)

// Config describes an ActorCritic agent
type Config struct {
	ActorLearningRate  float64
	CriticLearningRate float64
	DiscountRate       float64
	TraceDecay         float64

	// Trace is the actor's trace, "replacing" or "accumulating"
	Trace string

	// Epsilon is the initial exploration probability of the ε-greedy
	// behaviour policy
	Epsilon float64

	Critic CriticType

	// Bias adds a bias feature to a linear critic
	Bias bool `json:",omitempty"`

	// HiddenSizes and Activations describe the hidden layers of an MLP
	// critic
	HiddenSizes []int                 `json:",omitempty"`
	Activations []*network.Activation `json:",omitempty"`

	// Solver is the MLP critic's solver. If nil, vanilla gradient
	// descent with step size CriticLearningRate is used.
	Solver *solver.Solver `json:",omitempty"`

	// Init initializes the MLP critic's weights. If nil, Glorot uniform
	// initialization with unit gain is used.
	Init *initwfn.InitWFn `json:",omitempty"`
}

// DefaultConfig returns the default agent configuration, which uses a
// table critic
func DefaultConfig() Config {
	return Config{
		ActorLearningRate:  0.1,
		CriticLearningRate: 0.1,
		DiscountRate:       0.9,
		TraceDecay:         0.9,
		Trace:              actor.Replacing.String(),
		Epsilon:            0.5,
		Critic:             Table,
	}
}

// Validate returns an error if the configuration is invalid
func (c Config) Validate() error {
	if _, err := actor.ParseTrace(c.Trace); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("validate: epsilon %v not in [0, 1]", c.Epsilon)
	}
	if c.CriticLearningRate <= 0 {
		return fmt.Errorf("validate: critic learning rate must be positive")
	}

	switch c.Critic {
	case Table, Linear:
	case MLP:
		if len(c.HiddenSizes) != len(c.Activations) {
			return fmt.Errorf("validate: %v hidden layers but %v activations",
				len(c.HiddenSizes), len(c.Activations))
		}
	default:
		return fmt.Errorf("validate: unknown critic type %q", c.Critic)
	}

	return c.actorConfig().Validate()
}

func (c Config) actorConfig() actor.Config {
	trace, _ := actor.ParseTrace(c.Trace)
	return actor.Config{
		LearningRate: c.ActorLearningRate,
		DiscountRate: c.DiscountRate,
		TraceDecay:   c.TraceDecay,
		Trace:        trace,
	}
}

// CreateCritic creates the Critic described by the Config for encoded
// states of length stateLen
func (c Config) CreateCritic(stateLen int, src rand.Source) (Critic, error) {
	switch c.Critic {
	case Table:
		return tcritic.NewTable(tcritic.Config{
			LearningRate: c.CriticLearningRate,
			DiscountRate: c.DiscountRate,
			TraceDecay:   c.TraceDecay,
		}, src)

	case Linear:
		return lcritic.NewLinear(lcritic.Config{
			LearningRate: c.CriticLearningRate,
			DiscountRate: c.DiscountRate,
			TraceDecay:   c.TraceDecay,
			Bias:         c.Bias,
		}, stateLen)

	case MLP:
		s := c.Solver
		if s == nil {
			var err error
			s, err = solver.NewVanilla(c.CriticLearningRate, -1)
			if err != nil {
				return nil, fmt.Errorf("createCritic: %v", err)
			}
		}
		init := c.Init
		if init == nil {
			var err error
			init, err = initwfn.NewGlorotU(1.0)
			if err != nil {
				return nil, fmt.Errorf("createCritic: %v", err)
			}
		}
		return nncritic.NewMLP(nncritic.Config{
			DiscountRate: c.DiscountRate,
			HiddenSizes:  c.HiddenSizes,
			Activations:  c.Activations,
			Init:         init,
			Solver:       s,
		}, stateLen)
	}

	return nil, fmt.Errorf("createCritic: unknown critic type %q", c.Critic)
}

// CreateAgent creates the ActorCritic described by the Config for
// encoded states of length stateLen. All randomness is drawn from src.
func (c Config) CreateAgent(stateLen int, src rand.Source) (*ActorCritic,
	error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createAgent: %v", err)
	}

	a, err := actor.New(c.actorConfig(), src)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %v", err)
	}

	critic, err := c.CreateCritic(stateLen, src)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %v", err)
	}

	behaviour, err := policy.NewEGreedy(c.Epsilon, a, src)
	if err != nil {
		return nil, fmt.Errorf("createAgent: %v", err)
	}

	return NewActorCritic(a, critic, behaviour), nil
}
