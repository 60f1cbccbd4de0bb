// Package critic implements a state-value critic using a neural
// network function approximator
package critic

import (
	"fmt"

	env "github.com/samuelfneumann/gprl/environment"
	"github.com/samuelfneumann/gprl/initwfn"
	"github.com/samuelfneumann/gprl/network"
	"github.com/samuelfneumann/gprl/solver"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Config determines the architecture and hyperparameters of an MLP
// critic
type Config struct {
	DiscountRate float64

	HiddenSizes []int
	Activations []*network.Activation

	// Init initializes the network weights
	Init *initwfn.InitWFn

	Solver *solver.Solver
}

// Validate returns an error if the configuration is invalid
func (c Config) Validate() error {
	if c.DiscountRate < 0 || c.DiscountRate > 1 {
		return fmt.Errorf("validate: discount rate %v not in [0, 1]",
			c.DiscountRate)
	}
	if len(c.HiddenSizes) != len(c.Activations) {
		return fmt.Errorf("validate: %v hidden layers but %v activations",
			len(c.HiddenSizes), len(c.Activations))
	}
	if c.Solver == nil {
		return fmt.Errorf("validate: no solver")
	}
	if c.Init == nil {
		return fmt.Errorf("validate: no weight initializer")
	}
	return nil
}

// MLP estimates state values with a multi-layered perceptron taking
// the encoded state as input. It learns by semi-gradient TD(0): each
// update takes one solver step on the squared error between v(s) and
// the target v(s) + δ = r + γv(s').
//
// Two copies of the network are kept. The training network's graph
// holds the loss gradients and is run only by Update. Values are
// predicted by a copy on a separate graph without gradients, whose
// weights are set to those of the training network after each update.
//
// MLP does not use eligibility traces.
type MLP struct {
	// Prediction
	predNet *network.MLP
	predVM  G.VM

	// Training
	trainNet *network.MLP
	trainVM  G.VM
	solver   G.Solver
	targets  *G.Node

	drate float64
}

// NewMLP returns a new MLP critic for encoded states of length
// stateLen
func NewMLP(c Config, stateLen int) (*MLP, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newMLP: %v", err)
	}

	trainGraph := G.NewGraph()
	trainNet, err := network.NewMLP(trainGraph, stateLen, 1, c.HiddenSizes,
		c.Activations, c.Init.InitWFn())
	if err != nil {
		return nil, fmt.Errorf("newMLP: could not create network: %v", err)
	}

	targets := G.NewMatrix(
		trainGraph,
		tensor.Float64,
		G.WithShape(trainNet.Prediction().Shape()...),
		G.WithName("ValueFunctionUpdateTarget"),
		G.WithInit(G.Zeroes()),
	)
	loss := G.Must(G.Sub(trainNet.Prediction(), targets))
	loss = G.Must(G.Square(loss))
	loss = G.Must(G.Mean(loss))

	if _, err := G.Grad(loss, trainNet.Learnables()...); err != nil {
		return nil, fmt.Errorf("newMLP: could not compute value function "+
			"gradient: %v", err)
	}
	trainVM := G.NewTapeMachine(trainGraph,
		G.BindDualValues(trainNet.Learnables()...))

	predGraph := G.NewGraph()
	predNet, err := network.NewMLP(predGraph, stateLen, 1, c.HiddenSizes,
		c.Activations, G.Zeroes())
	if err != nil {
		return nil, fmt.Errorf("newMLP: could not create prediction "+
			"network: %v", err)
	}
	if err := predNet.Set(trainNet); err != nil {
		return nil, fmt.Errorf("newMLP: could not set prediction network "+
			"weights: %v", err)
	}
	predVM := G.NewTapeMachine(predGraph)

	return &MLP{
		predNet:  predNet,
		predVM:   predVM,
		trainNet: trainNet,
		trainVM:  trainVM,
		solver:   c.Solver,
		targets:  targets,
		drate:    c.DiscountRate,
	}, nil
}

// input returns the encoding of s as network input
func input(s env.State) []float64 {
	values := s.Values()
	in := make([]float64, len(values))
	for i, v := range values {
		in[i] = float64(v)
	}
	return in
}

// predict runs the prediction graph on s and returns its value
func (m *MLP) predict(s env.State) (float64, error) {
	defer m.predVM.Reset()

	if err := m.predNet.SetInput(input(s)); err != nil {
		return 0, fmt.Errorf("predict: could not set input: %v", err)
	}
	if err := m.predVM.RunAll(); err != nil {
		return 0, fmt.Errorf("predict: %v", err)
	}
	return m.predNet.Output()[0], nil
}

// Value returns the estimated value of s
func (m *MLP) Value(s env.State) float64 {
	v, err := m.predict(s)
	if err != nil {
		panic(fmt.Sprintf("value: %v", err))
	}
	return v
}

// TDError returns r + γ·v(next)·(1 - terminal) - v(s)
func (m *MLP) TDError(s env.State, r float64, next env.State,
	terminal bool) float64 {
	target := r
	if !terminal {
		target += m.drate * m.Value(next)
	}
	return target - m.Value(s)
}

// Update takes one solver step towards the target v(s) + tdError
func (m *MLP) Update(s env.State, tdError float64) error {
	v, err := m.predict(s)
	if err != nil {
		return fmt.Errorf("update: %v", err)
	}

	if err := m.train(s, v+tdError); err != nil {
		return fmt.Errorf("update: %v", err)
	}

	if err := m.predNet.Set(m.trainNet); err != nil {
		return fmt.Errorf("update: could not set prediction network "+
			"weights: %v", err)
	}
	return nil
}

// train runs the training graph on s with the given target and steps
// the solver along the resulting gradients
func (m *MLP) train(s env.State, target float64) error {
	defer m.trainVM.Reset()

	if err := m.trainNet.SetInput(input(s)); err != nil {
		return fmt.Errorf("train: could not set input: %v", err)
	}

	targetTensor := tensor.New(
		tensor.WithBacking([]float64{target}),
		tensor.WithShape(m.targets.Shape()...),
	)
	if err := G.Let(m.targets, targetTensor); err != nil {
		return fmt.Errorf("train: could not set target: %v", err)
	}

	if err := m.trainVM.RunAll(); err != nil {
		return fmt.Errorf("train: %v", err)
	}
	if err := m.solver.Step(m.trainNet.Model()); err != nil {
		return fmt.Errorf("train: could not step solver: %v", err)
	}
	return nil
}

// InitiateEligibility is a no-op, since the MLP critic does not use
// eligibility traces
func (m *MLP) InitiateEligibility() {}

// Close releases the resources of the MLP critic's VMs
func (m *MLP) Close() error {
	trainErr := m.trainVM.Close()
	if err := m.predVM.Close(); err != nil {
		return fmt.Errorf("close: %v", err)
	}
	if trainErr != nil {
		return fmt.Errorf("close: %v", trainErr)
	}
	return nil
}
