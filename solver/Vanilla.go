package solver

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// VanillaConfig describes a configuration of the vanilla stochastic
// gradient descent solver
type VanillaConfig struct {
	StepSize float64
	Clip     float64 // <= 0 if no clipping
}

// NewVanilla returns a new vanilla gradient descent Solver
func NewVanilla(stepSize, clip float64) (*Solver, error) {
	return New(VanillaConfig{StepSize: stepSize, Clip: clip})
}

// Create returns the Gorgonia Solver described by the VanillaConfig
func (v VanillaConfig) Create() G.Solver {
	if v.Clip <= 0 {
		return G.NewVanillaSolver(G.WithLearnRate(v.StepSize))
	}
	return G.NewVanillaSolver(
		G.WithLearnRate(v.StepSize),
		G.WithClip(v.Clip),
	)
}

// Validate returns an error if the VanillaConfig is invalid
func (v VanillaConfig) Validate() error {
	if v.StepSize <= 0 {
		return fmt.Errorf("validate: step size must be positive")
	}
	return nil
}

// Type returns the Vanilla type
func (v VanillaConfig) Type() Type {
	return Vanilla
}
