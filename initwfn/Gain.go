package initwfn

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// GainConfig configures one of the fan-scaled initializers: Glorot or
// He, with uniform or normal draws
type GainConfig struct {
	Kind Type `json:"-"`
	Gain float64
}

// NewGlorotU returns a new Glorot uniform weight initializer
func NewGlorotU(gain float64) (*InitWFn, error) {
	return New(GainConfig{Kind: GlorotU, Gain: gain})
}

// NewGlorotN returns a new Glorot normal weight initializer
func NewGlorotN(gain float64) (*InitWFn, error) {
	return New(GainConfig{Kind: GlorotN, Gain: gain})
}

// NewHeU returns a new He uniform weight initializer
func NewHeU(gain float64) (*InitWFn, error) {
	return New(GainConfig{Kind: HeU, Gain: gain})
}

// NewHeN returns a new He normal weight initializer
func NewHeN(gain float64) (*InitWFn, error) {
	return New(GainConfig{Kind: HeN, Gain: gain})
}

// Type returns the type of initializer described by the configuration
func (g GainConfig) Type() Type {
	return g.Kind
}

// Validate returns an error if the configuration is invalid
func (g GainConfig) Validate() error {
	switch g.Kind {
	case GlorotU, GlorotN, HeU, HeN:
	default:
		return fmt.Errorf("validate: %q is not a gain initializer", g.Kind)
	}
	if g.Gain <= 0 {
		return fmt.Errorf("validate: gain must be positive")
	}
	return nil
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (g GainConfig) Create() G.InitWFn {
	switch g.Kind {
	case GlorotN:
		return G.GlorotN(g.Gain)
	case HeU:
		return G.HeU(g.Gain)
	case HeN:
		return G.HeN(g.Gain)
	default:
		return G.GlorotU(g.Gain)
	}
}
