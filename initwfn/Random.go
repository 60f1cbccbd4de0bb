package initwfn

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// UniformConfig configures a weight initializer drawing weights
// uniformly from [Low, High)
type UniformConfig struct {
	Low, High float64
}

// NewUniform returns a new uniform weight initializer
func NewUniform(low, high float64) (*InitWFn, error) {
	return New(UniformConfig{Low: low, High: high})
}

// Type returns the type of initializer described by the configuration
func (u UniformConfig) Type() Type {
	return Uniform
}

// Validate returns an error if the configuration is invalid
func (u UniformConfig) Validate() error {
	if u.Low >= u.High {
		return fmt.Errorf("validate: low %v must be less than high %v",
			u.Low, u.High)
	}
	return nil
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (u UniformConfig) Create() G.InitWFn {
	return G.Uniform(u.Low, u.High)
}

// GaussianConfig configures a weight initializer drawing weights from
// a gaussian distribution
type GaussianConfig struct {
	Mean, StdDev float64
}

// NewGaussian returns a new gaussian weight initializer
func NewGaussian(mean, stddev float64) (*InitWFn, error) {
	return New(GaussianConfig{Mean: mean, StdDev: stddev})
}

// Type returns the type of initializer described by the configuration
func (g GaussianConfig) Type() Type {
	return Gaussian
}

// Validate returns an error if the configuration is invalid
func (g GaussianConfig) Validate() error {
	if g.StdDev <= 0 {
		return fmt.Errorf("validate: standard deviation must be positive")
	}
	return nil
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (g GaussianConfig) Create() G.InitWFn {
	return G.Gaussian(g.Mean, g.StdDev)
}

// ConstantConfig configures a weight initializer setting all weights
// to Value
type ConstantConfig struct {
	Value float64
}

// NewConstant returns a new constant weight initializer
func NewConstant(value float64) (*InitWFn, error) {
	return New(ConstantConfig{Value: value})
}

// Type returns the type of initializer described by the configuration
func (c ConstantConfig) Type() Type {
	return Constant
}

// Validate returns an error if the configuration is invalid
func (c ConstantConfig) Validate() error {
	return nil
}

// Create returns the weight initialization algorithm as a Gorgonia
// InitWFn
func (c ConstantConfig) Create() G.InitWFn {
	return G.ValuesOf(c.Value)
}
