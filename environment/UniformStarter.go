package environment

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
)

// UniformStarter samples continuous starting states uniformly from a
// box. Degenerate intervals (Min == Max) always produce that value.
type UniformStarter struct {
	features int
	rand     *distmv.Uniform
}

// NewUniformStarter returns a new UniformStarter sampling dimension i
// from bounds[i] using the random source src
func NewUniformStarter(bounds []r1.Interval, src rand.Source) UniformStarter {
	return UniformStarter{len(bounds), distmv.NewUniform(bounds, src)}
}

// Start returns a starting state
func (u UniformStarter) Start() []float64 {
	return u.rand.Rand(nil)
}

// Features returns the dimension of the states sampled
func (u UniformStarter) Features() int {
	return u.features
}
