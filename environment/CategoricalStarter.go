package environment

import (
	"fmt"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// CategoricalStarter samples integer starting states uniformly from
// the inclusive range [Min, Max]
type CategoricalStarter struct {
	min  int
	rand distuv.Categorical
}

// NewCategoricalStarter returns a new CategoricalStarter sampling
// from [min, max] using the random source src
func NewCategoricalStarter(min, max int, src rand.Source) (CategoricalStarter,
	error) {
	if max < min {
		return CategoricalStarter{}, fmt.Errorf("newCategoricalStarter: "+
			"max %v < min %v", max, min)
	}

	weights := make([]float64, max-min+1)
	for i := range weights {
		weights[i] = 1.0 / float64(len(weights))
	}

	return CategoricalStarter{min, distuv.NewCategorical(weights, src)}, nil
}

// Start returns a starting state
func (c CategoricalStarter) Start() int {
	return c.min + int(c.rand.Rand())
}
