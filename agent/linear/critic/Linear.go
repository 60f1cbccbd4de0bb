// Package critic implements a state-value critic using linear function
// approximation over the encoded state
package critic

import (
	"fmt"

	env "github.com/samuelfneumann/gprl/environment"
	"gonum.org/v1/gonum/mat"
)

// Config determines the hyperparameters of a Linear critic
type Config struct {
	LearningRate float64
	DiscountRate float64
	TraceDecay   float64

	// Bias adds a constant feature of 1 to every feature vector
	Bias bool
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

// Linear estimates state values as v(s) = wᵀφ(s), where φ(s) are the
// elements of the encoded state, and learns the weights w with TD(λ)
// using accumulating traces z:
//
//	z ← γλz + φ(s)
//	w ← w + αδz
type Linear struct {
	weights *mat.VecDense
	trace   *mat.VecDense

	features int
	bias     bool

	lrate      float64
	drate      float64
	traceDecay float64
}

// NewLinear returns a new Linear critic for encoded states of length
// stateLen. All weights are initialized to 0.
func NewLinear(c Config, stateLen int) (*Linear, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newLinear: %v", err)
	}
	if stateLen <= 0 {
		return nil, fmt.Errorf("newLinear: state length must be positive")
	}

	features := stateLen
	if c.Bias {
		features++
	}

	return &Linear{
		weights:    mat.NewVecDense(features, nil),
		trace:      mat.NewVecDense(features, nil),
		features:   features,
		bias:       c.Bias,
		lrate:      c.LearningRate,
		drate:      c.DiscountRate,
		traceDecay: c.TraceDecay,
	}, nil
}

// featureVec returns the feature vector φ(s)
func (l *Linear) featureVec(s env.State) *mat.VecDense {
	values := s.Values()
	expected := l.features
	if l.bias {
		expected--
	}
	if len(values) != expected {
		panic(fmt.Sprintf("featureVec: state of length %v, expected %v",
			len(values), expected))
	}

	phi := make([]float64, l.features)
	for i, v := range values {
		phi[i] = float64(v)
	}
	if l.bias {
		phi[l.features-1] = 1.0
	}
	return mat.NewVecDense(l.features, phi)
}

// Value returns the estimated value of s
func (l *Linear) Value(s env.State) float64 {
	return mat.Dot(l.weights, l.featureVec(s))
}

// TDError returns r + γ·v(next)·(1 - terminal) - v(s)
func (l *Linear) TDError(s env.State, r float64, next env.State,
	terminal bool) float64 {
	target := r
	if !terminal {
		target += l.drate * l.Value(next)
	}
	return target - l.Value(s)
}

// Update decays the trace, adds φ(s) to it and moves the weights along
// the trace by LearningRate * tdError
func (l *Linear) Update(s env.State, tdError float64) error {
	l.trace.ScaleVec(l.drate*l.traceDecay, l.trace)
	l.trace.AddVec(l.trace, l.featureVec(s))
	l.weights.AddScaledVec(l.weights, l.lrate*tdError, l.trace)
	return nil
}

// InitiateEligibility zeroes the trace. It should be called at the
// start of each episode.
func (l *Linear) InitiateEligibility() {
	l.trace = mat.NewVecDense(l.features, nil)
}

// Weights returns a copy of the weights
func (l *Linear) Weights() *mat.VecDense {
	w := mat.NewVecDense(l.features, nil)
	w.CopyVec(l.weights)
	return w
}
