package critic

import (
	"math"
	"testing"

	env "github.com/samuelfneumann/gprl/environment"
	"github.com/samuelfneumann/gprl/initwfn"
	"github.com/samuelfneumann/gprl/network"
	"github.com/samuelfneumann/gprl/solver"
)

func newMLP(t *testing.T) *MLP {
	t.Helper()
	s, err := solver.NewVanilla(0.05, -1)
	if err != nil {
		t.Fatal(err)
	}
	init, err := initwfn.NewGlorotU(1)
	if err != nil {
		t.Fatal(err)
	}

	m, err := NewMLP(Config{
		DiscountRate: 0.9,
		HiddenSizes:  []int{8},
		Activations:  []*network.Activation{network.TanH()},
		Init:         init,
		Solver:       s,
	}, 4)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestMLPValueDeterministic(t *testing.T) {
	m := newMLP(t)
	defer m.Close()

	s := env.OneHot(1, 4)
	v1, v2 := m.Value(s), m.Value(s)
	if v1 != v2 {
		t.Errorf("value: repeated evaluation differs: %v != %v", v1, v2)
	}
	if math.IsNaN(v1) {
		t.Error("value: NaN")
	}
}

func TestMLPTDError(t *testing.T) {
	m := newMLP(t)
	defer m.Close()

	s, next := env.OneHot(0, 4), env.OneHot(3, 4)
	want := 1.0 + 0.9*m.Value(next) - m.Value(s)
	if have := m.TDError(s, 1.0, next, false); math.Abs(have-want) > 1e-9 {
		t.Errorf("tdError: want %v, have %v", want, have)
	}

	want = 1.0 - m.Value(s)
	if have := m.TDError(s, 1.0, next, true); math.Abs(have-want) > 1e-9 {
		t.Errorf("tdError (terminal): want %v, have %v", want, have)
	}
}

func TestMLPLearnsTarget(t *testing.T) {
	tests := []struct {
		name        string
		extraValues int
	}{
		{"updates only", 0},
		{"one extra evaluation", 1},
		{"three extra evaluations", 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := newMLP(t)
			defer m.Close()

			s, other := env.OneHot(2, 4), env.OneHot(0, 4)
			target := 1.0
			before := math.Abs(target - m.Value(s))

			for i := 0; i < 2000; i++ {
				// Evaluating values must not move the weights
				for j := 0; j < test.extraValues; j++ {
					m.Value(s)
					m.Value(other)
				}
				if err := m.Update(s, target-m.Value(s)); err != nil {
					t.Fatal(err)
				}
			}

			after := math.Abs(target - m.Value(s))
			if after >= before || after > 0.01 {
				t.Errorf("update: error %v before training, %v after",
					before, after)
			}
		})
	}
}

func TestMLPValueDoesNotTrain(t *testing.T) {
	m := newMLP(t)
	defer m.Close()

	s := env.OneHot(3, 4)
	want := m.Value(s)
	for i := 0; i < 50; i++ {
		m.Value(env.OneHot(i%4, 4))
		m.TDError(s, 1.0, env.OneHot(1, 4), false)
	}
	if have := m.Value(s); have != want {
		t.Errorf("value: want %v after evaluations, have %v", want, have)
	}

	// An update with zero TD error leaves the value unchanged
	if err := m.Update(s, 0); err != nil {
		t.Fatal(err)
	}
	if have := m.Value(s); math.Abs(have-want) > 1e-12 {
		t.Errorf("update: want %v after zero TD error, have %v", want, have)
	}
}

func TestMLPInvalidConfig(t *testing.T) {
	s, _ := solver.NewVanilla(0.1, -1)
	init, _ := initwfn.NewGlorotU(1)
	configs := []Config{
		{DiscountRate: 0.9, HiddenSizes: []int{4}, Init: init, Solver: s},
		{DiscountRate: 0.9, Init: init},
		{DiscountRate: 0.9, Solver: s},
		{DiscountRate: 2, Init: init, Solver: s},
	}
	for _, c := range configs {
		if _, err := NewMLP(c, 3); err == nil {
			t.Errorf("newMLP: expected error for config %+v", c)
		}
	}
}
