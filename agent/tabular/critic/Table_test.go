package critic

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/gprl/environment"
)

func newTable(t *testing.T) *Table {
	t.Helper()
	c, err := NewTable(Config{
		LearningRate: 0.5,
		DiscountRate: 0.9,
		TraceDecay:   0.8,
	}, rand.NewSource(3))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestInitialValues(t *testing.T) {
	c := newTable(t)
	for i := 0; i < 20; i++ {
		s := env.OneHot(i, 20)
		v := c.Value(s)
		if v < 0 || v >= InitScale {
			t.Errorf("value: initial value %v not in [0, %v)", v, InitScale)
		}
		if c.Value(s) != v {
			t.Error("value: initial value changed between reads")
		}
	}
}

func TestTDError(t *testing.T) {
	c := newTable(t)
	s, next := env.OneHot(0, 2), env.OneHot(1, 2)
	c.SetValue(s, 1.0)
	c.SetValue(next, 2.0)

	want := 0.5 + 0.9*2.0 - 1.0
	if have := c.TDError(s, 0.5, next, false); math.Abs(have-want) > 1e-12 {
		t.Errorf("tdError: want %v, have %v", want, have)
	}

	want = 0.5 - 1.0
	if have := c.TDError(s, 0.5, next, true); math.Abs(have-want) > 1e-12 {
		t.Errorf("tdError (terminal): want %v, have %v", want, have)
	}
}

func TestUpdate(t *testing.T) {
	c := newTable(t)
	s0, s1 := env.OneHot(0, 2), env.OneHot(1, 2)
	c.SetValue(s0, 0)
	c.SetValue(s1, 0)

	if err := c.Update(s0, 1.0); err != nil {
		t.Fatal(err)
	}
	if v := c.Value(s0); math.Abs(v-0.5) > 1e-12 {
		t.Errorf("update: want 0.5, have %v", v)
	}

	if err := c.Update(s1, 1.0); err != nil {
		t.Fatal(err)
	}
	want := 0.5 + 0.5*0.9*0.8
	if v := c.Value(s0); math.Abs(v-want) > 1e-12 {
		t.Errorf("update: want %v for traced state, have %v", want, v)
	}
	if e := c.Eligibility(s1); e != 1.0 {
		t.Errorf("update: want eligibility 1 for visited state, have %v", e)
	}

	c.InitiateEligibility()
	if c.Eligibility(s0) != 0 || c.Eligibility(s1) != 0 {
		t.Error("initiateEligibility: eligibilities not cleared")
	}
}

func TestInvalidConfig(t *testing.T) {
	if _, err := NewTable(Config{DiscountRate: 0.9}, rand.NewSource(1)); err == nil {
		t.Error("newTable: expected error for zero learning rate")
	}
}
