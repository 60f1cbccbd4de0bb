package environment

import (
	"testing"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/spatial/r1"
)

func TestStepLimit(t *testing.T) {
	s := NewStepLimit(3)
	for i := 1; i <= 3; i++ {
		reached := s.Step()
		if reached != (i == 3) {
			t.Errorf("step %v: want reached=%v, have %v", i, i == 3, reached)
		}
	}
	if s.Steps() != 3 {
		t.Errorf("steps: want 3, have %v", s.Steps())
	}

	s.Reset()
	if s.Reached() || s.Steps() != 0 {
		t.Error("reset: step limit should be cleared")
	}
}

func TestIntervalLimitLatches(t *testing.T) {
	i := NewSymmetricLimit(1.0)

	if i.Check(0.5) {
		t.Error("check: value inside interval tripped the limit")
	}
	if !i.Check(1.0) {
		t.Error("check: value on the boundary should trip the limit")
	}
	if !i.Check(0.0) {
		t.Error("check: limit should stay tripped after value returns")
	}

	i.Reset()
	if i.Tripped() {
		t.Error("reset: limit should be un-tripped")
	}
	if !i.Check(-2.0) {
		t.Error("check: value below interval should trip the limit")
	}
}

func TestUniformStarter(t *testing.T) {
	bounds := []r1.Interval{{Min: 0, Max: 0}, {Min: -0.5, Max: 0.5}}
	u := NewUniformStarter(bounds, rand.NewSource(1))

	for i := 0; i < 100; i++ {
		start := u.Start()
		if len(start) != u.Features() {
			t.Fatalf("start: want %v features, have %v", u.Features(),
				len(start))
		}
		if start[0] != 0 {
			t.Errorf("start: degenerate interval should produce 0, have %v",
				start[0])
		}
		if start[1] < -0.5 || start[1] > 0.5 {
			t.Errorf("start: %v out of bounds", start[1])
		}
	}
}

func TestCategoricalStarter(t *testing.T) {
	c, err := NewCategoricalStarter(3, 5, rand.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		start := c.Start()
		if start < 3 || start > 5 {
			t.Errorf("start: %v out of range [3, 5]", start)
		}
		seen[start] = true
	}
	if len(seen) != 3 {
		t.Errorf("start: want all of [3, 5] sampled, have %v", seen)
	}

	if _, err := NewCategoricalStarter(5, 3, rand.NewSource(1)); err == nil {
		t.Error("newCategoricalStarter: expected error for max < min")
	}
}
