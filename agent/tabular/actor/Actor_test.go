package actor

import (
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/gprl/environment"
)

func newActor(t *testing.T, trace Trace) *Actor {
	t.Helper()
	a, err := New(Config{
		LearningRate: 0.1,
		DiscountRate: 0.9,
		TraceDecay:   0.5,
		Trace:        trace,
	}, rand.NewSource(1))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return a
}

func TestDefaultsZero(t *testing.T) {
	a := newActor(t, Replacing)
	k := env.NewKey(env.OneHot(3, 5), 2)

	if v := a.Value(k); v != 0 {
		t.Errorf("value: want 0 for unseen pair, have %v", v)
	}
	if e := a.Eligibility(k); e != 0 {
		t.Errorf("eligibility: want 0 for unseen pair, have %v", e)
	}
	if len(a.Tracked()) != 0 {
		t.Errorf("tracked: want no tracked pairs, have %v", a.Tracked())
	}
}

func TestUpdateValue(t *testing.T) {
	a := newActor(t, Replacing)
	k := env.NewKey(env.OneHot(0, 2), 1)

	// Zero eligibility leaves the value untouched
	a.UpdateValue(k, 5.0)
	if v := a.Value(k); v != 0 {
		t.Errorf("updateValue: want 0 with zero eligibility, have %v", v)
	}

	a.SetValue(k, 1.0)
	a.SetEligibility(k, 0.5)
	a.UpdateValue(k, 2.0)
	want := 1.0 + 0.1*2.0*0.5
	if v := a.Value(k); math.Abs(v-want) > 1e-12 {
		t.Errorf("updateValue: want %v, have %v", want, v)
	}
}

func TestEligibilityDecaysGeometrically(t *testing.T) {
	a := newActor(t, Replacing)
	k := env.NewKey(env.OneHot(1, 2), 0)
	a.SetEligibility(k, 1.0)

	factor := 0.9 * 0.5
	for n := 1; n <= 5; n++ {
		a.UpdateEligibility(k)
		want := math.Pow(factor, float64(n))
		if e := a.Eligibility(k); math.Abs(e-want) > 1e-12 {
			t.Errorf("updateEligibility %v: want %v, have %v", n, want, e)
		}
	}
}

func TestInitiateEligibility(t *testing.T) {
	a := newActor(t, Replacing)
	k1 := env.NewKey(env.OneHot(0, 2), 0)
	k2 := env.NewKey(env.OneHot(1, 2), 1)
	a.SetEligibility(k1, 0.3)
	a.SetEligibility(k2, 1.0)
	a.SetValue(k1, 4.0)

	a.InitiateEligibility()

	if a.Eligibility(k1) != 0 || a.Eligibility(k2) != 0 {
		t.Error("initiateEligibility: eligibilities not cleared")
	}
	if len(a.Tracked()) != 0 {
		t.Errorf("initiateEligibility: want no tracked pairs, have %v",
			a.Tracked())
	}
	if a.Value(k1) != 4.0 {
		t.Error("initiateEligibility: policy values should be kept")
	}
}

func TestVisit(t *testing.T) {
	tests := []struct {
		trace Trace
		want  float64
	}{
		{Replacing, 1.0},
		{Accumulating, 1.45},
	}

	for _, test := range tests {
		a := newActor(t, test.trace)
		k := env.NewKey(env.OneHot(0, 2), 0)

		a.Visit(k)
		a.DecayEligibilities()
		a.Visit(k)

		if e := a.Eligibility(k); math.Abs(e-test.want) > 1e-12 {
			t.Errorf("visit (%v): want %v, have %v", test.trace, test.want,
				e)
		}
	}
}

func TestStep(t *testing.T) {
	a := newActor(t, Replacing)
	k1 := env.NewKey(env.OneHot(0, 2), 0)
	k2 := env.NewKey(env.OneHot(1, 2), 1)

	a.Step(k1, 1.0)
	if v := a.Value(k1); math.Abs(v-0.1) > 1e-12 {
		t.Errorf("step 1: want value 0.1, have %v", v)
	}

	a.Step(k2, 2.0)

	// k1 decayed to 0.45 before the second update
	want1 := 0.1 + 0.1*2.0*0.45
	want2 := 0.1 * 2.0
	if v := a.Value(k1); math.Abs(v-want1) > 1e-12 {
		t.Errorf("step 2: want value %v for first pair, have %v", want1, v)
	}
	if v := a.Value(k2); math.Abs(v-want2) > 1e-12 {
		t.Errorf("step 2: want value %v for second pair, have %v", want2, v)
	}
	if e := a.Eligibility(k2); e != 1.0 {
		t.Errorf("step 2: want eligibility 1 for visited pair, have %v", e)
	}
}

func TestStepMatchesComposition(t *testing.T) {
	keys := []env.Key{
		env.NewKey(env.OneHot(0, 3), 0),
		env.NewKey(env.OneHot(1, 3), 1),
		env.NewKey(env.OneHot(0, 3), 0),
		env.NewKey(env.OneHot(2, 3), 0),
		env.NewKey(env.OneHot(1, 3), 1),
		env.NewKey(env.OneHot(1, 3), 0),
	}
	tdErrors := []float64{1.0, -0.5, 2.0, 0.25, -1.5, 0.75}

	for _, trace := range []Trace{Replacing, Accumulating} {
		stepped, composed := newActor(t, trace), newActor(t, trace)

		for i, k := range keys {
			stepped.Step(k, tdErrors[i])

			composed.DecayEligibilities()
			composed.Visit(k)
			for _, pair := range composed.Tracked() {
				composed.UpdateValue(pair, tdErrors[i])
			}
		}

		if len(stepped.Tracked()) != len(composed.Tracked()) {
			t.Fatalf("step (%v): want %v tracked pairs, have %v", trace,
				len(composed.Tracked()), len(stepped.Tracked()))
		}
		for _, k := range composed.Tracked() {
			have, want := stepped.Eligibility(k), composed.Eligibility(k)
			if math.Abs(have-want) > 1e-12 {
				t.Errorf("step (%v): eligibility of %v: want %v, have %v",
					trace, k, want, have)
			}
			have, want = stepped.Value(k), composed.Value(k)
			if math.Abs(have-want) > 1e-12 {
				t.Errorf("step (%v): value of %v: want %v, have %v", trace,
					k, want, have)
			}
		}
	}
}

func TestProposedActionTieBreak(t *testing.T) {
	a := newActor(t, Replacing)
	s := env.OneHot(0, 3)
	actions := []env.Action{0, 1, 2}
	a.SetValue(env.NewKey(s, 0), 1.0)
	a.SetValue(env.NewKey(s, 1), 1.0)
	a.SetValue(env.NewKey(s, 2), 0.5)

	counts := make(map[env.Action]int)
	for i := 0; i < 1000; i++ {
		action, err := a.ProposedAction(true, s, actions)
		if err != nil {
			t.Fatal(err)
		}
		counts[action]++
	}

	if counts[2] != 0 {
		t.Errorf("proposedAction: non-maximal action chosen %v times",
			counts[2])
	}
	if counts[0] < 300 || counts[1] < 300 {
		t.Errorf("proposedAction: ties not broken uniformly: %v", counts)
	}
}

func TestProposedActionArgmax(t *testing.T) {
	a := newActor(t, Replacing)
	s := env.OneHot(1, 3)
	a.SetValue(env.NewKey(s, 3), -1.0)
	a.SetValue(env.NewKey(s, 7), 2.0)

	for i := 0; i < 10; i++ {
		action, err := a.ProposedAction(true, s, []env.Action{3, 5, 7})
		if err != nil {
			t.Fatal(err)
		}
		if action != 7 {
			t.Errorf("proposedAction: want 7, have %v", action)
		}
	}
}

func TestProposedActionRandom(t *testing.T) {
	a := newActor(t, Replacing)
	s := env.OneHot(1, 3)
	actions := []env.Action{4, 5, 6}
	a.SetValue(env.NewKey(s, 4), 100.0)

	seen := make(map[env.Action]bool)
	for i := 0; i < 300; i++ {
		action, err := a.ProposedAction(false, s, actions)
		if err != nil {
			t.Fatal(err)
		}
		seen[action] = true
	}
	if len(seen) != len(actions) {
		t.Errorf("proposedAction: want all actions proposed, have %v", seen)
	}
}

func TestProposedActionEmpty(t *testing.T) {
	a := newActor(t, Replacing)
	for _, doArgmax := range []bool{true, false} {
		_, err := a.ProposedAction(doArgmax, env.OneHot(0, 1), nil)
		if !errors.Is(err, ErrNoActions) {
			t.Errorf("proposedAction: want ErrNoActions, have %v", err)
		}
	}
}

func TestPolicy(t *testing.T) {
	a := newActor(t, Replacing)
	s0, s1 := env.OneHot(0, 2), env.OneHot(1, 2)
	a.SetValue(env.NewKey(s0, 1), 1.0)
	a.SetValue(env.NewKey(s1, 0), 1.0)

	greedy, err := a.Policy([]env.State{s0, s1},
		[][]env.Action{{0, 1}, {0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if greedy[0] != 1 || greedy[1] != 0 {
		t.Errorf("policy: want [1 0], have %v", greedy)
	}

	if _, err := a.Policy([]env.State{s0}, nil); err == nil {
		t.Error("policy: expected error for mismatched lengths")
	}
}

func TestInvalidConfig(t *testing.T) {
	configs := []Config{
		{LearningRate: 0, DiscountRate: 0.9, TraceDecay: 0.9},
		{LearningRate: 0.1, DiscountRate: 1.1, TraceDecay: 0.9},
		{LearningRate: 0.1, DiscountRate: 0.9, TraceDecay: -0.1},
		{LearningRate: 0.1, DiscountRate: 0.9, TraceDecay: 0.9, Trace: 5},
	}
	for _, c := range configs {
		if _, err := New(c, rand.NewSource(1)); err == nil {
			t.Errorf("new: expected error for config %+v", c)
		}
	}
}

func BenchmarkStep(b *testing.B) {
	a, _ := New(Config{
		LearningRate: 0.1,
		DiscountRate: 0.9,
		TraceDecay:   0.9,
	}, rand.NewSource(1))
	keys := make([]env.Key, 50)
	for i := range keys {
		keys[i] = env.NewKey(env.OneHot(i, len(keys)), 1)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%len(keys) == 0 {
			a.InitiateEligibility()
		}
		a.Step(keys[i%len(keys)], 0.5)
	}
}

func TestGob(t *testing.T) {
	a := newActor(t, Accumulating)
	k1 := env.NewKey(env.NewState(0, 1, -1), 2)
	k2 := env.StateKey(env.OneHot(0, 3))
	a.SetValue(k1, 0.75)
	a.SetValue(k2, -3)
	a.SetEligibility(k1, 1)

	encoded, err := a.GobEncode()
	if err != nil {
		t.Fatal(err)
	}

	var decoded Actor
	if err := decoded.GobDecode(encoded); err != nil {
		t.Fatal(err)
	}

	if decoded.Config() != a.Config() {
		t.Errorf("gobDecode: want config %+v, have %+v", a.Config(),
			decoded.Config())
	}
	if decoded.Value(k1) != 0.75 || decoded.Value(k2) != -3 {
		t.Errorf("gobDecode: policy values not restored")
	}
	if decoded.Eligibility(k1) != 0 {
		t.Errorf("gobDecode: eligibilities should not be restored")
	}
}
