package envconfig

import (
	"encoding/json"
	"testing"

	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/gprl/environment"
	"github.com/samuelfneumann/gprl/environment/classiccontrol/cartpole"
	"github.com/samuelfneumann/gprl/environment/gambler"
	"github.com/samuelfneumann/gprl/environment/hanoi"
)

func TestCreateWorld(t *testing.T) {
	tests := []struct {
		problem  Problem
		stateLen int
	}{
		{Gambler, gambler.MaxCoins + 1},
		{Cartpole, cartpole.StateLen},
		{Hanoi, hanoi.Pegs * hanoi.Discs},
	}

	for _, test := range tests {
		c := NewConfig(test.problem)
		world, err := c.CreateWorld(rand.NewSource(1))
		if err != nil {
			t.Fatalf("createWorld (%v): %v", test.problem, err)
		}

		s := world.ProduceInitialState()
		if s.Len() != test.stateLen {
			t.Errorf("createWorld (%v): want state length %v, have %v",
				test.problem, test.stateLen, s.Len())
		}
		if env.StateLen(world) != test.stateLen {
			t.Errorf("stateLen (%v): want %v, have %v", test.problem,
				test.stateLen, env.StateLen(world))
		}
	}
}

func TestMaxStepsOverride(t *testing.T) {
	c := NewConfig(Hanoi)
	c.MaxSteps = 2
	world, err := c.CreateWorld(rand.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}

	world.ProduceInitialState()
	h := world.(*hanoi.Hanoi)
	for _, a := range []env.Action{h.Action(0, 1), h.Action(1, 2)} {
		if _, err := world.Update(a); err != nil {
			t.Fatal(err)
		}
	}
	if !world.IsFailedState() {
		t.Error("createWorld: step budget of 2 not applied")
	}
}

func TestInvalidConfig(t *testing.T) {
	configs := []Config{
		{Problem: "chess"},
		{Problem: Gambler, WinProb: 1.5},
		{Problem: Hanoi, Pegs: 2, Discs: 3},
		{Problem: Gambler, MaxSteps: -1},
		{Problem: Cartpole, Cartpole: &cartpole.Config{}},
	}
	for _, c := range configs {
		if _, err := c.CreateWorld(rand.NewSource(1)); err == nil {
			t.Errorf("createWorld: expected error for %+v", c)
		}
	}
}

func TestConfigFromJSON(t *testing.T) {
	var c Config
	data := []byte(`{"Problem": "gambler", "WinProb": 0.55}`)
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatal(err)
	}

	world, err := c.CreateWorld(rand.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := world.(*gambler.Gambler); !ok {
		t.Errorf("createWorld: want *gambler.Gambler, have %T", world)
	}
}
