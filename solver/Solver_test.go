package solver

import (
	"encoding/json"
	"testing"
)

func TestNew(t *testing.T) {
	if _, err := NewVanilla(0, 0); err == nil {
		t.Errorf("newVanilla: want error for zero step size")
	}

	s, err := NewVanilla(0.01, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.Type() != Vanilla || s.Solver == nil {
		t.Errorf("newVanilla: have type %v", s.Type())
	}

	a, err := NewDefaultAdam(0.001)
	if err != nil {
		t.Fatal(err)
	}
	if a.Type() != Adam || a.Solver == nil {
		t.Errorf("newDefaultAdam: have type %v", a.Type())
	}
}

func TestUnmarshalJSON(t *testing.T) {
	var s Solver
	in := `{"Type": "Vanilla", "Config": {"StepSize": 0.5, "Clip": 1}}`
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatal(err)
	}

	c, ok := s.Config.(VanillaConfig)
	if !ok {
		t.Fatalf("unmarshalJSON: want VanillaConfig, have %T", s.Config)
	}
	if c.StepSize != 0.5 || c.Clip != 1 {
		t.Errorf("unmarshalJSON: have %+v", c)
	}

	bad := []string{
		`{"Type": "RMSProp", "Config": {}}`,
		`{"Type": "Vanilla", "Config": {"StepSize": -1}}`,
	}
	for _, in := range bad {
		if err := json.Unmarshal([]byte(in), &s); err == nil {
			t.Errorf("unmarshalJSON %v: want error", in)
		}
	}
}
