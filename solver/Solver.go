// Package solver wraps Gorgonia Solvers so that they can be described
// in JSON configuration files
package solver

import (
	"encoding/json"
	"fmt"

	G "gorgonia.org/gorgonia"
)

// Type describes different types of solvers that are available
type Type string

// Available solver types
const (
	Adam    Type = "Adam"
	Vanilla Type = "Vanilla"
)

// Config describes a Gorgonia Solver and can create the Solver it
// describes
type Config interface {
	Create() G.Solver

	// Validate returns an error if the Config is invalid
	Validate() error

	// Type returns the type of Solver the Config creates
	Type() Type
}

// Solver wraps a Gorgonia Solver together with the Config that created
// it so that it can be marshalled to and unmarshalled from JSON as
//
//	{"Type": "Vanilla", "Config": {"StepSize": 0.01, ...}}
type Solver struct {
	G.Solver
	Config
}

// New returns a new Solver created from c
func New(c Config) (*Solver, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}
	return &Solver{Solver: c.Create(), Config: c}, nil
}

type serialized struct {
	Type   Type
	Config json.RawMessage
}

// MarshalJSON implements the json.Marshaler interface
func (s *Solver) MarshalJSON() ([]byte, error) {
	config, err := json.Marshal(s.Config)
	if err != nil {
		return nil, fmt.Errorf("marshalJSON: %v", err)
	}
	return json.Marshal(serialized{Type: s.Config.Type(), Config: config})
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (s *Solver) UnmarshalJSON(data []byte) error {
	var in serialized
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unmarshalJSON: %v", err)
	}

	var config Config
	switch in.Type {
	case Vanilla:
		var c VanillaConfig
		if err := json.Unmarshal(in.Config, &c); err != nil {
			return fmt.Errorf("unmarshalJSON: %v", err)
		}
		config = c
	case Adam:
		var c AdamConfig
		if err := json.Unmarshal(in.Config, &c); err != nil {
			return fmt.Errorf("unmarshalJSON: %v", err)
		}
		config = c
	default:
		return fmt.Errorf("unmarshalJSON: unknown solver type %q", in.Type)
	}

	solver, err := New(config)
	if err != nil {
		return fmt.Errorf("unmarshalJSON: %v", err)
	}
	*s = *solver
	return nil
}
