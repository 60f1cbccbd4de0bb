// Package initwfn wraps Gorgonia weight initializers so that they can
// be described in JSON configuration files
package initwfn

import (
	"encoding/json"
	"fmt"

	G "gorgonia.org/gorgonia"
)

// Type describes different types of weight initializers
type Type string

// Available weight initializer types
const (
	GlorotU  Type = "GlorotU"
	GlorotN  Type = "GlorotN"
	HeU      Type = "HeU"
	HeN      Type = "HeN"
	Uniform  Type = "Uniform"
	Gaussian Type = "Gaussian"
	Constant Type = "Constant"
)

// Config describes a Gorgonia weight initializer and can create it
type Config interface {
	// Create returns the Gorgonia InitWFn that the Config describes
	Create() G.InitWFn

	// Validate returns an error if the Config is invalid
	Validate() error

	// Type returns the type of weight initializer the Config creates
	Type() Type
}

// InitWFn wraps a Gorgonia InitWFn together with the Config that
// created it so that it can be marshalled to and unmarshalled from JSON
// as
//
//	{"Type": "GlorotU", "Config": {"Gain": 1}}
type InitWFn struct {
	initWFn G.InitWFn
	Config
}

// New returns a new InitWFn created from c
func New(c Config) (*InitWFn, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}
	return &InitWFn{initWFn: c.Create(), Config: c}, nil
}

// InitWFn returns the wrapped Gorgonia InitWFn
func (i *InitWFn) InitWFn() G.InitWFn {
	return i.initWFn
}

// String implements the fmt.Stringer interface
func (i *InitWFn) String() string {
	return fmt.Sprintf("{%v InitWFn: %+v}", i.Type(), i.Config)
}

type serialized struct {
	Type   Type
	Config json.RawMessage
}

// MarshalJSON implements the json.Marshaler interface
func (i *InitWFn) MarshalJSON() ([]byte, error) {
	config, err := json.Marshal(i.Config)
	if err != nil {
		return nil, fmt.Errorf("marshalJSON: %v", err)
	}
	return json.Marshal(serialized{Type: i.Type(), Config: config})
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (i *InitWFn) UnmarshalJSON(data []byte) error {
	var in serialized
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("unmarshalJSON: %v", err)
	}

	var config Config
	switch in.Type {
	case GlorotU, GlorotN, HeU, HeN:
		c := GainConfig{Kind: in.Type}
		if err := json.Unmarshal(in.Config, &c); err != nil {
			return fmt.Errorf("unmarshalJSON: %v", err)
		}
		c.Kind = in.Type
		config = c
	case Uniform:
		var c UniformConfig
		if err := json.Unmarshal(in.Config, &c); err != nil {
			return fmt.Errorf("unmarshalJSON: %v", err)
		}
		config = c
	case Gaussian:
		var c GaussianConfig
		if err := json.Unmarshal(in.Config, &c); err != nil {
			return fmt.Errorf("unmarshalJSON: %v", err)
		}
		config = c
	case Constant:
		var c ConstantConfig
		if err := json.Unmarshal(in.Config, &c); err != nil {
			return fmt.Errorf("unmarshalJSON: %v", err)
		}
		config = c
	default:
		return fmt.Errorf("unmarshalJSON: unknown initializer type %q",
			in.Type)
	}

	init, err := New(config)
	if err != nil {
		return fmt.Errorf("unmarshalJSON: %v", err)
	}
	*i = *init
	return nil
}
