// Package envconfig provides configuration structs for creating
// SimWorlds with default parameters. Configurations in this package are
// JSON serializable.
package envconfig

import (
	"fmt"

	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/gprl/environment"
	"github.com/samuelfneumann/gprl/environment/classiccontrol/cartpole"
	"github.com/samuelfneumann/gprl/environment/gambler"
	"github.com/samuelfneumann/gprl/environment/hanoi"
)

// Problem names a SimWorld that can be configured with this package
type Problem string

// Problems available for configuration
const (
	Gambler  Problem = "gambler"
	Cartpole Problem = "cartpole"
	Hanoi    Problem = "hanoi"
)

// Problems returns all problems available for configuration
func Problems() []Problem {
	return []Problem{Gambler, Cartpole, Hanoi}
}

// Config describes a SimWorld. Fields which do not apply to the
// configured Problem are ignored.
type Config struct {
	Problem Problem

	// MaxSteps is the world's step budget per episode. If 0, the
	// world's default is used.
	MaxSteps int `json:",omitempty"`

	// Gambler
	WinProb float64 `json:",omitempty"`

	// Hanoi
	Pegs  int `json:",omitempty"`
	Discs int `json:",omitempty"`

	// Cartpole physical parameters. If nil, cartpole.DefaultConfig is
	// used.
	Cartpole *cartpole.Config `json:",omitempty"`
}

// NewConfig returns the default configuration of problem p
func NewConfig(p Problem) Config {
	c := Config{Problem: p}
	switch p {
	case Gambler:
		c.MaxSteps = gambler.MaxSteps
		c.WinProb = gambler.WinProb

	case Hanoi:
		c.MaxSteps = hanoi.MaxSteps
		c.Pegs = hanoi.Pegs
		c.Discs = hanoi.Discs

	case Cartpole:
		c.MaxSteps = cartpole.MaxSteps
		config := cartpole.DefaultConfig()
		c.Cartpole = &config
	}
	return c
}

// Validate returns an error if the configuration is invalid
func (c Config) Validate() error {
	if c.MaxSteps < 0 {
		return fmt.Errorf("validate: max steps must be non-negative")
	}

	switch c.Problem {
	case Gambler:
		if c.WinProb < 0 || c.WinProb > 1 {
			return fmt.Errorf("validate: win probability %v not in [0, 1]",
				c.WinProb)
		}

	case Hanoi:
		if c.Pegs < 3 || c.Discs < 1 {
			return fmt.Errorf("validate: need at least 3 pegs and 1 disc, "+
				"have %v pegs and %v discs", c.Pegs, c.Discs)
		}

	case Cartpole:
		if c.Cartpole != nil {
			if err := c.Cartpole.Validate(); err != nil {
				return fmt.Errorf("validate: %v", err)
			}
		}

	default:
		return fmt.Errorf("validate: unknown problem %q", c.Problem)
	}
	return nil
}

// maxSteps returns the configured step budget or def if none is set
func (c Config) maxSteps(def int) int {
	if c.MaxSteps == 0 {
		return def
	}
	return c.MaxSteps
}

// CreateWorld returns the SimWorld described by the Config. All
// randomness of the world is drawn from src.
func (c Config) CreateWorld(src rand.Source) (env.Historian, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("createWorld: %v", err)
	}

	switch c.Problem {
	case Gambler:
		return gambler.New(c.WinProb, c.maxSteps(gambler.MaxSteps), src)

	case Hanoi:
		return hanoi.New(c.Pegs, c.Discs, c.maxSteps(hanoi.MaxSteps))

	case Cartpole:
		config := cartpole.DefaultConfig()
		if c.Cartpole != nil {
			config = *c.Cartpole
		}
		config.MaxSteps = c.maxSteps(config.MaxSteps)
		return cartpole.New(config, src)
	}

	return nil, fmt.Errorf("createWorld: unknown problem %q", c.Problem)
}
