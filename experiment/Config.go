package experiment

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gprl/agent"
	env "github.com/samuelfneumann/gprl/environment"
	"github.com/samuelfneumann/gprl/environment/envconfig"
	"github.com/samuelfneumann/gprl/experiment/trackers"
)

// RunConfig determines how long an Online experiment runs and how its
// exploration rate decays
type RunConfig struct {
	Episodes int

	// MaxSteps bounds the number of steps of an episode, in addition
	// to the world's own step budget. If 0, only the world's budget
	// applies.
	MaxSteps int

	// After each episode, ε ← max(ε * EpsilonDecay, MinEpsilon)
	EpsilonDecay float64
	MinEpsilon   float64

	// LogEvery is the number of episodes between log lines, or 0 for no
	// logging
	LogEvery int
}

// Validate returns an error if the configuration is invalid
func (r RunConfig) Validate() error {
	switch {
	case r.Episodes < 0:
		return fmt.Errorf("validate: episodes must be non-negative")
	case r.MaxSteps < 0:
		return fmt.Errorf("validate: max steps must be non-negative")
	case r.EpsilonDecay < 0 || r.EpsilonDecay > 1:
		return fmt.Errorf("validate: epsilon decay %v not in [0, 1]",
			r.EpsilonDecay)
	case r.MinEpsilon < 0 || r.MinEpsilon > 1:
		return fmt.Errorf("validate: min epsilon %v not in [0, 1]",
			r.MinEpsilon)
	case r.LogEvery < 0:
		return fmt.Errorf("validate: log interval must be non-negative")
	}
	return nil
}

// Config describes a complete experiment: the world, the agent and how
// long to train. All randomness of an experiment is drawn from a single
// source seeded with Seed.
type Config struct {
	Seed uint64
	RunConfig
	Env   envconfig.Config
	Agent agent.Config
}

// DefaultConfig returns the default experiment configuration for
// problem p
func DefaultConfig(p envconfig.Problem) Config {
	c := Config{
		Seed: 1,
		RunConfig: RunConfig{
			Episodes:     500,
			EpsilonDecay: 0.99,
			MinEpsilon:   0.01,
			LogEvery:     100,
		},
		Env:   envconfig.NewConfig(p),
		Agent: agent.DefaultConfig(),
	}

	switch p {
	case envconfig.Gambler:
		c.Episodes = 5000
		c.EpsilonDecay = 0.999
		c.LogEvery = 500
		c.Agent.DiscountRate = 1.0
		c.Agent.ActorLearningRate = 0.05
		c.Agent.CriticLearningRate = 0.05

	case envconfig.Cartpole:
		c.Agent.ActorLearningRate = 0.3
		c.Agent.CriticLearningRate = 0.3
		c.Agent.DiscountRate = 0.9
		c.Agent.TraceDecay = 0.8

	case envconfig.Hanoi:
		c.Agent.DiscountRate = 0.95
	}
	return c
}

// LoadConfig reads a JSON encoded Config from path
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: %v", err)
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not decode %v: %v",
			path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("loadConfig: %v", err)
	}
	return c, nil
}

// Validate returns an error if the configuration is invalid
func (c Config) Validate() error {
	if err := c.RunConfig.Validate(); err != nil {
		return err
	}
	if err := c.Env.Validate(); err != nil {
		return err
	}
	return c.Agent.Validate()
}

// CreateOnline creates the world, the agent and the Online experiment
// described by the Config. The world is returned so that callers can
// inspect it after training.
func (c Config) CreateOnline(logger *log.Logger,
	t ...trackers.Tracker) (*Online, env.Historian, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, fmt.Errorf("createOnline: %v", err)
	}

	src := rand.NewSource(c.Seed)

	world, err := c.Env.CreateWorld(src)
	if err != nil {
		return nil, nil, fmt.Errorf("createOnline: %v", err)
	}

	a, err := c.Agent.CreateAgent(env.StateLen(world), src)
	if err != nil {
		return nil, nil, fmt.Errorf("createOnline: %v", err)
	}

	o, err := NewOnline(world, a, c.RunConfig, logger, t...)
	if err != nil {
		return nil, nil, fmt.Errorf("createOnline: %v", err)
	}
	return o, world, nil
}
