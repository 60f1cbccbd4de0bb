package experiment

import (
	"fmt"
	"log"

	"github.com/samuelfneumann/gprl/agent"
	env "github.com/samuelfneumann/gprl/environment"
	"github.com/samuelfneumann/gprl/experiment/checkpointer"
	"github.com/samuelfneumann/gprl/experiment/trackers"
	ts "github.com/samuelfneumann/gprl/timestep"
)

// Online is an Experiment in which an actor-critic agent learns online
// from every step it takes in a SimWorld.
//
// Each step, the agent selects one of the world's legal actions with
// its ε-greedy policy, the world is updated, the critic computes the TD
// error of the transition and both the critic and actor learn from it.
// An episode ends when the world reaches a final or failed state, or
// after MaxSteps steps.
type Online struct {
	world  env.SimWorld
	agent  *agent.ActorCritic
	config RunConfig

	trackers      []trackers.Tracker
	checkpointers []checkpointer.Checkpointer
	logger        *log.Logger
	lengths       []float64
	episode       int
}

// NewOnline returns a new Online experiment running agent a in world.
// If logger is not nil, progress is logged every config.LogEvery
// episodes.
func NewOnline(world env.SimWorld, a *agent.ActorCritic, config RunConfig,
	logger *log.Logger, t ...trackers.Tracker) (*Online, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("newOnline: %v", err)
	}

	return &Online{
		world:    world,
		agent:    a,
		config:   config,
		trackers: t,
		logger:   logger,
	}, nil
}

// Register registers a Tracker with the experiment
func (o *Online) Register(t trackers.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RegisterCheckpointer registers a Checkpointer with the experiment
func (o *Online) RegisterCheckpointer(c checkpointer.Checkpointer) {
	o.checkpointers = append(o.checkpointers, c)
}

// Agent returns the agent of the experiment
func (o *Online) Agent() *agent.ActorCritic {
	return o.agent
}

// World returns the SimWorld of the experiment
func (o *Online) World() env.SimWorld {
	return o.world
}

// Episodes returns the number of episodes run so far
func (o *Online) Episodes() int {
	return o.episode
}

// RunEpisode runs a single episode and returns its last TimeStep
func (o *Online) RunEpisode() (ts.TimeStep, error) {
	state := o.world.ProduceInitialState()
	o.agent.InitiateEligibility()

	step := ts.New(ts.First, 0, state, env.NoAction, 0)
	if err := o.track(step); err != nil {
		return step, err
	}

	for n := 1; o.config.MaxSteps <= 0 || n <= o.config.MaxSteps; n++ {
		actions, err := o.world.LegalActions()
		if err != nil {
			return step, fmt.Errorf("runEpisode: step %v: %v", n, err)
		}

		action, err := o.agent.SelectAction(state, actions)
		if err != nil {
			return step, fmt.Errorf("runEpisode: step %v: %w", n, err)
		}

		reward, err := o.world.Update(action)
		if err != nil {
			return step, fmt.Errorf("runEpisode: step %v: %w", n, err)
		}
		next := o.world.CurrentState()
		failed := o.world.IsFailedState()
		done := failed || o.world.IsFinalState()

		tdError, err := o.agent.Learn(state, action, reward, next, done)
		if err != nil {
			return step, fmt.Errorf("runEpisode: step %v: %v", n, err)
		}

		stepType := ts.Mid
		if done || n == o.config.MaxSteps {
			stepType = ts.Last
		}
		step = ts.New(stepType, reward, next, action, n)
		step.TDError = tdError
		step.Failed = failed

		if err := o.track(step); err != nil {
			return step, err
		}
		if step.Last() {
			break
		}
		state = next
	}

	o.episode++
	o.lengths = append(o.lengths, float64(step.Number))
	return step, nil
}

// Run runs all episodes of the experiment. After each episode, the
// exploration rate of the agent's policy is decayed.
func (o *Online) Run() error {
	for i := 0; i < o.config.Episodes; i++ {
		step, err := o.RunEpisode()
		if err != nil {
			return fmt.Errorf("run: episode %v: %w", o.episode+1, err)
		}

		o.agent.Policy().Decay(o.config.EpsilonDecay, o.config.MinEpsilon)

		if o.logger != nil && o.config.LogEvery > 0 &&
			o.episode%o.config.LogEvery == 0 {
			mean, std := trackers.Summary(o.lengths, o.config.LogEvery)
			o.logger.Printf("episode %v | steps %v | failed %v | mean steps "+
				"%.2f ± %.2f | ε %.4f", o.episode, step.Number, step.Failed,
				mean, std, o.agent.Policy().Epsilon())
		}
	}
	return nil
}

// track sends t to all Trackers and Checkpointers
func (o *Online) track(t ts.TimeStep) error {
	for _, tracker := range o.trackers {
		tracker.Track(t)
	}
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			return fmt.Errorf("track: could not checkpoint: %v", err)
		}
	}
	return nil
}
