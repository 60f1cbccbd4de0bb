// Package experiment implements functionality for training an agent
// in a SimWorld
package experiment

import (
	"github.com/samuelfneumann/gprl/experiment/checkpointer"
	"github.com/samuelfneumann/gprl/experiment/trackers"
	ts "github.com/samuelfneumann/gprl/timestep"
)

// Experiment runs an agent in a SimWorld for a number of episodes.
// Every TimeStep generated is sent to the registered Trackers, which
// keep whatever data they need, and to the registered Checkpointers,
// which may save snapshots of the agent.
type Experiment interface {
	// Run runs all episodes of the experiment, stopping at the first
	// error
	Run() error

	// RunEpisode runs a single episode and returns its last TimeStep
	RunEpisode() (ts.TimeStep, error)

	// Register adds a Tracker to the, possibly running, experiment
	Register(t trackers.Tracker)

	// RegisterCheckpointer adds a Checkpointer to the experiment
	RegisterCheckpointer(c checkpointer.Checkpointer)
}
