package checkpointer

import (
	ts "github.com/samuelfneumann/gprl/timestep"
)

// nEpisode implements checkpointing every N episodes
type nEpisode struct {
	interval int
	episodes int
	object   Serializable

	// filename returns the name of the file to save the next checkpoint
	// in, see FilenameEnumerator
	filename func() string
}

// NewNEpisode returns a Checkpointer which saves object at the end of
// every n-th episode
func NewNEpisode(n int, object Serializable,
	filename func() string) Checkpointer {
	if n < 1 {
		panic("newNEpisode: interval must be positive")
	}
	return &nEpisode{
		interval: n,
		object:   object,
		filename: filename,
	}
}

// Checkpoint saves the tracked object if t ends an episode whose
// number is a multiple of the interval
func (n *nEpisode) Checkpoint(t ts.TimeStep) error {
	if !t.Last() {
		return nil
	}

	n.episodes++
	if n.episodes%n.interval == 0 {
		return Save(n.filename(), n.object)
	}
	return nil
}
