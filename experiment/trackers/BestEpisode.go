package trackers

import (
	env "github.com/samuelfneumann/gprl/environment"
	ts "github.com/samuelfneumann/gprl/timestep"
)

// Better reports whether an episode of length candidate is better than
// the best episode so far, of length best
type Better func(candidate, best int) bool

// Shortest prefers shorter episodes, for example a Gambler reaching
// its goal quickly
func Shortest(candidate, best int) bool {
	return candidate < best
}

// Longest prefers longer episodes, for example a pole balanced for
// longer
func Longest(candidate, best int) bool {
	return candidate > best
}

// BestEpisode keeps the history of the best episode of an experiment,
// as recorded by a Historian SimWorld. Only successful episodes, which
// end in a final state, are candidates when SuccessOnly is set.
type BestEpisode struct {
	world       env.Historian
	better      Better
	successOnly bool

	found   bool
	episode int
	length  int
	history []float64
	current int
}

// NewBestEpisode returns a new BestEpisode tracker reading the history
// of world. If successOnly is true, only episodes ending in a final
// state are considered.
func NewBestEpisode(world env.Historian, better Better,
	successOnly bool) *BestEpisode {
	return &BestEpisode{world: world, better: better, successOnly: successOnly}
}

// Track records the world's history if t is the last TimeStep of an
// episode that is better than the best episode so far
func (b *BestEpisode) Track(t ts.TimeStep) {
	if !t.Last() {
		return
	}
	b.current++

	if b.successOnly && !b.world.IsFinalState() {
		return
	}

	if !b.found || b.better(t.Number, b.length) {
		b.found = true
		b.episode = b.current
		b.length = t.Number
		b.history = b.world.History()
	}
}

// Data returns the history of the best episode
func (b *BestEpisode) Data() []float64 {
	data := make([]float64, len(b.history))
	copy(data, b.history)
	return data
}

// Episode returns the 1-based index and length of the best episode. If
// no episode has qualified, ok is false.
func (b *BestEpisode) Episode() (episode, length int, ok bool) {
	return b.episode, b.length, b.found
}
