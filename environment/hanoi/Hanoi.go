// Package hanoi implements the Towers of Hanoi puzzle as a SimWorld
package hanoi

import (
	"fmt"

	env "github.com/samuelfneumann/gprl/environment"
)

const (
	// Defaults
	Pegs     int = 3
	Discs    int = 4
	MaxSteps int = 300

	MoveReward   float64 = -1
	SolvedReward float64 = 100
)

// Hanoi implements the Towers of Hanoi puzzle. All discs start on the
// first peg and must be moved to the last peg, one disc at a time,
// never placing a larger disc on a smaller one.
//
// Discs are numbered from 0 (smallest) to discs-1 (largest). The state
// is the peg of each disc, exposed as a concatenation of one-hot
// vectors of length pegs, one per disc. The action moving the top disc
// of peg from onto peg to is from*pegs + to.
//
// Each move is rewarded MoveReward, and the move which solves the
// puzzle is rewarded SolvedReward. An episode fails if the step budget
// runs out before the puzzle is solved.
type Hanoi struct {
	pegs  int
	discs int
	on    []int // on[d] is the peg disc d is on
	steps *env.StepLimit

	failed  bool
	history []float64
}

// New returns a new Hanoi puzzle, ready to use
func New(pegs, discs, maxSteps int) (*Hanoi, error) {
	if pegs < 3 {
		return nil, fmt.Errorf("new: need at least 3 pegs, have %v", pegs)
	}
	if discs < 1 {
		return nil, fmt.Errorf("new: need at least 1 disc, have %v", discs)
	}
	if maxSteps < 1 {
		return nil, fmt.Errorf("new: max steps must be positive, have %v",
			maxSteps)
	}

	h := &Hanoi{
		pegs:  pegs,
		discs: discs,
		on:    make([]int, discs),
		steps: env.NewStepLimit(maxSteps),
	}
	h.ProduceInitialState()

	return h, nil
}

// ProduceInitialState places all discs on the first peg
func (h *Hanoi) ProduceInitialState() env.State {
	for d := range h.on {
		h.on[d] = 0
	}
	h.failed = false
	h.steps.Reset()
	h.history = []float64{h.progress()}
	return h.CurrentState()
}

// Update moves the top disc as described by action a
func (h *Hanoi) Update(a env.Action) (float64, error) {
	if !h.IsLegal(a) {
		return 0, fmt.Errorf("update: move %v: %w", h.describe(a),
			env.ErrIllegalAction)
	}
	timeout := h.steps.Step()

	from, to := h.Move(a)
	h.on[top(h.on, from)] = to
	h.history = append(h.history, h.progress())

	if h.IsFinalState() {
		return SolvedReward, nil
	}
	if timeout {
		h.failed = true
	}
	return MoveReward, nil
}

// CurrentState returns the encoding of the current disc positions
func (h *Hanoi) CurrentState() env.State {
	return h.encode(h.on)
}

// IsFinalState returns whether all discs are on the last peg
func (h *Hanoi) IsFinalState() bool {
	if h.failed {
		return false
	}
	for _, peg := range h.on {
		if peg != h.pegs-1 {
			return false
		}
	}
	return true
}

// IsFailedState returns whether the step budget ran out before the
// puzzle was solved
func (h *Hanoi) IsFailedState() bool {
	return h.failed
}

// LegalActions returns the legal moves from the argument state, or
// from the current state if no state is given
func (h *Hanoi) LegalActions(s ...env.State) ([]env.Action, error) {
	on := h.on
	if len(s) > 0 {
		var err error
		if on, err = h.decode(s[0]); err != nil {
			return nil, fmt.Errorf("legalActions: %w", err)
		}
	}

	var actions []env.Action
	for from := 0; from < h.pegs; from++ {
		for to := 0; to < h.pegs; to++ {
			if legal(on, from, to) {
				actions = append(actions, h.Action(from, to))
			}
		}
	}
	return actions, nil
}

// IsLegal returns whether a is a legal move in the current state
func (h *Hanoi) IsLegal(a env.Action) bool {
	if a < 0 || int(a) >= h.pegs*h.pegs {
		return false
	}
	from, to := h.Move(a)
	return legal(h.on, from, to)
}

// Action returns the action moving the top disc of peg from onto peg to
func (h *Hanoi) Action(from, to int) env.Action {
	return env.Action(from*h.pegs + to)
}

// Move returns the pegs moved from and to by action a
func (h *Hanoi) Move(a env.Action) (from, to int) {
	return int(a) / h.pegs, int(a) % h.pegs
}

// History returns the number of discs on the last peg at each step of
// the current episode
func (h *Hanoi) History() []float64 {
	return append([]float64(nil), h.history...)
}

// Steps returns the number of steps taken in the current episode
func (h *Hanoi) Steps() int {
	return h.steps.Steps()
}

// StateLen returns the length of the encoded state
func (h *Hanoi) StateLen() int {
	return h.pegs * h.discs
}

// OptimalMoves returns the fewest moves which solve the puzzle with
// three pegs
func (h *Hanoi) OptimalMoves() int {
	return 1<<uint(h.discs) - 1
}

func (h *Hanoi) String() string {
	return fmt.Sprintf("Hanoi  |  Pegs: %v  |  Step: %v", h.on,
		h.steps.Steps())
}

func (h *Hanoi) describe(a env.Action) string {
	if a < 0 || int(a) >= h.pegs*h.pegs {
		return fmt.Sprint(int(a))
	}
	from, to := h.Move(a)
	return fmt.Sprintf("%v -> %v", from, to)
}

func (h *Hanoi) progress() float64 {
	n := 0
	for _, peg := range h.on {
		if peg == h.pegs-1 {
			n++
		}
	}
	return float64(n)
}

func (h *Hanoi) encode(on []int) env.State {
	parts := make([]env.State, len(on))
	for d, peg := range on {
		parts[d] = env.OneHot(peg, h.pegs)
	}
	return env.Concat(parts...)
}

func (h *Hanoi) decode(s env.State) ([]int, error) {
	if s.Len() != h.StateLen() {
		return nil, fmt.Errorf("decode: state length %v != %v: %w", s.Len(),
			h.StateLen(), env.ErrInvalidState)
	}
	on := make([]int, h.discs)
	for d := range on {
		peg := s.Slice(d*h.pegs, (d+1)*h.pegs).HotIndex()
		if peg < 0 {
			return nil, fmt.Errorf("decode: disc %v is on no single peg: %w",
				d, env.ErrInvalidState)
		}
		on[d] = peg
	}
	return on, nil
}

// top returns the smallest disc on peg, or -1 if the peg is empty
func top(on []int, peg int) int {
	for d, p := range on {
		if p == peg {
			return d
		}
	}
	return -1
}

// legal returns whether the top disc of from can be moved onto to
func legal(on []int, from, to int) bool {
	if from == to {
		return false
	}
	moving := top(on, from)
	if moving < 0 {
		return false
	}
	target := top(on, to)
	return target < 0 || moving < target
}
