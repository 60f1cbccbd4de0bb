// Package gambler implements the Gambler's problem: a stochastic
// betting process in which the gambler wagers coins on repeated
// biased coin flips, trying to reach MaxCoins before going broke
package gambler

import (
	"fmt"

	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/gprl/environment"
	"github.com/samuelfneumann/gprl/utils/intutils"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	MaxCoins int = 100
	MinBet   int = 1

	// Defaults
	WinProb  float64 = 0.4
	MaxSteps int     = 300
)

// Gambler implements the Gambler's problem as an environment.SimWorld.
//
// The state is the number of coins held, in [0, MaxCoins], exposed as a
// one-hot State of length MaxCoins+1. Actions are wagers. A wager may
// not exceed the distance to either boundary, so legal actions from s
// coins are [1, min(s, MaxCoins-s)]. Each step a single Bernoulli draw
// with probability winProb decides whether the wager is won or lost.
// The reward is the signed change in coins.
//
// An episode succeeds when the gambler holds MaxCoins. It fails when
// the gambler goes broke or when the step budget runs out without
// reaching MaxCoins, so a final state is never also a failed state.
type Gambler struct {
	coins   int
	winProb float64
	failed  bool
	history []float64

	steps   *env.StepLimit
	flip    distuv.Bernoulli
	starter env.CategoricalStarter
}

// New returns a new Gambler, ready to use. The coin flips and starting
// states are drawn from src.
func New(winProb float64, maxSteps int, src rand.Source) (*Gambler, error) {
	if winProb < 0 || winProb > 1 {
		return nil, fmt.Errorf("new: win probability %v not in [0, 1]",
			winProb)
	}
	if maxSteps < 1 {
		return nil, fmt.Errorf("new: max steps must be positive, have %v",
			maxSteps)
	}

	starter, err := env.NewCategoricalStarter(1, MaxCoins-1, src)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	g := &Gambler{
		winProb: winProb,
		steps:   env.NewStepLimit(maxSteps),
		flip:    distuv.Bernoulli{P: winProb, Src: src},
		starter: starter,
	}
	g.ProduceInitialState()

	return g, nil
}

// ProduceInitialState resets the Gambler with a random number of coins
// in [1, MaxCoins-1]
func (g *Gambler) ProduceInitialState() env.State {
	g.reset(g.starter.Start())
	return g.CurrentState()
}

// SetCoins resets the Gambler to start an episode with the argument
// number of coins
func (g *Gambler) SetCoins(coins int) error {
	if coins < 0 || coins > MaxCoins {
		return fmt.Errorf("setCoins: %v coins not in [0, %v]", coins,
			MaxCoins)
	}
	g.reset(coins)
	return nil
}

func (g *Gambler) reset(coins int) {
	g.coins = coins
	g.failed = false
	g.steps.Reset()
	g.history = []float64{float64(coins)}
}

// Update places a wager of a coins and returns the signed change in
// coins as the reward
func (g *Gambler) Update(a env.Action) (float64, error) {
	if !g.IsLegal(a) {
		return 0, fmt.Errorf("update: wager %v with %v coins: %w", a,
			g.coins, env.ErrIllegalAction)
	}
	timeout := g.steps.Step()

	old := g.coins
	if g.flip.Rand() == 1 {
		g.coins += int(a)
	} else {
		g.coins -= int(a)
	}
	g.history = append(g.history, float64(g.coins))

	if g.coins == 0 || (timeout && g.coins != MaxCoins) {
		g.failed = true
	}

	return float64(g.coins - old), nil
}

// CurrentState returns the one-hot encoding of the number of coins
func (g *Gambler) CurrentState() env.State {
	return env.OneHot(g.coins, MaxCoins+1)
}

// Coins returns the number of coins currently held
func (g *Gambler) Coins() int {
	return g.coins
}

// IsFinalState returns whether the gambler holds MaxCoins
func (g *Gambler) IsFinalState() bool {
	return g.coins == MaxCoins
}

// IsFailedState returns whether the gambler went broke or ran out of
// steps this episode
func (g *Gambler) IsFailedState() bool {
	return g.failed
}

// LegalActions returns the legal wagers in the argument state, or in
// the current state if no state is given. If the state allows no
// wager (0 or MaxCoins coins), the minimum bet is returned.
func (g *Gambler) LegalActions(s ...env.State) ([]env.Action, error) {
	coins := g.coins
	if len(s) > 0 {
		var err error
		if coins, err = Decode(s[0]); err != nil {
			return nil, fmt.Errorf("legalActions: %w", err)
		}
	}

	max := maxBet(coins)
	actions := []env.Action{env.Action(MinBet)}
	for bet := MinBet + 1; bet <= max; bet++ {
		actions = append(actions, env.Action(bet))
	}
	return actions, nil
}

// IsLegal returns whether a is a legal wager with the current coins
func (g *Gambler) IsLegal(a env.Action) bool {
	return int(a) >= MinBet && int(a) <= maxBet(g.coins)
}

// History returns the number of coins held at each step of the current
// episode
func (g *Gambler) History() []float64 {
	return append([]float64(nil), g.history...)
}

// Steps returns the number of steps taken in the current episode
func (g *Gambler) Steps() int {
	return g.steps.Steps()
}

// StateLen returns the length of the encoded state
func (g *Gambler) StateLen() int {
	return MaxCoins + 1
}

func (g *Gambler) String() string {
	return fmt.Sprintf("Gambler  |  Coins: %v  |  Step: %v", g.coins,
		g.steps.Steps())
}

// Decode returns the number of coins encoded by a one-hot Gambler state
func Decode(s env.State) (int, error) {
	if s.Len() != MaxCoins+1 {
		return 0, fmt.Errorf("decode: state length %v != %v: %w", s.Len(),
			MaxCoins+1, env.ErrInvalidState)
	}
	coins := s.HotIndex()
	if coins < 0 {
		return 0, fmt.Errorf("decode: state %v is not one-hot: %w", s,
			env.ErrInvalidState)
	}
	return coins, nil
}

// Encode returns the one-hot Gambler state for the argument coins
func Encode(coins int) env.State {
	return env.OneHot(coins, MaxCoins+1)
}

// maxBet returns the largest wager that overshoots neither 0 nor
// MaxCoins
func maxBet(coins int) int {
	return intutils.Min(coins, MaxCoins-coins)
}
