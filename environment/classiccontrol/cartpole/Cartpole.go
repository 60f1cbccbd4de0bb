// Package cartpole implements the pole balancing classic control
// problem: a pole hinged on a cart which must be kept upright by
// pushing the cart left or right with a fixed force
package cartpole

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	env "github.com/samuelfneumann/gprl/environment"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	// Default physical constants
	PoleLength float64 = 0.5  // m
	PoleMass   float64 = 0.1  // kg
	CartMass   float64 = 1.0  // kg
	Gravity    float64 = -9.8 // m/s², negative by convention
	ForceMag   float64 = 10.0 // N
	Tau        float64 = 0.02 // s between state updates

	// Default bounds (+/-) on state variables and episode length
	MaxAngle float64 = 0.21 // rad
	MaxXPos  float64 = 2.4  // m
	MaxSteps int     = 300

	// Reward for each step
	FailureReward float64 = -1000
	StepReward    float64 = 1

	// Discrete actions
	Left  env.Action = 0
	Right env.Action = 1
)

// Config holds the physical constants of a Cartpole. Cart mass is
// fixed at CartMass.
type Config struct {
	PoleLength float64
	PoleMass   float64
	Gravity    float64
	Force      float64
	Tau        float64
	MaxAngle   float64
	MaxXPos    float64
	MaxSteps   int
}

// DefaultConfig returns the default Cartpole configuration
func DefaultConfig() Config {
	return Config{
		PoleLength: PoleLength,
		PoleMass:   PoleMass,
		Gravity:    Gravity,
		Force:      ForceMag,
		Tau:        Tau,
		MaxAngle:   MaxAngle,
		MaxXPos:    MaxXPos,
		MaxSteps:   MaxSteps,
	}
}

// Validate returns an error describing whether or not the Config is
// valid
func (c Config) Validate() error {
	switch {
	case c.PoleLength <= 0:
		return fmt.Errorf("pole length must be positive")
	case c.PoleMass <= 0:
		return fmt.Errorf("pole mass must be positive")
	case c.Force <= 0:
		return fmt.Errorf("force must be positive")
	case c.Tau <= 0:
		return fmt.Errorf("tau must be positive")
	case c.MaxAngle <= 0:
		return fmt.Errorf("max angle must be positive")
	case c.MaxXPos <= 0:
		return fmt.Errorf("max x position must be positive")
	case c.MaxSteps < 1:
		return fmt.Errorf("max steps must be positive")
	}
	return nil
}

// PhysicalState is the continuous state of a Cartpole
type PhysicalState struct {
	X        float64 // cart position
	XVel     float64 // cart velocity
	Angle    float64 // pole angle from vertical
	AngleVel float64 // pole angular velocity
}

// Cartpole implements pole balancing as an environment.SimWorld.
//
// The physical state is continuous, but the exposed State is
// discretized (see Encode): the signs of the cart position and pole
// angle, and the rounded velocities, each one-hot encoded.
//
// Actions are discrete and consist of the direction of a fixed
// magnitude force applied to the cart (bang-bang control):
//
//	Action	Meaning
//	  0		Push left
//	  1		Push right
//
// An episode fails as soon as the pole angle or cart position reaches
// its bound; failure is irreversible for the episode. Each step
// returns StepReward, or FailureReward once the episode has failed.
// An episode succeeds when MaxSteps steps are taken without failure.
type Cartpole struct {
	state PhysicalState

	length   float64
	poleMass float64
	cartMass float64
	gravity  float64
	force    float64
	tau      float64

	steps           *env.StepLimit
	balancingFailed *env.IntervalLimit
	cartExited      *env.IntervalLimit

	starter env.UniformStarter
	history []float64
}

// New returns a new Cartpole, ready to use. Starting pole angles are
// drawn from src.
func New(c Config, src rand.Source) (*Cartpole, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	// Only the angle is randomized at the start of an episode
	zero := r1.Interval{Min: 0, Max: 0}
	starter := env.NewUniformStarter([]r1.Interval{
		zero,
		zero,
		{Min: -c.MaxAngle, Max: c.MaxAngle},
		zero,
	}, src)

	cartpole := &Cartpole{
		length:          c.PoleLength,
		poleMass:        c.PoleMass,
		cartMass:        CartMass,
		gravity:         c.Gravity,
		force:           c.Force,
		tau:             c.Tau,
		steps:           env.NewStepLimit(c.MaxSteps),
		balancingFailed: env.NewSymmetricLimit(c.MaxAngle),
		cartExited:      env.NewSymmetricLimit(c.MaxXPos),
		starter:         starter,
	}
	cartpole.ProduceInitialState()

	return cartpole, nil
}

// ProduceInitialState resets the Cartpole to the middle of the track
// with a still pole at a random angle
func (c *Cartpole) ProduceInitialState() env.State {
	start := c.starter.Start()
	c.reset(PhysicalState{start[0], start[1], start[2], start[3]})
	return c.CurrentState()
}

// Reset starts a new episode at the argument physical state
func (c *Cartpole) Reset(s PhysicalState) env.State {
	c.reset(s)
	return c.CurrentState()
}

func (c *Cartpole) reset(s PhysicalState) {
	c.state = s
	c.steps.Reset()
	c.balancingFailed.Reset()
	c.cartExited.Reset()
	c.history = []float64{s.Angle}
}

// Update pushes the cart in the direction of a and advances the
// simulation by one timestep
func (c *Cartpole) Update(a env.Action) (float64, error) {
	if !c.IsLegal(a) {
		return 0, fmt.Errorf("update: action %v ∉ {0, 1}: %w", a,
			env.ErrIllegalAction)
	}
	c.steps.Step()

	c.state = c.next(a)
	c.history = append(c.history, c.state.Angle)

	c.balancingFailed.Check(c.state.Angle)
	c.cartExited.Check(c.state.X)

	if c.IsFailedState() {
		return FailureReward, nil
	}
	return StepReward, nil
}

// next returns the physical state after taking action a. Velocities
// and accelerations are computed before positions are advanced, so
// positions are integrated with the old velocities.
func (c *Cartpole) next(a env.Action) PhysicalState {
	angleAcc, xAcc := c.Accelerations(a)

	return PhysicalState{
		X:        c.state.X + c.tau*c.state.XVel,
		XVel:     c.state.XVel + c.tau*xAcc,
		Angle:    c.state.Angle + c.tau*c.state.AngleVel,
		AngleVel: c.state.AngleVel + c.tau*angleAcc,
	}
}

// Accelerations returns the angular acceleration of the pole and the
// acceleration of the cart when taking action a in the current state
func (c *Cartpole) Accelerations(a env.Action) (angleAcc, xAcc float64) {
	force := c.bangBang(a)

	sinTheta := math.Sin(c.state.Angle)
	cosTheta := math.Cos(c.state.Angle)
	totalMass := c.poleMass + c.cartMass
	angleVelSq := c.state.AngleVel * c.state.AngleVel

	numerator := c.gravity*sinTheta + cosTheta*(-force-
		c.poleMass*c.length*angleVelSq*sinTheta)/totalMass
	denominator := c.length * (4.0/3.0 - c.poleMass*cosTheta*cosTheta/
		totalMass)
	angleAcc = numerator / denominator

	xAcc = (force + c.poleMass*c.length*(angleVelSq*sinTheta-
		angleAcc*cosTheta)) / totalMass

	return angleAcc, xAcc
}

// bangBang converts an action into a signed force of fixed magnitude
func (c *Cartpole) bangBang(a env.Action) float64 {
	if a == Right {
		return c.force
	}
	return -c.force
}

// CurrentState returns the discretized encoding of the current state
func (c *Cartpole) CurrentState() env.State {
	return Encode(c.state)
}

// Physical returns the continuous physical state
func (c *Cartpole) Physical() PhysicalState {
	return c.state
}

// IsFinalState returns whether the step budget was used up without the
// pole falling or the cart leaving the track
func (c *Cartpole) IsFinalState() bool {
	return c.steps.Reached() && !c.IsFailedState()
}

// IsFailedState returns whether the pole has fallen or the cart has
// left the track at any point this episode
func (c *Cartpole) IsFailedState() bool {
	return c.balancingFailed.Tripped() || c.cartExited.Tripped()
}

// BalancingFailed returns whether the pole has fallen this episode
func (c *Cartpole) BalancingFailed() bool {
	return c.balancingFailed.Tripped()
}

// CartExited returns whether the cart has left the track this episode
func (c *Cartpole) CartExited() bool {
	return c.cartExited.Tripped()
}

// LegalActions returns the legal actions, which are always {0, 1}
func (c *Cartpole) LegalActions(...env.State) ([]env.Action, error) {
	return []env.Action{Left, Right}, nil
}

// IsLegal returns whether a is a legal action
func (c *Cartpole) IsLegal(a env.Action) bool {
	return a == Left || a == Right
}

// History returns the pole angle at each step of the current episode
func (c *Cartpole) History() []float64 {
	return append([]float64(nil), c.history...)
}

// Steps returns the number of steps taken in the current episode
func (c *Cartpole) Steps() int {
	return c.steps.Steps()
}

// MaxXPos returns the half-width of the track
func (c *Cartpole) MaxXPos() float64 {
	return c.cartExited.Interval().Max
}

// StateLen returns the length of the encoded state
func (c *Cartpole) StateLen() int {
	return StateLen
}

func (c *Cartpole) String() string {
	msg := "Cartpole  |  Position: %v  | Speed: %v  |  Angle: %v" +
		"  |  Angular Velocity: %v"

	return fmt.Sprintf(msg, c.state.X, c.state.XVel, c.state.Angle,
		c.state.AngleVel)
}
