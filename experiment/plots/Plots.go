// Package plots draws figures of experiment data with gonum/plot
package plots

import (
	"fmt"

	"github.com/samuelfneumann/gprl/agent/tabular/actor"
	"github.com/samuelfneumann/gprl/environment/gambler"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Size is the width and height of saved figures
const Size = 8 * vg.Inch

// Series is a named line of a figure
type Series struct {
	Name   string
	Points plotter.XYs
}

// Indexed returns the points (i, ys[i]) for all i, starting at start
func Indexed(ys []float64, start int) plotter.XYs {
	points := make(plotter.XYs, len(ys))
	for i, y := range ys {
		points[i] = plotter.XY{X: float64(i + start), Y: y}
	}
	return points
}

// Lines saves a figure of series to filename. The image format is
// determined by the extension of filename.
func Lines(filename, title, xLabel, yLabel string, series ...Series) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		line, err := plotter.NewLine(s.Points)
		if err != nil {
			return fmt.Errorf("lines: could not plot %v: %v", s.Name, err)
		}
		line.Color = plotutil.Color(i)
		p.Add(line)
		if s.Name != "" {
			p.Legend.Add(s.Name, line)
		}
	}

	if err := p.Save(Size, Size, filename); err != nil {
		return fmt.Errorf("lines: could not save %v: %v", filename, err)
	}
	return nil
}

// EpisodeLengths saves a figure of the number of steps of each episode
func EpisodeLengths(filename string, lengths []float64) error {
	return Lines(filename, "Episode lengths", "Episode", "Steps",
		Series{Points: Indexed(lengths, 1)})
}

// History saves a figure of the history of a single episode, for
// example the pole angle of each step of a Cartpole episode
func History(filename, title, yLabel string, history []float64) error {
	return Lines(filename, title, "Step", yLabel,
		Series{Points: Indexed(history, 0)})
}

// GamblerPolicy returns the greedy wager of a for every non-terminal
// number of coins of a Gambler, ties broken at random
func GamblerPolicy(a *actor.Actor, world *gambler.Gambler) (plotter.XYs,
	error) {
	points := make(plotter.XYs, 0, gambler.MaxCoins-1)
	for coins := 1; coins < gambler.MaxCoins; coins++ {
		state := gambler.Encode(coins)
		actions, err := world.LegalActions(state)
		if err != nil {
			return nil, fmt.Errorf("gamblerPolicy: %v", err)
		}

		wager, err := a.ProposedAction(true, state, actions)
		if err != nil {
			return nil, fmt.Errorf("gamblerPolicy: %v coins: %v", coins, err)
		}
		points = append(points, plotter.XY{
			X: float64(coins),
			Y: float64(wager),
		})
	}
	return points, nil
}

// PolicyCurve saves a figure of the greedy wager of a for every
// non-terminal number of coins of a Gambler
func PolicyCurve(filename, title string, a *actor.Actor,
	world *gambler.Gambler) error {
	points, err := GamblerPolicy(a, world)
	if err != nil {
		return fmt.Errorf("policyCurve: %v", err)
	}
	return Lines(filename, title, "Coins", "Wager", Series{Points: points})
}
