package cmd

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gprl/environment/envconfig"
	"github.com/samuelfneumann/gprl/environment/gambler"
	"github.com/samuelfneumann/gprl/experiment/plots"
	"gonum.org/v1/plot/plotter"
)

// policyColumns is the number of wagers printed per row
const policyColumns = 10

// PolicyCommand returns the command which trains an agent on the
// Gambler problem and plots its greedy policy before and after training
func PolicyCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Plot the Gambler's greedy wagers before and after training",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.experimentConfig(cmd, envconfig.Gambler)
			if err != nil {
				return err
			}
			if c.Env.Problem != envconfig.Gambler {
				return fmt.Errorf("policy: need the gambler problem, have %q",
					c.Env.Problem)
			}

			s, err := newSession(cmd, c, o.out, 0, o.quiet)
			if err != nil {
				return fmt.Errorf("policy: %v", err)
			}
			defer s.close()

			world := s.world.(*gambler.Gambler)
			a := s.online.Agent().Actor()

			before, err := plots.GamblerPolicy(a, world)
			if err != nil {
				return fmt.Errorf("policy: %v", err)
			}

			if err := s.run(); err != nil {
				return fmt.Errorf("policy: %v", err)
			}
			if err := s.save(); err != nil {
				return fmt.Errorf("policy: %v", err)
			}

			after, err := plots.GamblerPolicy(a, world)
			if err != nil {
				return fmt.Errorf("policy: %v", err)
			}

			err = plots.Lines(s.path("policy.png"), "Gambler policy", "Coins",
				"Wager",
				plots.Series{Name: "Before training", Points: before},
				plots.Series{Name: "After training", Points: after},
			)
			if err != nil {
				return fmt.Errorf("policy: %v", err)
			}

			printPolicy(cmd.OutOrStdout(), o.colors(), after)
			s.summarize(cmd.OutOrStdout(), o)
			return nil
		},
	}
}

// printPolicy writes a table of the wager for each number of coins in
// policy. Wagers staking everything that can be won are highlighted.
func printPolicy(w io.Writer, au aurora.Aurora, policy plotter.XYs) {
	for i, p := range policy {
		coins, wager := int(p.X), int(p.Y)

		stake := fmt.Sprintf("%3d", wager)
		if wager == gambler.MaxCoins-coins || wager == coins {
			fmt.Fprintf(w, "%v:%v ", au.Blue(fmt.Sprintf("%3d", coins)),
				au.Green(stake))
		} else {
			fmt.Fprintf(w, "%v:%v ", au.Blue(fmt.Sprintf("%3d", coins)),
				stake)
		}

		if (i+1)%policyColumns == 0 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintln(w)
}
