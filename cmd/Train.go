package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gprl/environment/envconfig"
)

// TrainCommand returns the command which trains an agent on any
// problem and saves the results
func TrainCommand(o *options) *cobra.Command {
	var problem string
	var checkpoint int

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train an actor-critic agent and save its results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := envconfig.Problem(problem)
			c, err := o.experimentConfig(cmd, p)
			if err != nil {
				return err
			}

			// A problem given on the command line replaces the world of
			// a configuration file
			if o.config != "" && cmd.Flags().Changed("problem") &&
				c.Env.Problem != p {
				c.Env = envconfig.NewConfig(p)
				if err := c.Validate(); err != nil {
					return fmt.Errorf("train: %v", err)
				}
			}

			s, err := newSession(cmd, c, o.out, checkpoint, o.quiet)
			if err != nil {
				return fmt.Errorf("train: %v", err)
			}
			defer s.close()

			if err := s.run(); err != nil {
				return fmt.Errorf("train: %v", err)
			}
			if err := s.save(); err != nil {
				return fmt.Errorf("train: %v", err)
			}
			s.summarize(cmd.OutOrStdout(), o)
			return nil
		},
	}
	cmd.Flags().StringVarP(&problem, "problem", "p", string(envconfig.Gambler),
		fmt.Sprintf("Problem to train on, one of %v", envconfig.Problems()))
	cmd.Flags().IntVar(&checkpoint, "checkpoint", 0,
		"Save the actor every n episodes, or never if 0")
	return cmd
}
