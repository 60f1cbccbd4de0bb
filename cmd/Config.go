package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gprl/environment/envconfig"
)

// ConfigCommand returns the command which prints the JSON experiment
// configuration that train would use, so that it can be edited and
// passed back with --config
func ConfigCommand(o *options) *cobra.Command {
	var problem string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print an experiment configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.experimentConfig(cmd, envconfig.Problem(problem))
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(c, "", "\t")
			if err != nil {
				return fmt.Errorf("config: %v", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&problem, "problem", "p", string(envconfig.Gambler),
		fmt.Sprintf("Problem to configure, one of %v", envconfig.Problems()))
	return cmd
}
