// Package cmd implements the gprl command line interface
package cmd

import (
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gprl/environment/envconfig"
	"github.com/samuelfneumann/gprl/experiment"
)

// options holds the flags shared by all subcommands
type options struct {
	config   string
	seed     uint64
	episodes int
	out      string
	noColor  bool
	quiet    bool
}

// GetRootCommand returns the root command of the gprl CLI
func GetRootCommand() *cobra.Command {
	o := &options{}

	root := &cobra.Command{
		Use:          "gprl",
		Short:        "Train tabular actor-critic agents on simulated worlds",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&o.config, "config", "c", "",
		"JSON experiment configuration, defaults to the problem's defaults")
	root.PersistentFlags().Uint64Var(&o.seed, "seed", 0,
		"Random seed, overrides the configured seed")
	root.PersistentFlags().IntVarP(&o.episodes, "episodes", "e", 0,
		"Number of episodes to train, overrides the configured number")
	root.PersistentFlags().StringVarP(&o.out, "out", "o", "results",
		"Directory to save results in")
	root.PersistentFlags().BoolVar(&o.noColor, "no-color", false,
		"Disable colored output")
	root.PersistentFlags().BoolVarP(&o.quiet, "quiet", "q", false,
		"Do not log or draw a progress bar during training")

	root.AddCommand(TrainCommand(o))
	root.AddCommand(PolicyCommand(o))
	root.AddCommand(RenderCommand(o))
	root.AddCommand(ConfigCommand(o))
	return root
}

// colors returns the colorizer selected by the flags
func (o *options) colors() aurora.Aurora {
	return aurora.NewAurora(!o.noColor)
}

// experimentConfig returns the configuration read from the --config
// file, or the default configuration of problem p if no file is given.
// Flags set on the command line override the configuration.
func (o *options) experimentConfig(cmd *cobra.Command,
	p envconfig.Problem) (experiment.Config, error) {
	c := experiment.DefaultConfig(p)
	if o.config != "" {
		var err error
		if c, err = experiment.LoadConfig(o.config); err != nil {
			return c, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		c.Seed = o.seed
	}
	if flags.Changed("episodes") {
		c.Episodes = o.episodes
	}
	if o.quiet {
		c.LogEvery = 0
	}

	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("experimentConfig: %v", err)
	}
	return c, nil
}
