package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/gprl/agent"
	"github.com/samuelfneumann/gprl/environment/classiccontrol/cartpole"
	"github.com/samuelfneumann/gprl/environment/envconfig"
)

// RenderCommand returns the command which trains an agent on the
// Cartpole problem and renders a greedy rollout of the learned policy
func RenderCommand(o *options) *cobra.Command {
	var frames, width, height int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Train on the cartpole and render frames of a greedy rollout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames < 1 || width < 1 || height < 1 {
				return fmt.Errorf("render: frames, width and height must " +
					"be positive")
			}

			c, err := o.experimentConfig(cmd, envconfig.Cartpole)
			if err != nil {
				return err
			}
			if c.Env.Problem != envconfig.Cartpole {
				return fmt.Errorf("render: need the cartpole problem, have %q",
					c.Env.Problem)
			}

			s, err := newSession(cmd, c, o.out, 0, o.quiet)
			if err != nil {
				return fmt.Errorf("render: %v", err)
			}
			defer s.close()

			if err := s.run(); err != nil {
				return fmt.Errorf("render: %v", err)
			}
			if err := s.save(); err != nil {
				return fmt.Errorf("render: %v", err)
			}

			world := s.world.(*cartpole.Cartpole)
			n, err := rollout(world, s.online.Agent(), frames, func(i int) error {
				return world.SavePNG(s.path(fmt.Sprintf("frame_%04d.png", i)),
					width, height)
			})
			if err != nil {
				return fmt.Errorf("render: %v", err)
			}

			s.summarize(cmd.OutOrStdout(), o)
			fmt.Fprintf(cmd.OutOrStdout(), "  rendered %v frames\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&frames, "frames", 200, "Maximum number of frames")
	cmd.Flags().IntVar(&width, "width", 600, "Frame width in pixels")
	cmd.Flags().IntVar(&height, "height", 400, "Frame height in pixels")
	return cmd
}

// rollout runs a greedy episode of a in world, calling frame with the
// index of each state before the world is updated, for at most frames
// states. It returns the number of frames produced.
func rollout(world *cartpole.Cartpole, a *agent.ActorCritic, frames int,
	frame func(int) error) (int, error) {
	a.Policy().SetEpsilon(0)
	state := world.ProduceInitialState()

	for i := 0; i < frames; i++ {
		if err := frame(i); err != nil {
			return i, fmt.Errorf("rollout: %v", err)
		}
		if world.IsFinalState() || world.IsFailedState() {
			return i + 1, nil
		}

		actions, err := world.LegalActions()
		if err != nil {
			return i + 1, fmt.Errorf("rollout: %v", err)
		}
		action, err := a.SelectAction(state, actions)
		if err != nil {
			return i + 1, fmt.Errorf("rollout: %v", err)
		}
		if _, err := world.Update(action); err != nil {
			return i + 1, fmt.Errorf("rollout: %v", err)
		}
		state = world.CurrentState()
	}
	return frames, nil
}
