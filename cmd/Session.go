package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	env "github.com/samuelfneumann/gprl/environment"
	"github.com/samuelfneumann/gprl/environment/envconfig"
	"github.com/samuelfneumann/gprl/experiment"
	"github.com/samuelfneumann/gprl/experiment/checkpointer"
	"github.com/samuelfneumann/gprl/experiment/plots"
	"github.com/samuelfneumann/gprl/experiment/trackers"
	"github.com/samuelfneumann/gprl/utils/progressbar"
)

// barWidth is the width of the training progress bar in characters
const barWidth = 50

// summaryWindow is the number of final episodes summarized after
// training
const summaryWindow = 100

// session is a single training run along with the trackers recording
// it
type session struct {
	config  experiment.Config
	dir     string
	online  *experiment.Online
	world   env.Historian
	lengths *trackers.EpisodeLength
	returns *trackers.Return
	best    *trackers.BestEpisode
	bar     *progressbar.ProgressBar
}

// newSession creates the experiment described by c, saving results to
// dir. If checkpoint is positive, the actor is saved to dir every
// checkpoint episodes.
func newSession(cmd *cobra.Command, c experiment.Config, dir string,
	checkpoint int, quiet bool) (*session, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("newSession: %v", err)
	}

	var logger *log.Logger
	if !quiet {
		logger = log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	}

	s := &session{
		config:  c,
		dir:     dir,
		lengths: trackers.NewEpisodeLength(filepath.Join(dir, "lengths.bin")),
		returns: trackers.NewReturn(filepath.Join(dir, "returns.bin")),
	}

	var err error
	s.online, s.world, err = c.CreateOnline(logger, s.lengths, s.returns)
	if err != nil {
		return nil, fmt.Errorf("newSession: %v", err)
	}

	// Gamblers and puzzles should succeed quickly, poles should stay up
	// for as long as possible
	if c.Env.Problem == envconfig.Cartpole {
		s.best = trackers.NewBestEpisode(s.world, trackers.Longest, false)
	} else {
		s.best = trackers.NewBestEpisode(s.world, trackers.Shortest, true)
	}
	s.online.Register(s.best)

	if checkpoint > 0 {
		s.online.RegisterCheckpointer(checkpointer.NewNEpisode(checkpoint,
			s.online.Agent().Actor(),
			checkpointer.FilenameEnumerator(0, s.path("actor_"), ".gob")))
	}

	if !quiet && c.Episodes > 0 {
		s.bar = progressbar.New(cmd.ErrOrStderr(), barWidth, c.Episodes)
		s.online.Register(s.bar)
	}

	return s, nil
}

// path returns the path of file in the session's results directory
func (s *session) path(file string) string {
	return filepath.Join(s.dir, file)
}

// run trains the agent for all configured episodes
func (s *session) run() error {
	err := s.online.Run()
	if s.bar != nil {
		s.bar.Close()
	}
	return err
}

// save writes the tracked data, figures and the learned actor to the
// results directory
func (s *session) save() error {
	if err := s.lengths.Save(); err != nil {
		return fmt.Errorf("save: %v", err)
	}
	if err := s.returns.Save(); err != nil {
		return fmt.Errorf("save: %v", err)
	}

	if err := checkpointer.Save(s.path("actor.gob"),
		s.online.Agent().Actor()); err != nil {
		return fmt.Errorf("save: %v", err)
	}

	lengths := s.lengths.Data()
	if err := plots.EpisodeLengths(s.path("lengths.png"), lengths); err != nil {
		return fmt.Errorf("save: %v", err)
	}

	err := plots.Chart(s.path("training.html"),
		fmt.Sprintf("Training on %v", s.config.Env.Problem), "Episode",
		plots.Data{Name: "Episode lengths", Values: lengths},
		plots.Data{Name: "Returns", Values: s.returns.Data()},
	)
	if err != nil {
		return fmt.Errorf("save: %v", err)
	}

	if episode, _, ok := s.best.Episode(); ok {
		title := fmt.Sprintf("Best episode (%v)", episode)
		err := plots.History(s.path("best.png"), title,
			historyLabel(s.config.Env.Problem), s.best.Data())
		if err != nil {
			return fmt.Errorf("save: %v", err)
		}
	}
	return nil
}

// summarize writes a summary of training to w
func (s *session) summarize(w io.Writer, o *options) {
	au := o.colors()

	lengths := s.lengths.Data()
	mean, std := trackers.Summary(lengths, summaryWindow)
	meanReturn, _ := trackers.Summary(s.returns.Data(), summaryWindow)

	fmt.Fprintf(w, "%v %v episodes of %v\n", au.Bold("trained"),
		len(lengths), au.Cyan(s.config.Env.Problem))
	fmt.Fprintf(w, "  final %v episodes: steps %v, return %v\n",
		summaryWindow, au.Green(fmt.Sprintf("%.2f ± %.2f", mean, std)),
		au.Green(fmt.Sprintf("%.2f", meanReturn)))

	if episode, length, ok := s.best.Episode(); ok {
		fmt.Fprintf(w, "  best episode: %v (%v steps)\n", au.Yellow(episode),
			length)
	} else {
		fmt.Fprintf(w, "  best episode: %v\n", au.Red("none succeeded"))
	}
	fmt.Fprintf(w, "  results saved to %v\n", au.Blue(s.dir))
}

// close releases the resources held by the session's agent
func (s *session) close() error {
	return s.online.Agent().Close()
}

// historyLabel returns the name of the quantity recorded in the
// history of problem p
func historyLabel(p envconfig.Problem) string {
	switch p {
	case envconfig.Gambler:
		return "Coins"
	case envconfig.Cartpole:
		return "Pole angle"
	default:
		return "Progress"
	}
}
