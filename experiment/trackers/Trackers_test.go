package trackers

import (
	"math"
	"path/filepath"
	"testing"

	env "github.com/samuelfneumann/gprl/environment"
	ts "github.com/samuelfneumann/gprl/timestep"
)

// episode feeds the TimeSteps of an episode of length n with reward r
// on every step to each tracker
func episode(n int, r float64, trackers ...Tracker) {
	s := env.OneHot(0, 1)
	steps := []ts.TimeStep{ts.New(ts.First, 0, s, env.NoAction, 0)}
	for i := 1; i <= n; i++ {
		stepType := ts.Mid
		if i == n {
			stepType = ts.Last
		}
		steps = append(steps, ts.New(stepType, r, s, 0, i))
	}

	for _, step := range steps {
		for _, t := range trackers {
			t.Track(step)
		}
	}
}

func TestEpisodeLengthAndReturn(t *testing.T) {
	lengths := NewEpisodeLength("")
	returns := NewReturn("")

	episode(3, 1.0, lengths, returns)
	episode(5, -2.0, lengths, returns)

	wantLengths := []float64{3, 5}
	wantReturns := []float64{3, -10}
	for i := range wantLengths {
		if lengths.Data()[i] != wantLengths[i] {
			t.Errorf("episodeLength: want %v, have %v", wantLengths,
				lengths.Data())
		}
		if returns.Data()[i] != wantReturns[i] {
			t.Errorf("return: want %v, have %v", wantReturns, returns.Data())
		}
	}
}

func TestReturnNonSequential(t *testing.T) {
	r := NewReturn("")
	r.Track(ts.New(ts.First, 0, env.OneHot(0, 1), env.NoAction, 0))

	defer func() {
		if recover() == nil {
			t.Error("track: expected panic for non-sequential timesteps")
		}
	}()
	r.Track(ts.New(ts.Mid, 0, env.OneHot(0, 1), 0, 2))
}

func TestSaveLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "lengths.bin")
	lengths := NewEpisodeLength(filename)
	episode(4, 0, lengths)
	episode(2, 0, lengths)

	if err := lengths.Save(); err != nil {
		t.Fatal(err)
	}
	data, err := LoadData(filename)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 2 || data[0] != 4 || data[1] != 2 {
		t.Errorf("loadData: want [4 2], have %v", data)
	}

	if _, err := LoadData(filepath.Join(t.TempDir(), "none")); err == nil {
		t.Error("loadData: expected error for missing file")
	}
}

func TestSummary(t *testing.T) {
	data := []float64{10, 1, 2, 3}

	mean, std := Summary(data, 3)
	if mean != 2 || math.Abs(std-1) > 1e-12 {
		t.Errorf("summary: want (2, 1), have (%v, %v)", mean, std)
	}

	mean, _ = Summary(data, 0)
	if mean != 4 {
		t.Errorf("summary: want mean 4, have %v", mean)
	}

	if mean, std := Summary(nil, 5); mean != 0 || std != 0 {
		t.Errorf("summary: want (0, 0) for no data, have (%v, %v)", mean, std)
	}
}

// historian is a Historian whose history is its episode counter
type historian struct {
	env.SimWorld
	episode int
	final   bool
}

func (h *historian) History() []float64 { return []float64{float64(h.episode)} }
func (h *historian) Steps() int          { return 0 }
func (h *historian) IsFinalState() bool  { return h.final }

func TestBestEpisode(t *testing.T) {
	h := &historian{}
	shortest := NewBestEpisode(h, Shortest, true)
	longest := NewBestEpisode(h, Longest, false)

	runs := []struct {
		length int
		final  bool
	}{
		{5, false},
		{7, true},
		{3, true},
		{9, false},
	}
	for i, run := range runs {
		h.episode = i + 1
		h.final = run.final
		episode(run.length, 0, shortest, longest)
	}

	if ep, length, ok := shortest.Episode(); !ok || ep != 3 || length != 3 {
		t.Errorf("shortest: want episode 3 of length 3, have %v of length "+
			"%v (ok=%v)", ep, length, ok)
	}
	if data := shortest.Data(); len(data) != 1 || data[0] != 3 {
		t.Errorf("shortest: want history [3], have %v", data)
	}

	if ep, length, _ := longest.Episode(); ep != 4 || length != 9 {
		t.Errorf("longest: want episode 4 of length 9, have %v of length %v",
			ep, length)
	}

	none := NewBestEpisode(&historian{}, Shortest, true)
	episode(3, 0, none)
	if _, _, ok := none.Episode(); ok {
		t.Error("bestEpisode: unsuccessful episode should not qualify")
	}
}
