package progressbar

import (
	"bytes"
	"strings"
	"testing"

	env "github.com/samuelfneumann/gprl/environment"
	ts "github.com/samuelfneumann/gprl/timestep"
)

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, 10, 4)
	defer p.Close()

	p.Increment()
	if p.Progress() != 0.25 {
		t.Errorf("progress: want 0.25, have %v", p.Progress())
	}
	if bar := p.String(); !strings.HasPrefix(bar, "|██        |") {
		t.Errorf("string: unexpected bar %q", bar)
	}

	for i := 0; i < 10; i++ {
		p.Increment()
	}
	if p.Progress() != 1 {
		t.Errorf("progress: want progress capped at 1, have %v", p.Progress())
	}
}

func TestTrack(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, 4, 2)
	defer p.Close()

	s := env.OneHot(0, 1)
	p.Track(ts.New(ts.First, 0, s, env.NoAction, 0))
	p.Track(ts.New(ts.Mid, 0, s, 0, 1))
	if p.Progress() != 0 {
		t.Errorf("track: only last timesteps should count, have %v",
			p.Progress())
	}

	p.Track(ts.New(ts.Last, 0, s, 0, 2))
	if p.Progress() != 0.5 {
		t.Errorf("track: want 0.5, have %v", p.Progress())
	}
	if !strings.Contains(buf.String(), "50.00%") {
		t.Errorf("track: bar not drawn, have %q", buf.String())
	}
}
