// Package progressbar implements a progress bar which redraws itself
// in place in the terminal window
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gosuri/uilive"

	ts "github.com/samuelfneumann/gprl/timestep"
)

// ProgressBar is a progress bar that must be manually managed: Display
// must be called whenever the updated bar should be drawn. Drawing goes
// through a uilive.Writer, which overwrites the previously drawn bar.
//
// The underlying writer also refreshes on its own interval until Close
// is called.
type ProgressBar struct {
	width           float64
	maxProgress     float64
	currentProgress float64
	startTime       time.Time

	writer *uilive.Writer
	bar    strings.Builder
}

// New returns a new ProgressBar width characters wide, which is full
// after max calls to Increment, drawing to out
func New(out io.Writer, width, max int) *ProgressBar {
	if width < 1 || max < 1 {
		panic("new: width and max must be positive")
	}

	writer := uilive.New()
	writer.Out = out
	writer.Start()

	return &ProgressBar{
		width:       float64(width),
		maxProgress: float64(max),
		startTime:   time.Now(),
		writer:      writer,
	}
}

// Increment increments the internal progress counter
func (p *ProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Progress returns the fraction of the bar that is full
func (p *ProgressBar) Progress() float64 {
	return p.currentProgress / p.maxProgress
}

// String returns the current bar
func (p *ProgressBar) String() string {
	p.bar.Reset()
	p.bar.WriteString("|")

	filled := int(p.Progress() * p.width)
	p.bar.WriteString(strings.Repeat("█", filled))
	p.bar.WriteString(strings.Repeat(" ", int(p.width)-filled))

	fmt.Fprintf(&p.bar, "| [%.2f%% | elapsed: %v]", p.Progress()*100,
		time.Since(p.startTime).Truncate(time.Second))
	return p.bar.String()
}

// Display draws the progress bar, replacing the previously drawn bar
func (p *ProgressBar) Display() error {
	fmt.Fprintln(p.writer, p.String())
	return p.writer.Flush()
}

// Track increments and redraws the bar at the end of each episode, so
// that a ProgressBar can be registered with an experiment as a tracker
func (p *ProgressBar) Track(t ts.TimeStep) {
	if t.Last() {
		p.Increment()
		p.Display()
	}
}

// Close draws the bar a final time and stops the underlying writer. The
// ProgressBar should not be used after Close.
func (p *ProgressBar) Close() {
	p.writer.Stop()
}
