package environment

import (
	"gonum.org/v1/gonum/spatial/r1"
)

// IntervalLimit latches whenever a monitored value reaches or leaves
// the open interval (Min, Max). Once tripped, an IntervalLimit stays
// tripped until Reset, even if the value re-enters the interval.
type IntervalLimit struct {
	interval r1.Interval
	tripped  bool
}

// NewIntervalLimit creates and returns a new interval limit
func NewIntervalLimit(interval r1.Interval) *IntervalLimit {
	if interval.Min > interval.Max {
		panic("newIntervalLimit: interval minimum exceeds maximum")
	}
	return &IntervalLimit{interval: interval}
}

// NewSymmetricLimit returns an IntervalLimit over (-bound, bound)
func NewSymmetricLimit(bound float64) *IntervalLimit {
	return NewIntervalLimit(r1.Interval{Min: -bound, Max: bound})
}

// Check checks the value and returns whether the limit has been
// tripped at any point since the last Reset
func (i *IntervalLimit) Check(value float64) bool {
	if value <= i.interval.Min || value >= i.interval.Max {
		i.tripped = true
	}
	return i.tripped
}

// Tripped returns whether the limit has been tripped since the last
// Reset
func (i *IntervalLimit) Tripped() bool {
	return i.tripped
}

// Interval returns the legal interval
func (i *IntervalLimit) Interval() r1.Interval {
	return i.interval
}

// Reset un-trips the limit
func (i *IntervalLimit) Reset() {
	i.tripped = false
}
