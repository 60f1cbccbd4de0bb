// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

// Clip clips a floating point to within a minimum and maximum value
func Clip(value, min, max float64) float64 {
	return math.Max(math.Min(value, max), min)
}

// ClipInterval is a wrapper to use Clip with an r1.Interval instead of
// a separate max and min value
func ClipInterval(value float64, interval r1.Interval) float64 {
	return Clip(value, interval.Min, interval.Max)
}

// Sign returns -1, 0, or 1 depending on the sign of value. Both
// signed zeros have sign 0, and NaN has sign 0.
func Sign(value float64) int {
	switch {
	case value > 0:
		return 1
	case value < 0:
		return -1
	default:
		return 0
	}
}

// Round rounds value to the nearest integer, rounding halfway cases to
// the nearest even integer. Values beyond the int range saturate.
func Round(value float64) int {
	rounded := math.RoundToEven(value)
	switch {
	case math.IsNaN(rounded):
		return 0
	case rounded >= math.MaxInt32:
		return math.MaxInt32
	case rounded <= math.MinInt32:
		return math.MinInt32
	}
	return int(rounded)
}

// MaxSlice gets the maximum value and indices of all occurrences of the
// maximum value in a slice of float64
func MaxSlice(values []float64) (max float64, indices []int) {
	max, indices = values[0], []int{0}

	for i := 1; i < len(values); i++ {
		if values[i] > max {
			max = values[i]
			indices = []int{i}
		} else if values[i] == max {
			indices = append(indices, i)
		}
	}
	return
}
