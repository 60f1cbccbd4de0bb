// Package intutils provides utilities for working with ints
package intutils

// Min calculates and returns the minimum integer in a list
func Min(ints ...int) int {
	min := ints[0]
	for _, val := range ints {
		if val < min {
			min = val
		}
	}
	return min
}

// Max calculates and returns the maximum integer in a list
func Max(ints ...int) int {
	max := ints[0]
	for _, val := range ints {
		if val > max {
			max = val
		}
	}
	return max
}

// Clip clips an integer to within [min, max]
func Clip(value, min, max int) int {
	return Max(Min(value, max), min)
}

// Range returns the integers in [start, stop)
func Range(start, stop int) []int {
	if stop <= start {
		return nil
	}
	r := make([]int, 0, stop-start)
	for i := start; i < stop; i++ {
		r = append(r, i)
	}
	return r
}
