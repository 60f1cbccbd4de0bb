package cartpole

import (
	"fmt"

	env "github.com/samuelfneumann/gprl/environment"
	"github.com/samuelfneumann/gprl/utils/floatutils"
)

// Maximum absolute bucket value of each discretized state variable.
// Each variable is one-hot encoded into 2*max+1 buckets.
const (
	XPosAbsMax     int = 1
	XVelAbsMax     int = 3
	AngleAbsMax    int = 1
	AngleVelAbsMax int = 3
)

var absMaxes = [...]int{XPosAbsMax, XVelAbsMax, AngleAbsMax, AngleVelAbsMax}

// StateLen is the length of an encoded Cartpole state
var StateLen = stateLen()

func stateLen() int {
	n := 0
	for _, max := range absMaxes {
		n += 2*max + 1
	}
	return n
}

// Round returns the discretized values of a physical state: the signs
// of the position and angle and the velocities rounded half to even
func Round(s PhysicalState) [4]int {
	return [4]int{
		floatutils.Sign(s.X),
		floatutils.Round(s.XVel),
		floatutils.Sign(s.Angle),
		floatutils.Round(s.AngleVel),
	}
}

// Encode returns the discretized one-hot encoding of a physical state.
// Values outside a variable's bucket range saturate to the extreme
// bucket.
func Encode(s PhysicalState) env.State {
	rounded := Round(s)

	parts := make([]env.State, len(rounded))
	for i, value := range rounded {
		parts[i] = oneHotVariable(value, absMaxes[i])
	}
	return env.Concat(parts...)
}

// oneHotVariable one-hot encodes a rounded variable into 2*absMax+1
// buckets corresponding to the values -absMax, ..., absMax
func oneHotVariable(rounded, absMax int) env.State {
	buckets := 2*absMax + 1
	return env.OneHot(bucket(rounded, absMax), buckets)
}

// bucket returns the index of the first bucket whose value is at least
// rounded, or the last bucket if there is none
func bucket(rounded, absMax int) int {
	for i, value := 0, -absMax; value <= absMax; i, value = i+1, value+1 {
		if rounded <= value {
			return i
		}
	}
	return 2 * absMax
}

// DecodeBuckets returns the bucket index of each discretized state
// variable in an encoded Cartpole state
func DecodeBuckets(s env.State) ([4]int, error) {
	var buckets [4]int
	if s.Len() != StateLen {
		return buckets, fmt.Errorf("decodeBuckets: state length %v != %v: %w",
			s.Len(), StateLen, env.ErrInvalidState)
	}

	start := 0
	for i, max := range absMaxes {
		end := start + 2*max + 1
		index := s.Slice(start, end).HotIndex()
		if index < 0 {
			return buckets, fmt.Errorf("decodeBuckets: variable %v is not "+
				"one-hot: %w", i, env.ErrInvalidState)
		}
		buckets[i] = index
		start = end
	}
	return buckets, nil
}

// Decode returns the discretized value of each state variable in an
// encoded Cartpole state. Saturated values decode to the extreme
// bucket value.
func Decode(s env.State) ([4]int, error) {
	values, err := DecodeBuckets(s)
	if err != nil {
		return values, fmt.Errorf("decode: %w", err)
	}
	for i := range values {
		values[i] -= absMaxes[i]
	}
	return values, nil
}
