package cartpole

import (
	"errors"
	"math"
	"testing"

	env "github.com/samuelfneumann/gprl/environment"
)

func TestEncodeAtRest(t *testing.T) {
	s := Encode(PhysicalState{})
	if s.Len() != 20 {
		t.Fatalf("encode: want length 20, have %v", s.Len())
	}

	want := env.NewState(
		0, 1, 0,
		0, 0, 0, 1, 0, 0, 0,
		0, 1, 0,
		0, 0, 0, 1, 0, 0, 0,
	)
	if s != want {
		t.Errorf("encode: want %v, have %v", want, s)
	}
}

func TestEncodeSaturates(t *testing.T) {
	tests := []struct {
		state PhysicalState
		want  [4]int
	}{
		{PhysicalState{X: -5, XVel: -100, Angle: -1, AngleVel: -4}, [4]int{0, 0, 0, 0}},
		{PhysicalState{X: 5, XVel: 100, Angle: 1, AngleVel: 3.6}, [4]int{2, 6, 2, 6}},
		{PhysicalState{XVel: math.Inf(1), AngleVel: math.Inf(-1)}, [4]int{1, 6, 1, 0}},
	}

	for _, test := range tests {
		buckets, err := DecodeBuckets(Encode(test.state))
		if err != nil {
			t.Fatal(err)
		}
		if buckets != test.want {
			t.Errorf("encode(%+v): want buckets %v, have %v", test.state,
				test.want, buckets)
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	// Values strictly inside the non-boundary ranges round-trip
	for _, x := range []float64{-0.3, 0, 1.2} {
		for _, xVel := range []float64{-2.2, -1, -0.4, 0, 0.6, 1.9, 2.4} {
			for _, angle := range []float64{-0.1, 0, 0.05} {
				for _, angleVel := range []float64{-2.1, -0.7, 0.2, 1.1} {
					s := PhysicalState{x, xVel, angle, angleVel}
					values, err := Decode(Encode(s))
					if err != nil {
						t.Fatal(err)
					}
					if values != Round(s) {
						t.Errorf("decode(encode(%+v)): want %v, have %v", s,
							Round(s), values)
					}
				}
			}
		}
	}
}

func TestRoundHalfToEven(t *testing.T) {
	values := Round(PhysicalState{XVel: 2.5, AngleVel: -0.5})
	if values[1] != 2 || values[3] != 0 {
		t.Errorf("round: want halves rounded to even, have %v", values)
	}
}

func TestDecodeInvalid(t *testing.T) {
	states := []env.State{
		env.OneHot(0, 5),
		env.NewState(make([]int, StateLen)...),
	}
	for _, s := range states {
		if _, err := DecodeBuckets(s); !errors.Is(err, env.ErrInvalidState) {
			t.Errorf("decodeBuckets(%v): want ErrInvalidState, have %v", s,
				err)
		}
	}
}
