package environment

import (
	"fmt"
	"strings"
)

// Action is an action taken in a SimWorld. Its meaning depends on the
// SimWorld: a wager, a push direction, a disc move, etc.
type Action int

// NoAction is used as the action of a Key which indexes a state only,
// for example by a state-value critic
const NoAction Action = -1 << 31

// State is the fixed-length, immutable encoding of a SimWorld state.
// Each element is a small signed integer, usually 0 or 1 for one-hot
// encodings. States are comparable with == and can be used directly as
// map keys or as part of a Key.
//
// The zero State has length 0.
type State struct {
	data string
}

// NewState returns a new State holding a copy of values. NewState
// panics if any value does not fit in an int8.
func NewState(values ...int) State {
	data := make([]byte, len(values))
	for i, v := range values {
		if v < -128 || v > 127 {
			panic(fmt.Sprintf("newState: value %v at index %v does not "+
				"fit in a state element", v, i))
		}
		data[i] = byte(int8(v))
	}
	return State{string(data)}
}

// OneHot returns a State of length n with a single 1 at index i.
// OneHot panics if i is not in [0, n).
func OneHot(i, n int) State {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("oneHot: index %v out of range [0, %v)", i, n))
	}
	values := make([]int, n)
	values[i] = 1
	return NewState(values...)
}

// Concat returns the concatenation of the argument States
func Concat(states ...State) State {
	var b strings.Builder
	for _, s := range states {
		b.WriteString(s.data)
	}
	return State{b.String()}
}

// Len returns the number of elements in the State
func (s State) Len() int {
	return len(s.data)
}

// At returns the element at index i
func (s State) At(i int) int {
	return int(int8(s.data[i]))
}

// Values returns a copy of the elements of the State
func (s State) Values() []int {
	values := make([]int, len(s.data))
	for i := range values {
		values[i] = s.At(i)
	}
	return values
}

// Slice returns the sub-state of elements [i, j)
func (s State) Slice(i, j int) State {
	return State{s.data[i:j]}
}

// HotIndex returns the index of the single 1 in a one-hot State. If
// the State is not one-hot, HotIndex returns -1.
func (s State) HotIndex() int {
	index := -1
	for i := 0; i < s.Len(); i++ {
		switch s.At(i) {
		case 0:
		case 1:
			if index != -1 {
				return -1
			}
			index = i
		default:
			return -1
		}
	}
	return index
}

// Less reports whether s orders before t. States are ordered
// lexicographically by element, with shorter prefixes first.
func (s State) Less(t State) bool {
	n := s.Len()
	if t.Len() < n {
		n = t.Len()
	}
	for i := 0; i < n; i++ {
		if s.At(i) != t.At(i) {
			return s.At(i) < t.At(i)
		}
	}
	return s.Len() < t.Len()
}

// String implements the fmt.Stringer interface
func (s State) String() string {
	return fmt.Sprint(s.Values())
}

// Key is a state-action pair. It is the lookup key for policy and
// eligibility tables.
type Key struct {
	State  State
	Action Action
}

// NewKey returns the Key for taking action a in state s
func NewKey(s State, a Action) Key {
	return Key{State: s, Action: a}
}

// StateKey returns the Key for state s alone
func StateKey(s State) Key {
	return Key{State: s, Action: NoAction}
}

// String implements the fmt.Stringer interface
func (k Key) String() string {
	if k.Action == NoAction {
		return k.State.String()
	}
	return fmt.Sprintf("(%v, %v)", k.State, k.Action)
}
