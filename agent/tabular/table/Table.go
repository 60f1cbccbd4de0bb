// Package table implements the lookup tables used by tabular learners
package table

import (
	"sort"

	env "github.com/samuelfneumann/gprl/environment"
)

// Initializer returns the value of a Key which has never been stored
// in a Table
type Initializer func(env.Key) float64

// Table maps state-action Keys to float64 values.
//
// Default value policy: reading a Key which has never been set returns
// 0.0 and does not store the Key. A Table created with NewInitialized
// instead stores and returns the Initializer's value on the first read
// of a Key, so that repeated reads are consistent.
type Table struct {
	values map[env.Key]float64
	init   Initializer
}

// New returns a new, empty Table with default value 0.0
func New() *Table {
	return &Table{values: make(map[env.Key]float64)}
}

// NewInitialized returns a new, empty Table which initializes absent
// Keys using init on their first read
func NewInitialized(init Initializer) *Table {
	return &Table{values: make(map[env.Key]float64), init: init}
}

// Get returns the value stored at k
func (t *Table) Get(k env.Key) float64 {
	if v, ok := t.values[k]; ok {
		return v
	}
	if t.init == nil {
		return 0.0
	}
	v := t.init(k)
	t.values[k] = v
	return v
}

// Set stores v at k
func (t *Table) Set(k env.Key, v float64) {
	t.values[k] = v
}

// Add adds delta to the value stored at k
func (t *Table) Add(k env.Key, delta float64) {
	t.Set(k, t.Get(k)+delta)
}

// Contains returns whether a value has been stored at k
func (t *Table) Contains(k env.Key) bool {
	_, ok := t.values[k]
	return ok
}

// Delete removes k from the Table
func (t *Table) Delete(k env.Key) {
	delete(t.values, k)
}

// Len returns the number of Keys stored in the Table
func (t *Table) Len() int {
	return len(t.values)
}

// Keys returns the Keys stored in the Table in a deterministic order
func (t *Table) Keys() []env.Key {
	keys := make([]env.Key, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].State != keys[j].State {
			return keys[i].State.Less(keys[j].State)
		}
		return keys[i].Action < keys[j].Action
	})
	return keys
}

// Map replaces the value stored at each Key with f(Key, value). Keys
// are visited in no particular order.
func (t *Table) Map(f func(env.Key, float64) float64) {
	for k, v := range t.values {
		t.values[k] = f(k, v)
	}
}

// Clear removes all Keys from the Table
func (t *Table) Clear() {
	t.values = make(map[env.Key]float64)
}

// Entry is a Key of a Table with its stored value, in a form which can
// be serialized
type Entry struct {
	State  []int
	Action env.Action
	Value  float64
}

// Entries returns the stored values of the Table in the order of Keys
func (t *Table) Entries() []Entry {
	keys := t.Keys()
	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{
			State:  k.State.Values(),
			Action: k.Action,
			Value:  t.values[k],
		}
	}
	return entries
}

// Load stores the values of entries in the Table
func (t *Table) Load(entries []Entry) {
	for _, e := range entries {
		t.Set(env.NewKey(env.NewState(e.State...), e.Action), e.Value)
	}
}
