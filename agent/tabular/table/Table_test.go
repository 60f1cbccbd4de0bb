package table

import (
	"testing"

	env "github.com/samuelfneumann/gprl/environment"
)

func TestDefaultZero(t *testing.T) {
	tab := New()
	k := env.NewKey(env.OneHot(1, 3), 2)

	if v := tab.Get(k); v != 0.0 {
		t.Errorf("get: want 0.0 for absent key, have %v", v)
	}
	if tab.Contains(k) || tab.Len() != 0 {
		t.Error("get: reading an absent key should not store it")
	}

	tab.Set(k, 1.5)
	tab.Add(k, 0.5)
	if v := tab.Get(k); v != 2.0 {
		t.Errorf("get: want 2.0, have %v", v)
	}

	// Same state, different action is a different key
	if v := tab.Get(env.NewKey(env.OneHot(1, 3), 1)); v != 0.0 {
		t.Errorf("get: want 0.0 for other action, have %v", v)
	}

	tab.Clear()
	if tab.Len() != 0 || tab.Get(k) != 0.0 {
		t.Error("clear: table should be empty")
	}
}

func TestInitialized(t *testing.T) {
	calls := 0
	tab := NewInitialized(func(env.Key) float64 {
		calls++
		return float64(calls)
	})
	k := env.StateKey(env.OneHot(0, 2))

	first := tab.Get(k)
	second := tab.Get(k)
	if first != 1 || second != 1 || calls != 1 {
		t.Errorf("get: want initializer called once, have values %v, %v "+
			"and %v calls", first, second, calls)
	}
}

func TestKeysDeterministic(t *testing.T) {
	tab := New()
	s0, s1 := env.OneHot(0, 2), env.OneHot(1, 2)
	tab.Set(env.NewKey(s1, 0), 1)
	tab.Set(env.NewKey(s0, 1), 1)
	tab.Set(env.NewKey(s0, 0), 1)

	keys := tab.Keys()
	if len(keys) != 3 {
		t.Fatalf("keys: want 3 keys, have %v", len(keys))
	}
	for i := 1; i < len(keys); i++ {
		prev, cur := keys[i-1], keys[i]
		if prev.State == cur.State && prev.Action >= cur.Action {
			t.Errorf("keys: not sorted: %v", keys)
		}
	}
}

func TestMap(t *testing.T) {
	tab := New()
	k0 := env.NewKey(env.OneHot(0, 2), 0)
	k1 := env.NewKey(env.OneHot(1, 2), 1)
	tab.Set(k0, 1)
	tab.Set(k1, 2)

	visited := 0
	tab.Map(func(k env.Key, v float64) float64 {
		visited++
		if k == k1 {
			return v + 1
		}
		return v * 0.5
	})

	if visited != 2 {
		t.Errorf("map: want 2 keys visited, have %v", visited)
	}
	if v := tab.Get(k0); v != 0.5 {
		t.Errorf("map: want 0.5, have %v", v)
	}
	if v := tab.Get(k1); v != 3 {
		t.Errorf("map: want 3, have %v", v)
	}
	if tab.Len() != 2 {
		t.Errorf("map: want 2 keys, have %v", tab.Len())
	}
}
