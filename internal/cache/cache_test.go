package cache

import (
	"errors"
	"testing"
)

func TestLRUGetSet(t *testing.T) {
	c := New[int, string](2)
	c.Set(1, "one")
	c.Set(2, "two")

	if v, ok := c.Get(1); !ok || v != "one" {
		t.Errorf("Get(1) = %q, %v, want one, true", v, ok)
	}
	if _, ok := c.Get(3); ok {
		t.Error("Get(3) should miss")
	}
}

func TestLRUEvictsOldest(t *testing.T) {
	var evicted []int
	c := New[int, int](2)
	c.OnEvict = func(k, _ int) { evicted = append(evicted, k) }

	c.Set(1, 10)
	c.Set(2, 20)
	c.Get(1) // 2 becomes oldest
	c.Set(3, 30)

	if _, ok := c.Get(2); ok {
		t.Error("key 2 should have been evicted")
	}
	if _, ok := c.Get(1); !ok {
		t.Error("key 1 should still be cached")
	}
	if len(evicted) != 1 || evicted[0] != 2 {
		t.Errorf("evicted = %v, want [2]", evicted)
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestLRUGetOrCreate(t *testing.T) {
	c := New[string, int](4)
	calls := 0
	create := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrCreate("k", create)
		if err != nil || v != 42 {
			t.Fatalf("GetOrCreate = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("stats = %+v, want 2 hits 1 miss", s)
	}
}

func TestLRUGetOrCreateError(t *testing.T) {
	c := New[string, int](4)
	errBoom := errors.New("boom")

	_, err := c.GetOrCreate("k", func() (int, error) { return 0, errBoom })
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d after failed create, want 0", c.Len())
	}
}

func TestLRUClear(t *testing.T) {
	c := New[int, int](0)
	if c.Stats().Capacity != DefaultCapacity {
		t.Errorf("Capacity = %d, want %d", c.Stats().Capacity, DefaultCapacity)
	}
	n := 0
	c.OnEvict = func(int, int) { n++ }
	c.Set(1, 1)
	c.Set(2, 2)
	c.Clear()
	if c.Len() != 0 || n != 2 {
		t.Errorf("after Clear: Len = %d, evicted %d, want 0 and 2", c.Len(), n)
	}
}
