package cache

import (
	"strconv"
	"sync"
	"testing"
)

func byteLen(b []byte) int { return len(b) }

func TestCache_GetSet(t *testing.T) {
	c := New[string, int](0, nil)

	if _, ok := c.Get("a"); ok {
		t.Error("Get on empty cache found a value")
	}
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3)

	if v, ok := c.Get("a"); !ok || v != 3 {
		t.Errorf("Get(a) = %d, %v, want 3, true", v, ok)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	s := c.Stats()
	if s.Hits != 1 || s.Misses != 1 || s.HitRate != 0.5 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, []byte](10, byteLen)
	c.Set("a", make([]byte, 4))
	c.Set("b", make([]byte, 4))
	c.Get("a") // b is now the oldest
	c.Set("c", make([]byte, 4))

	if _, ok := c.Get("b"); ok {
		t.Error("b survived, want evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s evicted, want kept", k)
		}
	}

	s := c.Stats()
	if s.Cost != 8 || s.Evictions != 1 || s.Budget != 10 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestCache_OversizedValueNotStored(t *testing.T) {
	c := New[string, []byte](10, byteLen)
	c.Set("small", make([]byte, 2))
	c.Set("huge", make([]byte, 11))

	if _, ok := c.Get("huge"); ok {
		t.Error("value above budget was stored")
	}
	if _, ok := c.Get("small"); !ok {
		t.Error("oversized Set evicted other entries")
	}
}

func TestCache_ReplaceUpdatesCost(t *testing.T) {
	c := New[string, []byte](10, byteLen)
	c.Set("a", make([]byte, 6))
	c.Set("a", make([]byte, 3))
	if got := c.Stats().Cost; got != 3 {
		t.Errorf("Cost = %d, want 3", got)
	}
}

func TestCache_DeleteAndClear(t *testing.T) {
	c := New[int, int](0, nil)
	for i := range 5 {
		c.Set(i, i)
	}

	if !c.Delete(2) || c.Delete(2) {
		t.Error("Delete(2) should succeed once")
	}
	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}

	c.Clear()
	if c.Len() != 0 || c.Stats().Cost != 0 {
		t.Errorf("after Clear: %+v", c.Stats())
	}
	c.Set(9, 9)
	if v, ok := c.Get(9); !ok || v != 9 {
		t.Error("cache unusable after Clear")
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[string, int](50, nil)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 500 {
				k := strconv.Itoa((g*31 + i) % 80)
				c.Set(k, i)
				c.Get(k)
			}
		}()
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("Len() = %d, want at most 50", c.Len())
	}
}
