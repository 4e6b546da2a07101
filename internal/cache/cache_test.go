package cache

import (
	"sync"
	"testing"
)

func TestGetSet(t *testing.T) {
	c := New[string, int](10)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache reported a hit")
	}

	c.Set("a", 1)
	c.Set("b", 2)

	if got, ok := c.Get("a"); !ok || got != 1 {
		t.Errorf("Get(a) = %d, %v, want 1, true", got, ok)
	}
	if got, ok := c.Get("b"); !ok || got != 2 {
		t.Errorf("Get(b) = %d, %v, want 2, true", got, ok)
	}
	if got := c.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestGetOrCreate(t *testing.T) {
	c := New[int, string](10)

	calls := 0
	create := func() string {
		calls++
		return "value"
	}

	if got := c.GetOrCreate(7, create); got != "value" {
		t.Errorf("GetOrCreate = %q, want %q", got, "value")
	}
	if got := c.GetOrCreate(7, create); got != "value" {
		t.Errorf("GetOrCreate = %q, want %q", got, "value")
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
}

func TestDelete(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)

	if !c.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) after Delete reported a hit")
	}
}

func TestClear(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if got := c.Len(); got != 0 {
		t.Errorf("Len() after Clear = %d, want 0", got)
	}
}

func TestEviction(t *testing.T) {
	c := New[int, int](8)

	for i := 0; i < 12; i++ {
		c.Set(i, i*10)
	}

	// Soft limit 8, eviction trims to 75% = 6 entries.
	if got := c.Len(); got > 8 {
		t.Errorf("Len() = %d, want <= 8", got)
	}

	// The most recently inserted key must survive eviction.
	if _, ok := c.Get(11); !ok {
		t.Error("most recent entry was evicted")
	}
}

func TestEvictionKeepsRecentlyUsed(t *testing.T) {
	c := New[int, int](4)

	c.Set(1, 1)
	c.Set(2, 2)
	c.Set(3, 3)
	// Touch 1 so it is newer than 2 and 3.
	c.Get(1)
	c.Set(4, 4)
	c.Set(5, 5) // exceeds the soft limit, triggers eviction

	if _, ok := c.Get(1); !ok {
		t.Error("recently used entry 1 was evicted")
	}
	if _, ok := c.Get(5); !ok {
		t.Error("newest entry 5 was evicted")
	}
}

func TestUnlimited(t *testing.T) {
	c := New[int, int](0)

	for i := 0; i < 100; i++ {
		c.Set(i, i)
	}
	if got := c.Len(); got != 100 {
		t.Errorf("Len() = %d, want 100", got)
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int, int](64)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := (seed + i) % 32
				c.GetOrCreate(key, func() int { return key * 2 })
				if v, ok := c.Get(key); ok && v != key*2 {
					t.Errorf("Get(%d) = %d, want %d", key, v, key*2)
				}
			}
		}(g)
	}
	wg.Wait()
}
