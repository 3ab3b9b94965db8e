// Travelrec - Travel Destination Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelrec

package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(capacity int, ttl time.Duration) (*LRUCache[string], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRUCache_BasicOperations(t *testing.T) {
	c, _ := newTestCache(3, time.Minute)

	c.Add("a", "alpha")
	c.Add("b", "bravo")
	c.Add("c", "charlie")

	for key, want := range map[string]string{"a": "alpha", "b": "bravo", "c": "charlie"} {
		got, found := c.Get(key)
		if !found {
			t.Errorf("expected to find key %q", key)
		}
		if got != want {
			t.Errorf("Get(%q) = %q, want %q", key, got, want)
		}
	}

	if c.Len() != 3 {
		t.Errorf("expected len 3, got %d", c.Len())
	}
}

func TestLRUCache_Eviction(t *testing.T) {
	c, _ := newTestCache(3, time.Minute)

	c.Add("a", "1")
	c.Add("b", "2")
	c.Add("c", "3")

	// 'a' becomes most recently used, so 'b' is evicted next.
	c.Get("a")
	c.Add("d", "4")

	if _, found := c.Get("b"); found {
		t.Error("expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := c.Get(key); !found {
			t.Errorf("expected %q to be present", key)
		}
	}
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)

	c.Add("a", "old")
	c.Add("a", "new")

	if got, _ := c.Get("a"); got != "new" {
		t.Errorf("Get(a) = %q, want new", got)
	}
	if c.Len() != 1 {
		t.Errorf("expected len 1, got %d", c.Len())
	}
}

func TestLRUCache_TTL(t *testing.T) {
	c, clock := newTestCache(10, time.Minute)

	c.Add("a", "1")
	clock.Advance(30 * time.Second)
	c.Add("b", "2")

	clock.Advance(45 * time.Second)
	if _, found := c.Get("a"); found {
		t.Error("expected 'a' to be expired")
	}
	if _, found := c.Get("b"); !found {
		t.Error("expected 'b' to be live")
	}

	clock.Advance(time.Minute)
	if removed := c.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", removed)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}
}

func TestLRUCache_RemoveAndClear(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)

	c.Add("a", "1")
	c.Add("b", "2")

	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) = true, want false")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", c.Len())
	}
	c.Add("c", "3")
	if _, found := c.Get("c"); !found {
		t.Error("cache unusable after Clear")
	}
}

func TestLRUCache_Stats(t *testing.T) {
	c, _ := newTestCache(10, time.Minute)

	c.Add("a", "1")
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	hits, misses, size := c.Stats()
	if hits != 2 || misses != 1 || size != 1 {
		t.Errorf("Stats() = (%d, %d, %d), want (2, 1, 1)", hits, misses, size)
	}
}

func TestLRUCache_Defaults(t *testing.T) {
	c := NewLRUCache[int](0, 0)
	if c.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", c.capacity, DefaultCapacity)
	}
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultTTL)
	}
}

func TestLRUCache_Concurrent(t *testing.T) {
	c := NewLRUCache[int](100, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := strconv.Itoa((g*500 + i) % 150)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("cache exceeded capacity: %d", c.Len())
	}
}
