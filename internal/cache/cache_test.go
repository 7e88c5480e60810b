package cache

import (
	"testing"
	"time"
)

func TestCacheGetSet(t *testing.T) {
	c := New(10, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected miss for unknown key")
	}

	c.Set("a", 1)
	v, ok := c.Get("a")
	if !ok {
		t.Fatal("Expected hit after Set")
	}
	if v.(int) != 1 {
		t.Errorf("Got %v, want 1", v)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Stats = %+v, want 1 hit, 1 miss", stats)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := New(10, time.Minute)

	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("a", "value")

	// Just inside the TTL.
	now = now.Add(59 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Error("Entry expired before TTL")
	}

	// Past the TTL.
	now = now.Add(2 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("Entry survived past TTL")
	}
	if c.Len() != 0 {
		t.Errorf("Expired entry not removed, len = %d", c.Len())
	}
}

func TestCacheEvictsOldest(t *testing.T) {
	c := New(2, time.Hour)

	now := time.Now()
	c.now = func() time.Time { return now }

	c.Set("first", 1)
	now = now.Add(time.Second)
	c.Set("second", 2)
	now = now.Add(time.Second)
	c.Set("third", 3) // over capacity, "first" goes

	if _, ok := c.Get("first"); ok {
		t.Error("Oldest entry should have been evicted")
	}
	if _, ok := c.Get("second"); !ok {
		t.Error("Newer entry was evicted")
	}
	if _, ok := c.Get("third"); !ok {
		t.Error("Just-inserted entry missing")
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestCacheOverwriteDoesNotEvict(t *testing.T) {
	c := New(2, time.Hour)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("a", 3) // overwrite at capacity, nothing evicted

	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	v, ok := c.Get("a")
	if !ok || v.(int) != 3 {
		t.Errorf("Got %v %v, want 3 true", v, ok)
	}
}

func TestCacheClear(t *testing.T) {
	c := New(10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Entry survived Clear")
	}
}

func TestCacheCounters(t *testing.T) {
	var hits, misses, evicts int
	c := New(1, time.Minute, WithCounters(
		func() { hits++ },
		func() { misses++ },
		func() { evicts++ },
	))

	c.Get("nope")
	c.Set("a", 1)
	c.Get("a")
	c.Set("b", 2) // evicts "a"

	if hits != 1 || misses != 1 || evicts != 1 {
		t.Errorf("Counters = %d/%d/%d, want 1/1/1", hits, misses, evicts)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		op   string
		args []string
		want string
	}{
		{"budgets", nil, "budgets"},
		{"transactions", []string{"u1"}, "transactions:u1"},
		{"events_month", []string{"u1", "2025", "3"}, "events_month:u1:2025:3"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Key(tt.op, tt.args...); got != tt.want {
				t.Errorf("Key(%q, %v) = %q, want %q", tt.op, tt.args, got, tt.want)
			}
		})
	}
}

func TestHitRate(t *testing.T) {
	if got := (Stats{}).HitRate(); got != 0 {
		t.Errorf("HitRate of empty stats = %f, want 0", got)
	}
	if got := (Stats{Hits: 3, Misses: 1}).HitRate(); got != 75 {
		t.Errorf("HitRate = %f, want 75", got)
	}
}
