package main

import "testing"

func TestEvalCacheEvictsOldestWhenFull(t *testing.T) {
	cache := NewEvalCache(2)
	cache.Put(1, "a", 10)
	cache.Put(2, "b", 20)
	cache.Put(3, "c", 30)

	if cache.Len() != 2 {
		t.Fatalf("expected capacity to bound entries, got %d", cache.Len())
	}
	if _, ok := cache.Get(1, "a"); ok {
		t.Fatalf("expected oldest entry to be evicted")
	}
	if score, ok := cache.Get(3, "c"); !ok || score != 30 {
		t.Fatalf("expected newest entry to survive, got %d ok=%v", score, ok)
	}
}

func TestEvalCacheRejectsHashCollision(t *testing.T) {
	cache := NewEvalCache(8)
	cache.Put(42, "B..", 7)
	if _, ok := cache.Get(42, "W.."); ok {
		t.Fatalf("same hash with a different board must miss")
	}
	if score, ok := cache.Get(42, "B.."); !ok || score != 7 {
		t.Fatalf("expected exact key to hit")
	}
}

func TestEvalCacheZeroCapacityStoresNothing(t *testing.T) {
	cache := NewEvalCache(0)
	cache.Put(1, "a", 1)
	if cache.Len() != 0 {
		t.Fatalf("expected disabled cache to stay empty")
	}
}

func TestEvalCacheClearResetsStats(t *testing.T) {
	cache := NewEvalCache(4)
	cache.Put(1, "a", 1)
	cache.Get(1, "a")
	cache.Get(2, "b")
	cache.Clear()
	stats := cache.Stats()
	if stats.Count != 0 || stats.Hits != 0 || stats.Misses != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
}
