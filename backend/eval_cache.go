package main

import "sync"

type evalCacheEntry struct {
	key   string
	score int
}

// EvalCache memoizes board scores. Lookups go through the Zobrist hash but
// only hit when the stored serialization equals the probed one. Capacity is
// bounded; the oldest insertion is evicted first.
type EvalCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[uint64]evalCacheEntry
	fifo     []uint64
	head     int
	hits     uint64
	misses   uint64
}

type EvalCacheStats struct {
	Count    int    `json:"count"`
	Capacity int    `json:"capacity"`
	Hits     uint64 `json:"hits"`
	Misses   uint64 `json:"misses"`
}

func NewEvalCache(capacity int) *EvalCache {
	c := &EvalCache{capacity: capacity}
	c.Clear()
	return c
}

func (c *EvalCache) Get(hash uint64, key string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[hash]
	if !ok || entry.key != key {
		c.misses++
		return 0, false
	}
	c.hits++
	return entry.score, true
}

func (c *EvalCache) Put(hash uint64, key string, score int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.capacity <= 0 {
		return
	}
	if _, ok := c.entries[hash]; ok {
		c.entries[hash] = evalCacheEntry{key: key, score: score}
		return
	}
	if len(c.fifo) < c.capacity {
		c.fifo = append(c.fifo, hash)
	} else {
		delete(c.entries, c.fifo[c.head])
		c.fifo[c.head] = hash
		c.head = (c.head + 1) % c.capacity
	}
	c.entries[hash] = evalCacheEntry{key: key, score: score}
}

func (c *EvalCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *EvalCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]evalCacheEntry)
	c.fifo = nil
	c.head = 0
	c.hits = 0
	c.misses = 0
}

func (c *EvalCache) Stats() EvalCacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return EvalCacheStats{
		Count:    len(c.entries),
		Capacity: c.capacity,
		Hits:     c.hits,
		Misses:   c.misses,
	}
}
