package engine

import "sync"

// memoCache is a bounded memoization cache for intake conversions. It is a
// throughput optimization only: the normalizer produces identical results
// with the cache absent. When the cache reaches capacity it is cleared
// wholesale rather than evicted incrementally, keeping lookups lock-cheap.
type memoCache struct {
	mu  sync.Mutex
	cap int
	m   map[string]float64
}

func newMemoCache(capacity int) *memoCache {
	if capacity <= 0 {
		return nil
	}
	return &memoCache{cap: capacity, m: make(map[string]float64, capacity)}
}

func (c *memoCache) get(key string) (float64, bool) {
	if c == nil {
		return 0, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *memoCache) put(key string, v float64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.m) >= c.cap {
		c.m = make(map[string]float64, c.cap)
	}
	c.m[key] = v
}

// len reports the current entry count; used by tests.
func (c *memoCache) len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}
