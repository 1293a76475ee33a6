package cache

import "sync"

// Cache is a thread-safe LRU cache bounded by the total cost of its
// entries.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*lruNode[K, V]
	order   lruList[K, V]
	cost    func(V) int
	budget  int
	used    int

	hits, misses, evictions uint64
}

// New creates a cache that holds entries up to a total cost of budget.
// cost reports the cost of one value; nil counts every entry as 1.
// A budget of 0 or less means unlimited.
func New[K comparable, V any](budget int, cost func(V) int) *Cache[K, V] {
	if cost == nil {
		cost = func(V) int { return 1 }
	}
	return &Cache[K, V]{
		entries: make(map[K]*lruNode[K, V]),
		cost:    cost,
		budget:  budget,
	}
}

// Get returns the value for key and marks it as recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.moveToFront(n)
	return n.value, true
}

// Set stores value under key, replacing any previous value, and evicts
// old entries while the budget is exceeded. A value that alone exceeds the
// budget is not stored.
func (c *Cache[K, V]) Set(key K, value V) {
	cost := c.cost(value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		c.remove(n)
	}
	if c.budget > 0 && cost > c.budget {
		return
	}

	n := &lruNode[K, V]{key: key, value: value, cost: cost}
	c.entries[key] = n
	c.order.pushFront(n)
	c.used += cost

	for c.budget > 0 && c.used > c.budget {
		c.remove(c.order.tail)
		c.evictions++
	}
}

// remove drops n. Caller must hold c.mu.
func (c *Cache[K, V]) remove(n *lruNode[K, V]) {
	c.order.unlink(n)
	delete(c.entries, n.key)
	c.used -= n.cost
}

// Delete removes key. It reports whether the key was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if ok {
		c.remove(n)
	}
	return ok
}

// Clear removes all entries. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*lruNode[K, V])
	c.order = lruList[K, V]{}
	c.used = 0
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Cost:      c.used,
		Budget:    c.budget,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Cost is the summed cost of the entries.
	Cost int
	// Budget is the cost limit, 0 for unlimited.
	Budget int
	// Hits and Misses count Get calls.
	Hits, Misses uint64
	// HitRate is Hits / (Hits + Misses), 0.0 to 1.0.
	HitRate float64
	// Evictions counts entries dropped to stay within budget.
	Evictions uint64
}
