// Package cache provides a size-bounded LRU cache for rendered frames.
//
// Entries carry a cost (for frames, their encoded size in bytes). When the
// total cost exceeds the budget, least recently used entries are evicted
// until it fits again.
//
//	frames := cache.New[Key, []byte](64<<20, func(b []byte) int { return len(b) })
//	frames.Set(key, png)
//	png, ok := frames.Get(key)
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
