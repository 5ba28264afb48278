// Package cache provides a bounded in-process result cache keyed by canonical
// request signatures. Entries live until evicted or process restart; staleness
// is advertised to callers through response headers, not enforced here.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value      V
	insertedAt time.Time
}

// Store is a capacity-bounded key/value map with insertion-order eviction.
// It is not an LRU: Get does not refresh an entry's position. All accesses
// are serialized so the capacity check and insert cannot race.
type Store[V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]entry[V]
	order    []string // insertion order, oldest first
}

// New creates a cache holding at most capacity entries.
func New[V any](capacity int) *Store[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Store[V]{
		capacity: capacity,
		entries:  make(map[string]entry[V], capacity),
	}
}

// Get returns the cached value for key, if present.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	return e.value, ok
}

// Put inserts or replaces the value for key. When the cache is full, exactly
// one entry, the oldest-inserted, is evicted first. Replacing an existing key
// keeps its original insertion position; last write wins.
func (s *Store[V]) Put(key string, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; exists {
		s.entries[key] = entry[V]{value: value, insertedAt: time.Now()}
		return
	}
	if len(s.entries) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
	}
	s.entries[key] = entry[V]{value: value, insertedAt: time.Now()}
	s.order = append(s.order, key)
}

// Len reports the current number of live entries.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
