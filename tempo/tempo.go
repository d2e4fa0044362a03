// Package tempo implements a tiny expiring-key presence cache used for
// anti-spam windows. There is no background sweep: an expired key stays in
// the map until the next Exists call removes it. That makes the store
// unsuitable for large key spaces, which is fine here — keys are per-channel
// and per-channel-per-trigger, so the population stays small.
package tempo

import (
	"sync"
	"time"
)

// Tempo is a shareable handle to one underlying store. Copying the handle
// (or passing it by value to another goroutine) shares the store, not a
// snapshot: all copies observe each other's Set calls immediately.
type Tempo[K comparable] struct {
	store *store[K]
}

type store[K comparable] struct {
	mu      sync.Mutex
	entries map[K]time.Time
	now     func() time.Time
}

// New returns an empty store.
func New[K comparable]() Tempo[K] {
	return NewWithClock[K](time.Now)
}

// NewWithClock returns a store that reads time through now instead of
// time.Now, letting tests advance time without sleeping.
func NewWithClock[K comparable](now func() time.Time) Tempo[K] {
	return Tempo[K]{store: &store[K]{
		entries: make(map[K]time.Time),
		now:     now,
	}}
}

// Set inserts or overwrites key with an expiry of now + ttl.
func (t Tempo[K]) Set(key K, ttl time.Duration) {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = s.now().Add(ttl)
}

// Exists reports whether key is present and unexpired. A key found expired
// is removed as a side effect, so a second call after expiry is a plain
// miss.
func (t Tempo[K]) Exists(key K) bool {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	expiresAt, ok := s.entries[key]
	if !ok {
		return false
	}
	if !expiresAt.After(s.now()) {
		delete(s.entries, key)
		return false
	}
	return true
}
