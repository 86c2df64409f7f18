package respcache

import (
	"sync"
	"time"
)

// Entry is one cached response. Entries are immutable once stored; a fresh
// write replaces the whole value.
type Entry struct {
	Body        []byte
	ETag        string
	ContentType string
	CreatedAt   time.Time
}

// Store is a TTL-bound, size-bounded response store. A single coarse mutex
// guards all operations; every operation is a fast in-memory map mutation,
// so finer-grained locking buys nothing here.
type Store struct {
	mu         sync.Mutex
	entries    map[string]Entry
	maxEntries int
	ttl        time.Duration

	now func() time.Time // stubbed in tests
}

// NewStore creates a store holding at most maxEntries entries, each fresh
// for ttl.
func NewStore(maxEntries int, ttl time.Duration) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		entries:    make(map[string]Entry),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// TTL returns the configured entry lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Get returns the entry for key if present and still fresh.
func (s *Store) Get(key string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return Entry{}, false
	}
	if s.now().Sub(e.CreatedAt) >= s.ttl {
		delete(s.entries, key)
		return Entry{}, false
	}
	return e, true
}

// Set stores an entry under key, evicting as needed to stay within the
// size bound: expired entries are swept first, and if the store is still
// full it is cleared entirely. A cold-cache burst is preferred over
// tracking per-entry recency.
func (s *Store) Set(key string, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.maxEntries {
		s.sweepLocked()
		if len(s.entries) >= s.maxEntries {
			s.entries = make(map[string]Entry)
			clearsTotal.Inc()
		}
	}
	s.entries[key] = e
}

// Len reports the current number of entries, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Clear drops every entry.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]Entry)
}

// sweepLocked removes expired entries. Callers hold s.mu.
func (s *Store) sweepLocked() {
	now := s.now()
	for key, e := range s.entries {
		if now.Sub(e.CreatedAt) >= s.ttl {
			delete(s.entries, key)
			evictionsTotal.Inc()
		}
	}
}
