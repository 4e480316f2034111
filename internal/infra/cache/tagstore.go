// Package cache provides a thread-safe in-memory response cache with
// tag-based invalidation. Entries are labeled with cache tags at write
// time; an external revalidation signal invalidates by tag without
// flushing unrelated entries. There is no eviction policy and no size
// bound: the working set is the CMS content graph, which is small.
package cache

import (
	"sync"
	"time"
)

// Clock provides an abstraction for time operations to enable testing.
type Clock interface {
	Now() time.Time
}

// SystemClock is a Clock implementation that uses the system time.
type SystemClock struct{}

// Now returns the current system time.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// entry is one cached response body with its tags and optional expiry.
type entry struct {
	value     []byte
	tags      map[string]struct{}
	expiresAt time.Time // zero means no expiry
}

// TagStore is a thread-safe in-memory cache keyed by request path.
// The zero value is not usable; use NewTagStore.
type TagStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration // 0 = entries live until invalidated
	clock   Clock
}

// NewTagStore creates a tag-indexed cache. ttl of 0 keeps entries until
// a revalidation invalidates their tags.
func NewTagStore(ttl time.Duration, clock Clock) *TagStore {
	if clock == nil {
		clock = &SystemClock{}
	}
	return &TagStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get returns the cached value for key, or false if absent or expired.
// Expired entries are removed lazily on the next write to their key.
func (s *TagStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && s.clock.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, labeled with the given tags.
func (s *TagStore) Set(key string, value []byte, tags []string) {
	tagSet := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		tagSet[t] = struct{}{}
	}

	e := entry{value: value, tags: tagSet}
	if s.ttl > 0 {
		e.expiresAt = s.clock.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

// InvalidateTags removes every entry labeled with at least one of the
// given tags and returns the number of entries removed.
func (s *TagStore) InvalidateTags(tags []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		for _, t := range tags {
			if _, ok := e.tags[t]; ok {
				delete(s.entries, key)
				removed++
				break
			}
		}
	}
	return removed
}

// Len returns the number of cached entries, including any not yet
// expired lazily.
func (s *TagStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
