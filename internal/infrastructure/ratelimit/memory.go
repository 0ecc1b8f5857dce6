// Package ratelimit provides the in-memory sliding-window attempt store.
// State lives only in process memory: a restart clears all counters, an
// accepted tradeoff for single-instance deployments. Multi-instance
// deployments use the Redis-backed store instead.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps a pruned sequence of attempt timestamps per key. The
// mutex makes prune+count+record atomic so two simultaneous attempts for the
// same key cannot both slip past the limit.
type MemoryStore struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{attempts: make(map[string][]time.Time)}
}

func (s *MemoryStore) Take(_ context.Context, key string, now time.Time, window time.Duration, max int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-window)
	kept := s.attempts[key][:0]
	for _, ts := range s.attempts[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= max {
		s.attempts[key] = kept
		return false, nil
	}

	s.attempts[key] = append(kept, now)
	return true, nil
}

// Len reports the number of retained attempts for key. Intended for tests.
func (s *MemoryStore) Len(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.attempts[key])
}
