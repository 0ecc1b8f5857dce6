package ports

import (
	"context"
	"time"
)

// RateLimitStore is the backing state of the sliding-window rate limiter.
// Take prunes attempts older than now-window for key, then admits and records
// the attempt at now iff fewer than max remain. Prune, count and record are a
// single atomic step so that two simultaneous calls for the same key cannot
// both be admitted past the limit.
//
// Implementations: an in-memory map for a single process (state is lost on
// restart, an accepted tradeoff) or a Redis sorted set shared between
// instances.
type RateLimitStore interface {
	Take(ctx context.Context, key string, now time.Time, window time.Duration, max int) (bool, error)
}
