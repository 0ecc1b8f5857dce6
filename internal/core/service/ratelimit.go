package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/posyandu/lansia-health/internal/core/ports"
)

const (
	loginWindow      = 15 * time.Minute
	loginMaxAttempts = 5
)

// RateLimiter bounds attempts at sensitive operations per key within a
// trailing time window. Sliding, not fixed-bucket: the boundary moves with
// now, so attempts expire individually rather than all at once.
type RateLimiter struct {
	store  ports.RateLimitStore
	window time.Duration
	max    int
	logger zerolog.Logger

	now func() time.Time // injectable for tests
}

// NewRateLimiter builds a limiter over the given store. window <= 0 and
// max <= 0 fall back to the login defaults (15 minutes, 5 attempts).
func NewRateLimiter(store ports.RateLimitStore, window time.Duration, max int, logger zerolog.Logger) *RateLimiter {
	if window <= 0 {
		window = loginWindow
	}
	if max <= 0 {
		max = loginMaxAttempts
	}
	return &RateLimiter{store: store, window: window, max: max, logger: logger, now: time.Now}
}

// Allow reports whether an attempt for key is admitted, recording it when it
// is. A store failure admits the attempt: availability is preferred over
// strict limiting when the backing counter is unreachable.
func (l *RateLimiter) Allow(ctx context.Context, key string) bool {
	ok, err := l.store.Take(ctx, key, l.now().UTC(), l.window, l.max)
	if err != nil {
		l.logger.Warn().Err(err).Str("key", key).Msg("rate limit store unavailable, allowing attempt")
		return true
	}
	return ok
}

// LimitKey builds the canonical rate-limit key: "<client-address>_<user-id>",
// with "anonymous" standing in when the subject is unknown.
func LimitKey(clientAddr, userID string) string {
	if userID == "" {
		userID = "anonymous"
	}
	return clientAddr + "_" + userID
}
