package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitStore is the Redis-backed sliding-window attempt store, for
// deployments where several instances must share one counter. Attempts are
// kept in a sorted set scored by their unix-millisecond timestamp; the Lua
// script makes prune+count+record a single atomic step on the server.
type RateLimitStore struct {
	client *redis.Client
}

func NewRateLimitStore(client *redis.Client) *RateLimitStore {
	return &RateLimitStore{client: client}
}

var takeScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local window_ms = tonumber(ARGV[2])
	local max = tonumber(ARGV[3])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', now_ms - window_ms)
	if redis.call('ZCARD', key) >= max then
		return 0
	end

	redis.call('ZADD', key, now_ms, ARGV[4])
	redis.call('PEXPIRE', key, window_ms)
	return 1
`)

func (s *RateLimitStore) Take(ctx context.Context, key string, now time.Time, window time.Duration, max int) (bool, error) {
	// The member must be unique per attempt or two attempts landing in the
	// same millisecond would collapse into one sorted-set entry.
	member := fmt.Sprintf("%d-%d", now.UnixMilli(), time.Now().UnixNano())
	res, err := takeScript.Run(ctx, s.client, []string{s.key(key)},
		now.UnixMilli(), window.Milliseconds(), max, member).Int()
	if err != nil {
		return false, fmt.Errorf("rate limit take: %w", err)
	}
	return res == 1, nil
}

func (s *RateLimitStore) key(key string) string {
	return "ratelimit:" + key
}
