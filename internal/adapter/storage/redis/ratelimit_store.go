package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RateLimitStore counts requests per caller in fixed windows.
type RateLimitStore struct {
	client goredis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRateLimitStore creates a new Redis-backed rate limit store.
func NewRateLimitStore(client goredis.UniversalClient) *RateLimitStore {
	return &RateLimitStore{
		client: client,
		prefix: "marketplace:ratelimit:",
		now:    time.Now,
	}
}

// RateLimitResult holds the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

// RetryAfter is how long a refused caller should wait, at least one second.
func (r *RateLimitResult) RetryAfter(now time.Time) time.Duration {
	d := r.ResetAt.Sub(now).Round(time.Second)
	if d < time.Second {
		return time.Second
	}
	return d
}

// Allow counts one request for key in the current window. The counter key
// carries the window index so a new window starts from zero even if the
// previous key has not expired yet.
func (s *RateLimitStore) Allow(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error) {
	if window < time.Second {
		return nil, fmt.Errorf("rate limit window %s is below one second", window)
	}
	seconds := int64(window / time.Second)
	windowID := s.now().Unix() / seconds
	redisKey := fmt.Sprintf("%s%s:%d", s.prefix, key, windowID)

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis rate limit incr: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, window+time.Second).Err(); err != nil {
			return nil, fmt.Errorf("redis rate limit expire: %w", err)
		}
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return &RateLimitResult{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   time.Unix((windowID+1)*seconds, 0),
	}, nil
}

// Ping implements ports.HealthChecker.
func (s *RateLimitStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Name implements ports.HealthChecker.
func (s *RateLimitStore) Name() string { return "ratelimit" }
