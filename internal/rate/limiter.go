// Package rate implements fixed-window request limiting with memory
// and redis backends. Used to throttle the credential endpoints
// (login/register) per client IP.
package rate

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	rdb "github.com/redis/go-redis/v9"
)

// Result is the outcome of a limiter query.
type Result struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

// Limiter answers whether a key may proceed in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

func windowKey(key string, window time.Duration, now time.Time) string {
	winStart := now.Truncate(window)
	return fmt.Sprintf("%s:%d", strings.ReplaceAll(key, " ", "_"), winStart.Unix())
}

// =================================================================================
// MEMORY LIMITER
// =================================================================================

// MemoryLimiter is a fixed-window limiter backed by an in-process
// cache. Counters expire with the window; good enough for a single
// instance.
type MemoryLimiter struct {
	cache  *gocache.Cache
	max    int64
	window time.Duration
}

// NewMemoryLimiter builds a memory limiter allowing max hits per window.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		cache:  gocache.New(window, window),
		max:    int64(max),
		window: window,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := time.Now().UTC()
	k := windowKey(key, l.window, now)

	var hits int64
	if err := l.cache.Add(k, int64(1), l.window); err == nil {
		hits = 1
	} else {
		n, err := l.cache.IncrementInt64(k, 1)
		if err != nil {
			// Entry expired between Add and Increment; start a new window.
			l.cache.Set(k, int64(1), l.window)
			n = 1
		}
		hits = n
	}

	res := Result{
		Allowed:   hits <= l.max,
		Remaining: maxInt64(l.max-hits, 0),
	}
	if !res.Allowed {
		res.RetryAfter = l.window - now.Sub(now.Truncate(l.window))
	}
	return res, nil
}

// =================================================================================
// REDIS LIMITER
// =================================================================================

// RedisLimiter is a fixed window over INCR + EXPIRE, shared across
// instances.
type RedisLimiter struct {
	client *rdb.Client
	prefix string
	max    int64
	window time.Duration
}

// NewRedisLimiter builds a redis limiter allowing max hits per window.
func NewRedisLimiter(client *rdb.Client, prefix string, max int, window time.Duration) *RedisLimiter {
	if prefix == "" {
		prefix = "rl:"
	}
	return &RedisLimiter{client: client, prefix: prefix, max: int64(max), window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	redisKey := l.prefix + windowKey(key, l.window, time.Now().UTC())

	hits, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return Result{}, err
	}
	if hits == 1 {
		_ = l.client.Expire(ctx, redisKey, l.window).Err()
	}

	res := Result{
		Allowed:   hits <= l.max,
		Remaining: maxInt64(l.max-hits, 0),
	}
	if !res.Allowed {
		ttl, err := l.client.TTL(ctx, redisKey).Result()
		if err == nil && ttl > 0 {
			res.RetryAfter = ttl
		} else {
			res.RetryAfter = l.window
		}
	}
	return res, nil
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
