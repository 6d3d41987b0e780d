package ratelimit

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter is a fixed-window per-key rate limiter backed by Redis, with an
// in-memory token-bucket fallback when Redis is not configured or a call
// fails. Limiting is best-effort: a Redis outage must never block
// feedback capture.
type Limiter struct {
	rdb    *redis.Client // nil when Redis is not configured
	limit  int
	window time.Duration

	mu       sync.Mutex
	fallback map[string]*rate.Limiter
}

// New creates a limiter allowing limit requests per key per window.
// rdb may be nil; the limiter then runs purely in memory.
func New(rdb *redis.Client, limit int, window time.Duration) *Limiter {
	l := &Limiter{
		rdb:      rdb,
		limit:    limit,
		window:   window,
		fallback: make(map[string]*rate.Limiter),
	}
	go l.janitor()
	return l
}

// Allow reports whether the key may make a request now.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l.rdb == nil {
		return l.allowLocal(key)
	}

	redisKey := fmt.Sprintf("ratelimit:%s", key)
	n, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		log.Printf("rate limiter falling back to memory: %v", err)
		return l.allowLocal(key)
	}
	if n == 1 {
		l.rdb.Expire(ctx, redisKey, l.window)
	}
	return n <= int64(l.limit)
}

func (l *Limiter) allowLocal(key string) bool {
	l.mu.Lock()
	lim, ok := l.fallback[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(l.window/time.Duration(l.limit)), l.limit)
		l.fallback[key] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

// janitor bounds fallback map growth; entries rebuild with a full bucket,
// which is acceptable for a best-effort limiter.
func (l *Limiter) janitor() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		l.fallback = make(map[string]*rate.Limiter)
		l.mu.Unlock()
	}
}
