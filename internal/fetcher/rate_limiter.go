package fetcher

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter throttles requests per hostname so repeated pagination
// against one site stays polite.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewRateLimiter(reqPerSec float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(reqPerSec),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiterFor(host string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if lim, ok := rl.limiters[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(rl.limit, rl.burst)
	rl.limiters[host] = lim
	return lim
}

// WaitURL blocks until the host of raw may be hit again. URLs without a
// parseable host share one fallback limiter.
func (rl *RateLimiter) WaitURL(ctx context.Context, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return rl.limiterFor("_").Wait(ctx)
	}
	return rl.limiterFor(u.Host).Wait(ctx)
}
