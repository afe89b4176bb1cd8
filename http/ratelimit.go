package http

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter paces requests separately for each host. Fetcher keys it on
// u.Hostname(), so kick.com and kick.com:443 share a bucket while an API
// host and its CDN (e.g. kick.com and stream.kick.com) do not throttle
// each other.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter returns a limiter allowing rps requests per second to each
// host, with a burst of one.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until host may be requested again or ctx ends.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(h.rps), 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}
