package store

import (
	"context"
	"sync"

	crossmcp "github.com/jeeu-dev/cross-mcp"
	"golang.org/x/time/rate"
)

var _ crossmcp.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter keeps one token bucket per host, so a refresh pass never
// hammers a single site while sources on other hosts proceed.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewDomainLimiter returns a limiter allowing rps requests per second to
// each host with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until a request to domain is allowed.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
