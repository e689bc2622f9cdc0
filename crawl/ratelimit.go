package crawl

import (
	"context"
	"sync"

	"github.com/fwojciec/cellscan"
	"golang.org/x/time/rate"
)

var _ cellscan.Limiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests per host using token buckets. The
// explorer lives on a single host in practice, but keying by host keeps
// listing and detail traffic polite even if they ever move to separate
// subdomains.
type DomainLimiter struct {
	rps float64

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewDomainLimiter creates a DomainLimiter with the given requests per
// second limit. Bursting is disabled so the first request after an idle
// period does not stack up with the next one.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		rps:     rps,
		buckets: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until the limiter admits a request to the given host, or the
// context is canceled.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	return d.bucket(host).Wait(ctx)
}

func (d *DomainLimiter) bucket(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buckets[host]
	if !ok {
		b = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.buckets[host] = b
	}
	return b
}
