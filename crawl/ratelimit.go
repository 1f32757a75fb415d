package crawl

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/newsextract"
	"golang.org/x/time/rate"
)

var _ newsextract.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests per publisher host with one token bucket
// per host. Hosts are compared case-insensitively without a "www." prefix
// or port, so www.bbc.com and bbc.com:443 share a bucket.
type DomainLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*rate.Limiter
	rps       float64
	overrides map[string]float64
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithHostRate sets a dedicated rate for one host, for publishers that
// throttle harder than the default.
func WithHostRate(host string, rps float64) LimiterOption {
	return func(d *DomainLimiter) {
		d.overrides[normalizeHost(host)] = rps
	}
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per
// second to each host, without bursting. A non-positive rate disables
// pacing.
func NewDomainLimiter(rps float64, opts ...LimiterOption) *DomainLimiter {
	d := &DomainLimiter{
		buckets:   make(map[string]*rate.Limiter),
		rps:       rps,
		overrides: make(map[string]float64),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait blocks until a request to host is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	host = normalizeHost(host)

	d.mu.Lock()
	bucket, ok := d.buckets[host]
	if !ok {
		rps := d.rps
		if override, found := d.overrides[host]; found {
			rps = override
		}
		limit := rate.Limit(rps)
		if rps <= 0 {
			limit = rate.Inf
		}
		bucket = rate.NewLimiter(limit, 1)
		d.buckets[host] = bucket
	}
	d.mu.Unlock()

	return bucket.Wait(ctx)
}

func normalizeHost(host string) string {
	host = strings.ToLower(host)
	if i := strings.LastIndexByte(host, ':'); i >= 0 && !strings.Contains(host[i:], "]") {
		host = host[:i]
	}
	return strings.TrimPrefix(host, "www.")
}
