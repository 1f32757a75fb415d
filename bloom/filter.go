// Package bloom de-duplicates article URLs within a batch using a Bloom
// filter.
package bloom

import (
	"net/url"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers article URLs seen during a batch. URLs that differ only
// by fragment, trailing slash or host case name the same article. Bloom
// hits are confirmed against the exact keys, so a false positive never
// drops a URL.
//
// Filter is safe for concurrent use.
type Filter struct {
	mu       sync.Mutex
	f        *bloom.BloomFilter
	keys     map[string]struct{}
	admitted uint
}

// NewFilter sizes a filter for n URLs at the given false positive rate.
// The rate only affects how often a hit needs confirming.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f:    bloom.NewWithEstimates(max(n, 1), fpRate),
		keys: make(map[string]struct{}, n),
	}
}

// Seen reports whether rawURL was already offered and records it if not.
func (f *Filter) Seen(rawURL string) bool {
	key := Key(rawURL)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.f.TestOrAddString(key) {
		if _, ok := f.keys[key]; ok {
			return true
		}
	}
	f.keys[key] = struct{}{}
	f.admitted++
	return false
}

// Admitted returns how many URLs Seen reported as new.
func (f *Filter) Admitted() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.admitted
}

// Key returns the de-duplication key for rawURL. Unparseable input is used
// as-is minus any fragment.
func Key(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		if i := strings.IndexByte(rawURL, '#'); i >= 0 {
			rawURL = rawURL[:i]
		}
		return strings.TrimSuffix(rawURL, "/")
	}
	u.Fragment = ""
	u.RawFragment = ""
	u.Host = strings.ToLower(u.Host)
	u.Scheme = strings.ToLower(u.Scheme)
	return strings.TrimSuffix(u.String(), "/")
}
