package cascade

import (
	"sort"

	"github.com/fwojciec/newsextract"
)

// Registry holds the content strategies available in this process, keyed
// by name. Strategies that were never registered are treated as not
// available by the Controller.
type Registry struct {
	strategies map[string]newsextract.ContentStrategy
}

// NewRegistry creates a Registry with the given strategies registered.
func NewRegistry(strategies ...newsextract.ContentStrategy) *Registry {
	r := &Registry{strategies: make(map[string]newsextract.ContentStrategy)}
	for _, s := range strategies {
		r.Register(s)
	}
	return r
}

// Register adds a strategy under its name.
// If a strategy is already registered under that name, it is replaced.
func (r *Registry) Register(s newsextract.ContentStrategy) {
	r.strategies[s.Name()] = s
}

// Lookup returns the strategy registered under name.
func (r *Registry) Lookup(name string) (newsextract.ContentStrategy, bool) {
	s, ok := r.strategies[name]
	return s, ok
}

// Names returns the registered strategy names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
