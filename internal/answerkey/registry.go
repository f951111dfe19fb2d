// Package answerkey resolves administration keys to official answer keys.
package answerkey

import (
	"maps"
	"slices"
)

// Registry maps canonical administration keys ("29s1") to answer key source URLs.
// A Registry is immutable after construction and safe for concurrent use.
type Registry struct {
	sources map[string]string
}

// NewRegistry copies sources into a new Registry.
func NewRegistry(sources map[string]string) *Registry {
	return &Registry{sources: maps.Clone(sources)}
}

// Lookup returns the source URL registered for key.
func (r *Registry) Lookup(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	u, ok := r.sources[key]
	return u, ok
}

// Keys returns the registered administration keys in sorted order.
func (r *Registry) Keys() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.sources))
}

// Len returns the number of registered administrations.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.sources)
}
