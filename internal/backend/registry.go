package backend

import (
	"fmt"
	"strings"
)

// Registry holds backends in registration order.
type Registry struct {
	order  []Backend
	byName map[string]Backend
}

// NewRegistry registers bs in the given order. Duplicate names panic.
func NewRegistry(bs ...Backend) *Registry {
	r := &Registry{byName: make(map[string]Backend, len(bs))}
	for _, b := range bs {
		if _, dup := r.byName[b.Name()]; dup {
			panic(fmt.Sprintf("backend %q registered twice", b.Name()))
		}
		r.order = append(r.order, b)
		r.byName[b.Name()] = b
	}
	return r
}

// All returns every backend in registration order.
func (r *Registry) All() []Backend {
	return append([]Backend(nil), r.order...)
}

// Lookup returns the backend called name.
func (r *Registry) Lookup(name string) (Backend, bool) {
	b, ok := r.byName[name]
	return b, ok
}

// Select resolves names, or returns all backends when names is empty.
func (r *Registry) Select(names []string) ([]Backend, error) {
	if len(names) == 0 {
		return r.All(), nil
	}
	out := make([]Backend, 0, len(names))
	for _, n := range names {
		b, ok := r.Lookup(n)
		if !ok {
			return nil, fmt.Errorf("unknown backend %q (known: %s)", n, strings.Join(r.Names(), ", "))
		}
		out = append(out, b)
	}
	return out, nil
}

// Names lists backend names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	for i, b := range r.order {
		names[i] = b.Name()
	}
	return names
}
