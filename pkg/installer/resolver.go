package installer

import (
	"context"
	"fmt"
	"slices"

	"github.com/loomui/loom/pkg/registry"
)

// Fetcher retrieves one component descriptor by id.
// *registry.Client is the standard implementation; tests substitute an
// in-memory map.
type Fetcher interface {
	Component(ctx context.Context, id string, refresh bool) (*registry.Component, error)
}

// Resolver computes the closure of components reachable from a requested
// set via registry-dependency edges. It holds no state between calls;
// every Resolve returns a fresh list.
type Resolver struct {
	fetcher Fetcher
	refresh bool
}

// NewResolver creates a resolver over the given fetcher. If refresh is
// true, persistent caches are bypassed on every fetch.
func NewResolver(fetcher Fetcher, refresh bool) *Resolver {
	return &Resolver{fetcher: fetcher, refresh: refresh}
}

// Resolve expands ids into the full dependency closure, breadth-first.
//
// The returned order is the order components first entered the resolved
// set: requested ids first (input order preserved), then dependencies in
// discovery order. Each component appears exactly once; the resolved map
// doubles as the cycle guard, so diamonds and true cycles converge
// instead of looping.
//
// An explicit FIFO queue is used rather than recursion to keep deep
// dependency chains off the call stack.
//
// Resolution aborts on the first identifier the registry cannot resolve;
// no partial closure is returned.
func (r *Resolver) Resolve(ctx context.Context, ids []string) ([]*registry.Component, error) {
	queue := slices.Clone(ids)
	resolved := make(map[string]*registry.Component, len(ids))
	var order []*registry.Component

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, done := resolved[id]; done {
			continue
		}

		comp, err := r.fetcher.Component(ctx, id, r.refresh)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", id, err)
		}
		resolved[id] = comp
		order = append(order, comp)

		for _, dep := range comp.RegistryDependencies {
			if _, done := resolved[dep]; !done {
				queue = append(queue, dep)
			}
		}
	}
	return order, nil
}
