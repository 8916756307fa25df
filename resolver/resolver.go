package resolver

import (
	"fmt"

	"github.com/ternpdf/tern/core"
)

// Source loads indirect objects by number.
type Source interface {
	Object(num int) (core.Object, error)
}

// Resolver resolves indirect references against a Source with cycle
// detection.
type Resolver struct {
	src      Source
	visited  map[int]bool
	depth    int
	maxDepth int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth overrides the default recursion limit of 100.
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) { r.maxDepth = depth }
}

// New creates a resolver reading from src.
func New(src Source, opts ...Option) *Resolver {
	r := &Resolver{
		src:      src,
		visited:  make(map[int]bool),
		maxDepth: 100,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve follows obj if it is an indirect reference and returns the
// referenced object. Non-references pass through unchanged. Nested
// references inside dicts and arrays are left alone.
func (r *Resolver) Resolve(obj core.Object) (core.Object, error) {
	return r.resolve(obj, false)
}

// ResolveDeep resolves obj and every reference nested inside it.
func (r *Resolver) ResolveDeep(obj core.Object) (core.Object, error) {
	return r.resolve(obj, true)
}

func (r *Resolver) resolve(obj core.Object, deep bool) (core.Object, error) {
	// Visited state is scoped to one top-level call so repeated
	// resolutions of the same object from different call sites work.
	if r.depth == 0 {
		r.visited = make(map[int]bool)
	}
	if r.depth >= r.maxDepth {
		return nil, fmt.Errorf("reference depth limit (%d) exceeded", r.maxDepth)
	}

	switch v := obj.(type) {
	case core.IndirectRef:
		if r.visited[v.Number] {
			return nil, fmt.Errorf("circular reference to object %d", v.Number)
		}
		r.visited[v.Number] = true
		defer delete(r.visited, v.Number)

		resolved, err := r.src.Object(v.Number)
		if err != nil {
			return nil, fmt.Errorf("resolving %d %d R: %w", v.Number, v.Generation, err)
		}
		r.depth++
		resolved, err = r.resolve(resolved, deep)
		r.depth--
		return resolved, err

	case core.Dict:
		if !deep {
			return v, nil
		}
		resolved := make(core.Dict, len(v))
		for key, value := range v {
			r.depth++
			rv, err := r.resolve(value, deep)
			r.depth--
			if err != nil {
				return nil, fmt.Errorf("resolving dict key %s: %w", key, err)
			}
			resolved[key] = rv
		}
		return resolved, nil

	case core.Array:
		if !deep {
			return v, nil
		}
		resolved := make(core.Array, len(v))
		for i, elem := range v {
			r.depth++
			re, err := r.resolve(elem, deep)
			r.depth--
			if err != nil {
				return nil, fmt.Errorf("resolving array element %d: %w", i, err)
			}
			resolved[i] = re
		}
		return resolved, nil

	case *core.Stream:
		if !deep {
			return v, nil
		}
		r.depth++
		rd, err := r.resolve(v.Dict, deep)
		r.depth--
		if err != nil {
			return nil, err
		}
		return &core.Stream{Dict: rd.(core.Dict), Data: v.Data}, nil

	default:
		return obj, nil
	}
}
