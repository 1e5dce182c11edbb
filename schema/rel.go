package schema

import (
	"context"
	"errors"
	"fmt"
)

// ErrRelUnbound is returned by Get on a relation that was never attached to
// a session, e.g. on a zero-value entity.
var ErrRelUnbound = errors.New("schema: relation not bound to a session")

// Rel is an explicitly tagged lazy relation: either Unloaded (a resolver is
// held, no value yet) or Loaded. Loaded is an observable property of the
// returned entity, not a side effect of query shape: an eager fetch join
// yields Loaded()==true, a plain query yields false until Get resolves it.
type Rel[T any] struct {
	loaded  bool
	value   T
	resolve func(ctx context.Context) (any, error)
}

// LoadedRel returns an already-materialized relation.
func LoadedRel[T any](v T) Rel[T] {
	return Rel[T]{loaded: true, value: v}
}

// Loaded reports whether the related entity is materialized.
func (r *Rel[T]) Loaded() bool { return r.loaded }

// Get returns the related entity, resolving it through the owning session on
// first access.
func (r *Rel[T]) Get(ctx context.Context) (T, error) {
	if r.loaded {
		return r.value, nil
	}
	var zero T
	if r.resolve == nil {
		return zero, ErrRelUnbound
	}
	v, err := r.resolve(ctx)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("schema: relation resolved to %T, want %T", v, zero)
	}
	r.value = typed
	r.loaded = true
	return typed, nil
}

// Set marks the relation loaded with v.
func (r *Rel[T]) Set(v T) {
	r.value = v
	r.loaded = true
}

// RelBinder is how the execution adapter wires resolvers and eager values
// into Rel fields without knowing the concrete related type.
type RelBinder interface {
	BindResolver(fn func(ctx context.Context) (any, error))
	SetLoadedAny(v any) error
	Loaded() bool
}

func (r *Rel[T]) BindResolver(fn func(ctx context.Context) (any, error)) {
	r.resolve = fn
	r.loaded = false
}

func (r *Rel[T]) SetLoadedAny(v any) error {
	typed, ok := v.(T)
	if !ok {
		var zero T
		return fmt.Errorf("schema: relation value is %T, want %T", v, zero)
	}
	r.Set(typed)
	return nil
}
