// Package registry holds the numbered list of operations a session builds.
package registry

import (
	"github.com/sambeau/setcalc/pkg/setcalc/errors"
	"github.com/sambeau/setcalc/pkg/setcalc/operation"
)

const (
	MinLimit     = 3
	MaxLimit     = 100
	DefaultLimit = 3

	// Protected is the number of built-in operations at the head of the
	// list. They are created with the registry and cannot be deleted.
	Protected = 3
)

// Registry is a bounded list of operations addressed by index.
type Registry struct {
	ops   []*operation.Node
	limit int
}

// New returns a registry holding the built-in union, intersection and
// difference of two inputs.
func New(limit int) (*Registry, error) {
	if err := CheckLimit(limit); err != nil {
		return nil, err
	}
	return &Registry{ops: defaults(), limit: limit}, nil
}

func defaults() []*operation.Node {
	builtin := []operation.Kind{operation.Union, operation.Intersection, operation.Difference}
	ops := make([]*operation.Node, 0, len(builtin))
	for _, k := range builtin {
		ops = append(ops, operation.NewComposite(k, operation.NewIdentity(), operation.NewIdentity()))
	}
	return ops
}

// CheckLimit fails with RangeError unless limit is within [MinLimit, MaxLimit].
func CheckLimit(limit int) error {
	if limit < MinLimit || limit > MaxLimit {
		return errors.New(errors.RangeError, map[string]any{"Min": MinLimit, "Max": MaxLimit, "Value": limit})
	}
	return nil
}

// Size returns the number of operations.
func (r *Registry) Size() int { return len(r.ops) }

// Limit returns the capacity.
func (r *Registry) Limit() int { return r.limit }

// Full reports whether Append would fail.
func (r *Registry) Full() bool { return len(r.ops) >= r.limit }

// CapacityError returns the error Append fails with on a full registry.
func (r *Registry) CapacityError() error {
	return errors.New(errors.CapacityExceeded, map[string]any{"Limit": r.limit})
}

// Append adds n and returns its index.
func (r *Registry) Append(n *operation.Node) (int, error) {
	if r.Full() {
		return -1, r.CapacityError()
	}
	r.ops = append(r.ops, n)
	return len(r.ops) - 1, nil
}

// Get returns the operation at index i.
func (r *Registry) Get(i int) (*operation.Node, error) {
	if err := r.checkIndex(i); err != nil {
		return nil, err
	}
	return r.ops[i], nil
}

// Delete removes the operation at index i and shifts later ones down.
// Composites that use the removed node keep it.
func (r *Registry) Delete(i int) error {
	if err := r.checkIndex(i); err != nil {
		return err
	}
	if i < Protected {
		return errors.New(errors.ProtectedEntry, map[string]any{"Index": i})
	}
	copy(r.ops[i:], r.ops[i+1:])
	r.ops[len(r.ops)-1] = nil
	r.ops = r.ops[:len(r.ops)-1]
	return nil
}

// SetLimit changes the capacity. When limit is below the current size,
// confirm decides whether the tail past limit is dropped; on false or error
// nothing changes. SetLimit reports whether the limit was applied.
func (r *Registry) SetLimit(limit int, confirm func() (bool, error)) (bool, error) {
	if err := CheckLimit(limit); err != nil {
		return false, err
	}
	if limit < len(r.ops) {
		ok, err := confirm()
		if err != nil || !ok {
			return false, err
		}
		clear(r.ops[limit:])
		r.ops = r.ops[:limit]
	}
	r.limit = limit
	return true, nil
}

// Each calls fn for every operation in index order.
func (r *Registry) Each(fn func(i int, n *operation.Node)) {
	for i, n := range r.ops {
		fn(i, n)
	}
}

func (r *Registry) checkIndex(i int) error {
	if i < 0 || i >= len(r.ops) {
		return errors.New(errors.IndexOutOfRange, map[string]any{"Index": i, "Last": len(r.ops) - 1})
	}
	return nil
}
