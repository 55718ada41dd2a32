package sink

import (
	"fmt"

	"go.uber.org/multierr"
)

// DefaultCapacity is the number of sinks a Registry holds when no
// capacity is given.
const DefaultCapacity = 16

// Registry is an ordered, bounded collection of handles. It performs no
// locking; the owning logger serializes access with its engine lock.
type Registry struct {
	handles  []*Handle
	capacity int
}

// NewRegistry creates an empty registry holding at most capacity handles.
// A capacity <= 0 means DefaultCapacity.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{
		handles:  make([]*Handle, 0, capacity),
		capacity: capacity,
	}
}

// Add appends h and records owner as its back-reference. On error the
// registry and the handle are left unchanged.
func (r *Registry) Add(h *Handle, owner string) error {
	if h == nil || h.sink == nil {
		return ErrNilHandle
	}
	if h.attached {
		return fmt.Errorf("%w to %q", ErrAlreadyAttached, h.owner)
	}
	if len(r.handles) >= r.capacity {
		return fmt.Errorf("%w: capacity %d", ErrRegistryFull, r.capacity)
	}
	h.owner = owner
	h.attached = true
	r.handles = append(r.handles, h)
	return nil
}

// Len returns the number of registered handles.
func (r *Registry) Len() int {
	return len(r.handles)
}

// Cap returns the registry capacity.
func (r *Registry) Cap() int {
	return r.capacity
}

// Handles returns the handles in registration order. The slice is shared
// with the registry and must not be modified.
func (r *Registry) Handles() []*Handle {
	return r.handles
}

// Flush flushes every sink implementing Flusher, in registration order.
func (r *Registry) Flush() error {
	var err error
	for _, h := range r.handles {
		err = multierr.Append(err, h.flush())
	}
	return err
}

// Close tears down every sink exactly once, in registration order, and
// returns all teardown errors combined.
func (r *Registry) Close() error {
	var err error
	for _, h := range r.handles {
		err = multierr.Append(err, h.close())
	}
	return err
}
