// Package pool implements the reference-counted frame snapshot handoff
// between the decoder's working set and concurrently sampling
// renderers: Lease wraps a pooled resource, Ref adds atomic refcounting
// around a Lease, RefArray batches that over a whole per-layer frame,
// and LayerPool is the free list of layer buffers leases are rented
// from.
package pool

import "sync"

// Lease wraps a pooled value of type T and the callback that returns it
// to its pool. Dispose is idempotent: only the first call invokes the
// callback, guarded by a sync.Once so concurrent disposers never race
// on double-returning the resource.
type Lease[T any] struct {
	value    T
	once     sync.Once
	returnFn func(T)
}

// NewLease wraps value with the given return-to-pool callback.
func NewLease[T any](value T, returnToPool func(T)) *Lease[T] {
	return &Lease[T]{value: value, returnFn: returnToPool}
}

// Value returns the wrapped resource. Callers must not use it after
// Dispose.
func (l *Lease[T]) Value() T {
	return l.value
}

// Dispose returns the resource to its pool. Safe to call more than
// once; only the first call has any effect.
func (l *Lease[T]) Dispose() {
	l.once.Do(func() {
		if l.returnFn != nil {
			l.returnFn(l.value)
		}
	})
}
