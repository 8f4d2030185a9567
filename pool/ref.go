package pool

import "sync/atomic"

// Ref is a reference-counted cell around a Lease. It is constructed
// with an initial count of 1, representing the caller's own reference.
type Ref[T any] struct {
	lease *Lease[T]
	count atomic.Int32
}

// NewRef wraps lease in a Ref with an initial count of 1.
func NewRef[T any](lease *Lease[T]) *Ref[T] {
	r := &Ref[T]{lease: lease}
	r.count.Store(1)
	return r
}

// Value returns the leased resource. Callers must hold a live
// reference (one they haven't disposed) when calling this.
func (r *Ref[T]) Value() T {
	return r.lease.Value()
}

// TryCopy atomically increments the reference count and returns a new
// reference to the same underlying lease, or ok=false if the cell has
// already dropped to zero and disposed. It uses compare-and-swap on the
// observed count rather than a plain increment so a reference that has
// already reached zero can never be resurrected by a racing copier.
func (r *Ref[T]) TryCopy() (ref *Ref[T], ok bool) {
	for {
		n := r.count.Load()
		if n <= 0 {
			return nil, false
		}
		if r.count.CompareAndSwap(n, n+1) {
			return r, true
		}
	}
}

// Dispose decrements the reference count. When the count transitions to
// zero, it disposes the underlying Lease, returning the resource to its
// pool. Safe to call exactly once per reference obtained from NewRef or
// TryCopy; calling it more than once per held reference would
// under-count and risks freeing the resource while still in use, so
// callers must track which references they have disposed.
func (r *Ref[T]) Dispose() {
	if r.count.Add(-1) == 0 {
		r.lease.Dispose()
	}
}
