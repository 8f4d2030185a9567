package pool

import (
	"sync"
	"sync/atomic"
)

// LayerPool is an unbounded free list of fixed-dimension layer buffers
// of type T. It's deliberately a plain mutex-guarded slice rather than
// sync.Pool: sync.Pool may silently drop items under GC pressure and
// exposes no rent/return counters, and the stage needs both a
// deterministic free list (outstanding leases must always find their
// way back) and exact counters for diagnostics.
type LayerPool[T any] struct {
	mu       sync.Mutex
	free     []T
	newFn    func() T
	clearFn  func(T)
	disposed bool

	rented   atomic.Int64
	returned atomic.Int64
	created  atomic.Int64
}

// NewLayerPool builds a pool that creates new buffers with newFn and
// clears a buffer to transparent with clearFn before handing it out.
func NewLayerPool[T any](newFn func() T, clearFn func(T)) *LayerPool[T] {
	return &LayerPool[T]{newFn: newFn, clearFn: clearFn}
}

// Rent returns a Lease bound to this pool: a buffer, cleared to
// transparent, that returns itself to the free list on Dispose. layerID
// is accepted for parity with the rent(layer_id) signature but plays no
// role in which buffer is handed out — all buffers in a pool are
// interchangeable, fixed-dimension layer canvases.
func (p *LayerPool[T]) Rent(layerID uint8) *Lease[T] {
	_ = layerID
	p.mu.Lock()
	var v T
	n := len(p.free)
	if n > 0 {
		v = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		v = p.newFn()
		p.created.Add(1)
	}
	p.mu.Unlock()

	p.clearFn(v)
	p.rented.Add(1)
	return NewLease(v, p.release)
}

func (p *LayerPool[T]) release(v T) {
	p.returned.Add(1)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return
	}
	p.free = append(p.free, v)
}

// Dispose marks the pool disposed: queued buffers are dropped, and any
// outstanding lease, when it later returns its buffer, drops it instead
// of re-queueing.
func (p *LayerPool[T]) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disposed = true
	p.free = nil
}

// IsDisposed reports whether Dispose has been called.
func (p *LayerPool[T]) IsDisposed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disposed
}

// Stats reports cumulative rent/return/create counts, for diagnostics
// and tests.
type Stats struct {
	Rented   int64
	Returned int64
	Created  int64
}

// Stats returns a snapshot of the pool's cumulative counters.
func (p *LayerPool[T]) Stats() Stats {
	return Stats{
		Rented:   p.rented.Load(),
		Returned: p.returned.Load(),
		Created:  p.created.Load(),
	}
}
