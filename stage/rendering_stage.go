package stage

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/canvasstream/pool"
)

const maxLayers = 256

// RenderingStage is the consumer-side orchestrator a Decoder drives: it
// owns the layer buffer pool and the published frame snapshot, and
// exposes the four Stage operations (OnFrameStart/Clear/Remain/OnFrameEnd)
// plus CanvasFor, the per-layer drawing-interface accessor spec calls
// canvas_for. Width and height are fixed at construction; there is no
// in-band resize.
type RenderingStage struct {
	width, height int
	pool          *pool.LayerPool[Canvas]

	// mu guards published. It is held only long enough
	// to swap or copy the published snapshot — never across a pool rent
	// or a draw call — matching the "short spin lock" the decoder's
	// concurrency model calls for. sync.Mutex is Go's idiomatic
	// approximation of a short-held spinlock: uncontended locks are
	// cheap and the runtime parks goroutines only under real contention.
	// lastFrameID, haveLastID and working are not guarded by mu; only
	// the goroutine running the Decoder reads or writes them.
	mu          sync.Mutex
	published   *pool.RefArray[Canvas]
	lastFrameID uint64
	haveLastID  bool

	// working accumulates the current message's layer set between
	// OnFrameStart and OnFrameEnd/AbortFrame.
	working [maxLayers]*pool.Ref[Canvas]

	publishedCount atomic.Int64
	dropped        atomic.Int64
}

// NewRenderingStage constructs a stage with a pool of buffers built by
// newCanvas and cleared by clearCanvas. width and height are advisory
// to callers composing the output image; the stage itself never
// allocates pixels directly.
func NewRenderingStage(width, height int, newCanvas func() Canvas, clearCanvas func(Canvas)) *RenderingStage {
	return &RenderingStage{
		width:  width,
		height: height,
		pool:   pool.NewLayerPool(newCanvas, clearCanvas),
	}
}

// Width returns the fixed frame width.
func (s *RenderingStage) Width() int { return s.width }

// Height returns the fixed frame height.
func (s *RenderingStage) Height() int { return s.height }

// OnFrameStart validates frameID is strictly greater than the last
// successfully published frame id and resets the working set.
func (s *RenderingStage) OnFrameStart(frameID uint64) error {
	if s.haveLastID && frameID <= s.lastFrameID {
		return ErrMalformedMessage
	}
	for i := range s.working {
		s.working[i] = nil
	}
	return nil
}

// AbortFrame disposes every lease rented into the working set so far
// and clears it, without touching the published snapshot. Called when
// a message turns out to be malformed partway through.
func (s *RenderingStage) AbortFrame() {
	for i, ref := range s.working {
		if ref != nil {
			ref.Dispose()
			s.working[i] = nil
		}
	}
}

// Clear rents a fresh, transparent buffer for layerID and installs it
// in the working set, for both Master and Clear frame types. It returns
// ErrPoolDisposed instead of renting once Dispose has been called.
func (s *RenderingStage) Clear(layerID uint8) error {
	if s.pool.IsDisposed() {
		return ErrPoolDisposed
	}
	lease := s.pool.Rent(layerID)
	s.working[layerID] = pool.NewRef(lease)
	return nil
}

// Remain copies the layer's reference from the published snapshot into
// the working set, incrementing its refcount. It fails with
// ErrRemainWithoutPredecessor if no such layer exists in the published
// snapshot, or ErrPoolDisposed once Dispose has been called.
func (s *RenderingStage) Remain(layerID uint8) error {
	if s.pool.IsDisposed() {
		return ErrPoolDisposed
	}
	s.mu.Lock()
	published := s.published
	s.mu.Unlock()

	slot := published.Get(int(layerID))
	if slot == nil {
		return ErrRemainWithoutPredecessor
	}
	ref, ok := slot.TryCopy()
	if !ok {
		return ErrRemainWithoutPredecessor
	}
	s.working[layerID] = ref
	return nil
}

// CanvasFor returns the drawing interface for layerID's working buffer.
// It is only valid to call between Clear(layerID) and OnFrameEnd.
func (s *RenderingStage) CanvasFor(layerID uint8) Canvas {
	ref := s.working[layerID]
	if ref == nil {
		return nil
	}
	return ref.Value()
}

// OnFrameEnd atomically publishes the working set as the new snapshot,
// releasing the stage's hold on the previous one, and records frameID
// as the last successfully decoded frame.
func (s *RenderingStage) OnFrameEnd() {
	slots := make([]*pool.Ref[Canvas], maxLayers)
	copy(slots, s.working[:])
	next := pool.NewRefArray(slots)
	for i := range s.working {
		s.working[i] = nil
	}

	s.mu.Lock()
	prev := s.published
	s.published = next
	s.mu.Unlock()
	s.publishedCount.Add(1)

	prev.Dispose()
}

// MarkFrameAccepted records frameID as the last successfully decoded
// frame id. Decoder calls this once a message fully parses, after
// OnFrameEnd, keeping the strictly-increasing check in OnFrameStart
// independent of publish timing.
func (s *RenderingStage) MarkFrameAccepted(frameID uint64) {
	s.lastFrameID = frameID
	s.haveLastID = true
}

// TryCopyFrame returns a new reference to the currently published
// snapshot, or ok=false if nothing has been published yet.
func (s *RenderingStage) TryCopyFrame() (snapshot *pool.RefArray[Canvas], ok bool) {
	s.mu.Lock()
	published := s.published
	s.mu.Unlock()

	if published == nil {
		return nil, false
	}
	cp, copied := published.TryCopy()
	if !copied {
		s.dropped.Add(1)
		return nil, false
	}
	return cp, true
}

// WarmUp rents and immediately returns n buffers, so the pool already
// has n free buffers on hand before the first real frame arrives.
func (s *RenderingStage) WarmUp(n int) {
	leases := make([]*pool.Lease[Canvas], n)
	for i := range leases {
		leases[i] = s.pool.Rent(0)
	}
	for _, lease := range leases {
		lease.Dispose()
	}
}

// Dispose shuts down the stage's buffer pool: queued free buffers are
// dropped, and any lease still outstanding destroys its buffer instead
// of requeueing it when it is later returned. Clear and Remain return
// ErrPoolDisposed for every layer operation attempted afterward.
func (s *RenderingStage) Dispose() {
	s.pool.Dispose()
}

// Stats reports pool and publish counters for diagnostics and tests.
type Stats struct {
	Pool      pool.Stats
	Published int64
	Dropped   int64
}

// Stats returns a snapshot of the stage's cumulative counters.
func (s *RenderingStage) Stats() Stats {
	return Stats{
		Pool:      s.pool.Stats(),
		Published: s.publishedCount.Load(),
		Dropped:   s.dropped.Load(),
	}
}
