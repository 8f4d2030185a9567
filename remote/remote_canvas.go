package remote

import (
	"context"
	"encoding/binary"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gogpu/canvasstream/wire"
)

// RemoteCanvas is the per-connection producer of spec §4.4: application
// code draws into it through BeginFrame/Layer, and Flush assembles and
// sends one wire message per frame. Not safe for concurrent use by more
// than one writer goroutine at a time, except that Heartbeat's
// background goroutine and explicit Flush calls both serialize through
// mu, so an idle producer can run a Heartbeat safely alongside whatever
// goroutine calls BeginFrame/Flush when real content needs drawing.
type RemoteCanvas struct {
	mu      sync.Mutex
	conn    Conn
	frameID uint64
	layers  [256]*LayerHandle
	touched []uint8
	started bool
	closed  bool
}

// NewRemoteCanvas wraps conn (any *websocket.Conn, or a test double
// satisfying Conn) in a producer.
func NewRemoteCanvas(conn Conn) *RemoteCanvas {
	return &RemoteCanvas{conn: conn}
}

// BeginFrame increments the frame id, marks all layers untouched for
// the coming frame, and resets their scratch buffers and op counts.
// Every frame must begin with BeginFrame; calling any layer operation
// without one panics — spec leaves the choice of panic-or-coerce to
// the implementer, and a precondition violation here is a programming
// error the caller should fix, not silently paper over.
func (rc *RemoteCanvas) BeginFrame() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.frameID++
	rc.touched = rc.touched[:0]
	for _, h := range rc.layers {
		if h != nil {
			h.reset()
		}
	}
	rc.started = true
}

// Layer returns the handle for layer id, marking it touched for the
// current frame. Idempotent within a frame: calling Layer(id) more than
// once returns the same handle without duplicating its entry in the
// touched-layer order.
func (rc *RemoteCanvas) Layer(id uint8) *LayerHandle {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if !rc.started {
		panic(ErrNoBeginFrame)
	}
	h := rc.layers[id]
	if h == nil {
		h = newLayerHandle(id)
		rc.layers[id] = h
	}
	if !h.touched {
		h.touched = true
		rc.touched = append(rc.touched, id)
	}
	return h
}

// Flush assembles the current frame's message and sends it atomically
// over the transport, returning the bytes written. If the transport is
// already closed, it returns (nil, nil) without writing, per spec. ctx
// governs the write: a deadline on ctx becomes the connection's write
// deadline, and an already-canceled ctx short-circuits before writing.
func (rc *RemoteCanvas) Flush(ctx context.Context) ([]byte, error) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.closed {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	msg := rc.assembleLocked()

	if deadline, ok := ctx.Deadline(); ok {
		if err := rc.conn.SetWriteDeadline(deadline); err != nil {
			return nil, err
		}
	}
	if err := rc.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
		rc.closed = true
		return nil, err
	}
	return msg, nil
}

func (rc *RemoteCanvas) assembleLocked() []byte {
	header := make([]byte, wire.HeaderSize)
	binary.LittleEndian.PutUint64(header, rc.frameID)
	header[8] = byte(len(rc.touched))

	msg := header
	for _, id := range rc.touched {
		h := rc.layers[id]
		msg = append(msg, h.id, byte(h.frameType))
		if h.frameType == wire.Master {
			countBuf := make([]byte, 10)
			n := wire.WriteUvarint(countBuf, h.opCount)
			msg = append(msg, countBuf[:n]...)
			msg = append(msg, h.ops...)
		}
	}
	msg = append(msg, wire.EndMarker[0], wire.EndMarker[1])
	return msg
}

// Heartbeat runs a background goroutine that calls BeginFrame and
// Flush (with nothing drawn, i.e. a zero-layer message) every interval,
// until ctx is canceled. It is opt-in: a caller with real content to
// send on a tighter cadence should not also run a Heartbeat, since
// every BeginFrame discards layer state not re-drawn before the next
// Flush. See SPEC_FULL.md's supplemented idle/heartbeat feature.
func (rc *RemoteCanvas) Heartbeat(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rc.BeginFrame()
				if _, err := rc.Flush(ctx); err != nil {
					return
				}
			}
		}
	}()
}

// Close closes the underlying transport. Subsequent Flush calls return
// (nil, nil) without writing.
func (rc *RemoteCanvas) Close() error {
	rc.mu.Lock()
	rc.closed = true
	rc.mu.Unlock()
	return rc.conn.Close()
}
