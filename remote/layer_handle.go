package remote

import (
	"github.com/gogpu/canvasstream/canvas"
	"github.com/gogpu/canvasstream/wire"
)

// LayerHandle is the per-layer producer API of spec §4.4: every method
// appends one encoded operation to the layer's scratch buffer and
// increments its op count. A handle defaults to Master at BeginFrame;
// calling Remain or Clear switches its frame type. Callers must not mix
// Remain/Clear with draw or context calls in the same frame — this
// mirrors spec's "implementations must not send operations with a
// Remain or Clear layer block" by simply not encoding anything once the
// layer has switched away from Master.
type LayerHandle struct {
	id        uint8
	frameType wire.FrameType
	ops       []byte
	opCount   uint32
	touched   bool
}

func newLayerHandle(id uint8) *LayerHandle {
	return &LayerHandle{id: id, frameType: wire.Master}
}

// reset returns the handle to its BeginFrame state: Master, empty
// scratch buffer, zero op count. The underlying array is kept so
// repeated frames reuse the same allocation.
func (lh *LayerHandle) reset() {
	lh.frameType = wire.Master
	lh.ops = lh.ops[:0]
	lh.opCount = 0
	lh.touched = false
}

// Master switches the layer to Master mode (the default). Calling it
// mid-frame after draw operations have already been recorded discards
// them, since a Master layer block is redrawn from scratch.
func (lh *LayerHandle) Master() {
	lh.frameType = wire.Master
	lh.ops = lh.ops[:0]
	lh.opCount = 0
}

// Remain marks the layer as carrying forward the previously published
// buffer unchanged. No operations may be appended after this call.
func (lh *LayerHandle) Remain() {
	lh.frameType = wire.Remain
	lh.ops = lh.ops[:0]
	lh.opCount = 0
}

// Clear marks the layer to be erased to transparent. No operations may
// be appended after this call.
func (lh *LayerHandle) Clear() {
	lh.frameType = wire.Clear
	lh.ops = lh.ops[:0]
	lh.opCount = 0
}

func (lh *LayerHandle) appendOp(encode func(dst []byte) int) {
	if lh.frameType != wire.Master {
		return
	}
	for {
		free := lh.ops[len(lh.ops):cap(lh.ops)]
		if n := encode(free); n >= 0 {
			lh.ops = lh.ops[:len(lh.ops)+n]
			lh.opCount++
			return
		}
		grown := make([]byte, len(lh.ops), growCap(cap(lh.ops)))
		copy(grown, lh.ops)
		lh.ops = grown
	}
}

func growCap(c int) int {
	if c == 0 {
		return 64
	}
	return c * 2
}

// SetStroke sets the stroke color.
func (lh *LayerHandle) SetStroke(c canvas.Color) {
	lh.appendOp(func(dst []byte) int {
		return wire.EncodeSetContext(dst, []wire.PropertyValue{{ID: wire.PropStroke, Color: c}})
	})
}

// SetFill sets the fill color.
func (lh *LayerHandle) SetFill(c canvas.Color) {
	lh.appendOp(func(dst []byte) int {
		return wire.EncodeSetContext(dst, []wire.PropertyValue{{ID: wire.PropFill, Color: c}})
	})
}

// SetThickness sets the stroke thickness in quantized pixels.
func (lh *LayerHandle) SetThickness(px uint32) {
	lh.appendOp(func(dst []byte) int {
		return wire.EncodeSetContext(dst, []wire.PropertyValue{{ID: wire.PropThickness, Uint: px}})
	})
}

// SetFontSize sets the font size in quantized pixels.
func (lh *LayerHandle) SetFontSize(px uint32) {
	lh.appendOp(func(dst []byte) int {
		return wire.EncodeSetContext(dst, []wire.PropertyValue{{ID: wire.PropFontSize, Uint: px}})
	})
}

// SetFontColor sets the text color.
func (lh *LayerHandle) SetFontColor(c canvas.Color) {
	lh.appendOp(func(dst []byte) int {
		return wire.EncodeSetContext(dst, []wire.PropertyValue{{ID: wire.PropFontColor, Color: c}})
	})
}

// Translate sets the context's offset component.
func (lh *LayerHandle) Translate(x, y int32) {
	lh.appendOp(func(dst []byte) int {
		return wire.EncodeSetContext(dst, []wire.PropertyValue{{ID: wire.PropOffset, OffsetX: x, OffsetY: y}})
	})
}

// Rotate sets the context's rotation component, in degrees.
func (lh *LayerHandle) Rotate(degrees float32) {
	lh.appendOp(func(dst []byte) int {
		return wire.EncodeSetContext(dst, []wire.PropertyValue{{ID: wire.PropRotation, Rotation: degrees}})
	})
}

// Scale sets the context's scale component.
func (lh *LayerHandle) Scale(sx, sy float32) {
	lh.appendOp(func(dst []byte) int {
		return wire.EncodeSetContext(dst, []wire.PropertyValue{{ID: wire.PropScale, ScaleX: sx, ScaleY: sy}})
	})
}

// Skew sets the context's skew component.
func (lh *LayerHandle) Skew(sx, sy float32) {
	lh.appendOp(func(dst []byte) int {
		return wire.EncodeSetContext(dst, []wire.PropertyValue{{ID: wire.PropSkew, SkewX: sx, SkewY: sy}})
	})
}

// SetMatrix sets an explicit transform, taking precedence over the
// component fields until one of them is set again.
func (lh *LayerHandle) SetMatrix(scaleX, skewX, transX, skewY, scaleY, transY float32) {
	lh.appendOp(func(dst []byte) int {
		return wire.EncodeSetContext(dst, []wire.PropertyValue{{
			ID:     wire.PropMatrix,
			Matrix: [6]float32{scaleX, skewX, transX, skewY, scaleY, transY},
		}})
	})
}

// Save pushes a copy of the current context.
func (lh *LayerHandle) Save() {
	lh.appendOp(wire.EncodeSaveContext)
}

// Restore pops and replaces the current context.
func (lh *LayerHandle) Restore() {
	lh.appendOp(wire.EncodeRestoreContext)
}

// ResetContext resets the layer's context to its default, discarding
// the save stack.
func (lh *LayerHandle) ResetContext() {
	lh.appendOp(wire.EncodeResetContext)
}

// DrawPolygon draws an open polyline through points, in absolute
// coordinates; the encoder performs delta/zigzag compression.
func (lh *LayerHandle) DrawPolygon(points []wire.Point) {
	lh.appendOp(func(dst []byte) int {
		return wire.EncodeDrawPolygon(dst, points)
	})
}

// DrawText draws text with its baseline origin at (x, y).
func (lh *LayerHandle) DrawText(x, y int32, text string) {
	lh.appendOp(func(dst []byte) int {
		return wire.EncodeDrawText(dst, x, y, text)
	})
}

// DrawCircle draws a circle centered at (cx, cy).
func (lh *LayerHandle) DrawCircle(cx, cy int32, radius uint32) {
	lh.appendOp(func(dst []byte) int {
		return wire.EncodeDrawCircle(dst, cx, cy, radius)
	})
}

// DrawRectangle draws a rectangle with its top-left corner at (x, y).
func (lh *LayerHandle) DrawRectangle(x, y int32, w, h uint32) {
	lh.appendOp(func(dst []byte) int {
		return wire.EncodeDrawRect(dst, x, y, w, h)
	})
}

// DrawLine draws a line from (x1, y1) to (x2, y2).
func (lh *LayerHandle) DrawLine(x1, y1, x2, y2 int32) {
	lh.appendOp(func(dst []byte) int {
		return wire.EncodeDrawLine(dst, x1, y1, x2, y2)
	})
}
