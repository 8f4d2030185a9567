package wire

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/canvasstream/canvas"
)

// The encoder is a collection of pure, stateless functions: each takes
// a destination byte span and the operation's parameters and returns
// the number of bytes written, or -1 if dst is too small to hold the
// encoded operation. Buffer exhaustion is the encoder's only failure
// mode, and -1 keeps it distinguishable from a legitimate zero-length
// write (there is none in this format, but the convention matches the
// varint readers' need-more-data/malformed signaling).

func putFloat32(dst []byte, v float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(v))
}

func colorSize() int { return 4 }

func putColor(dst []byte, c canvas.Color) {
	dst[0], dst[1], dst[2], dst[3] = c.R, c.G, c.B, c.A
}

// EncodeDrawPolygon writes a DrawPolygon operation for points (already
// in absolute coordinates; the encoder performs the delta/zigzag
// transform).
func EncodeDrawPolygon(dst []byte, points []Point) int {
	n := 1 + UvarintSize(uint32(len(points)))
	if len(points) > 0 {
		n += VarintSize(points[0].X) + VarintSize(points[0].Y)
		px, py := points[0].X, points[0].Y
		for _, p := range points[1:] {
			n += VarintSize(p.X-px) + VarintSize(p.Y-py)
			px, py = p.X, p.Y
		}
	}
	if len(dst) < n {
		return -1
	}
	off := 0
	dst[off] = byte(OpDrawPolygon)
	off++
	off += WriteUvarint(dst[off:], uint32(len(points)))
	if len(points) > 0 {
		off += WriteVarint(dst[off:], points[0].X)
		off += WriteVarint(dst[off:], points[0].Y)
		px, py := points[0].X, points[0].Y
		for _, p := range points[1:] {
			off += WriteVarint(dst[off:], p.X-px)
			off += WriteVarint(dst[off:], p.Y-py)
			px, py = p.X, p.Y
		}
	}
	return off
}

// EncodeDrawText writes a DrawText operation.
func EncodeDrawText(dst []byte, x, y int32, text string) int {
	n := 1 + VarintSize(x) + VarintSize(y) + UvarintSize(uint32(len(text))) + len(text)
	if len(dst) < n {
		return -1
	}
	off := 0
	dst[off] = byte(OpDrawText)
	off++
	off += WriteVarint(dst[off:], x)
	off += WriteVarint(dst[off:], y)
	off += WriteUvarint(dst[off:], uint32(len(text)))
	off += copy(dst[off:], text)
	return off
}

// EncodeDrawCircle writes a DrawCircle operation.
func EncodeDrawCircle(dst []byte, cx, cy int32, radius uint32) int {
	n := 1 + VarintSize(cx) + VarintSize(cy) + UvarintSize(radius)
	if len(dst) < n {
		return -1
	}
	off := 0
	dst[off] = byte(OpDrawCircle)
	off++
	off += WriteVarint(dst[off:], cx)
	off += WriteVarint(dst[off:], cy)
	off += WriteUvarint(dst[off:], radius)
	return off
}

// EncodeDrawRect writes a DrawRect operation.
func EncodeDrawRect(dst []byte, x, y int32, w, h uint32) int {
	n := 1 + VarintSize(x) + VarintSize(y) + UvarintSize(w) + UvarintSize(h)
	if len(dst) < n {
		return -1
	}
	off := 0
	dst[off] = byte(OpDrawRect)
	off++
	off += WriteVarint(dst[off:], x)
	off += WriteVarint(dst[off:], y)
	off += WriteUvarint(dst[off:], w)
	off += WriteUvarint(dst[off:], h)
	return off
}

// EncodeDrawLine writes a DrawLine operation.
func EncodeDrawLine(dst []byte, x1, y1, x2, y2 int32) int {
	n := 1 + VarintSize(x1) + VarintSize(y1) + VarintSize(x2) + VarintSize(y2)
	if len(dst) < n {
		return -1
	}
	off := 0
	dst[off] = byte(OpDrawLine)
	off++
	off += WriteVarint(dst[off:], x1)
	off += WriteVarint(dst[off:], y1)
	off += WriteVarint(dst[off:], x2)
	off += WriteVarint(dst[off:], y2)
	return off
}

func propertyPayloadSize(pv PropertyValue) int {
	switch pv.ID {
	case PropStroke, PropFill, PropFontColor:
		return colorSize()
	case PropThickness, PropFontSize:
		return UvarintSize(pv.Uint)
	case PropOffset:
		return VarintSize(pv.OffsetX) + VarintSize(pv.OffsetY)
	case PropRotation:
		return 4
	case PropScale, PropSkew:
		return 8
	case PropMatrix:
		return 24
	default:
		return 0
	}
}

func putPropertyPayload(dst []byte, pv PropertyValue) int {
	off := 0
	switch pv.ID {
	case PropStroke, PropFill, PropFontColor:
		putColor(dst, pv.Color)
		off = colorSize()
	case PropThickness, PropFontSize:
		off = WriteUvarint(dst, pv.Uint)
	case PropOffset:
		off = WriteVarint(dst, pv.OffsetX)
		off += WriteVarint(dst[off:], pv.OffsetY)
	case PropRotation:
		putFloat32(dst, pv.Rotation)
		off = 4
	case PropScale:
		putFloat32(dst, pv.ScaleX)
		putFloat32(dst[4:], pv.ScaleY)
		off = 8
	case PropSkew:
		putFloat32(dst, pv.SkewX)
		putFloat32(dst[4:], pv.SkewY)
		off = 8
	case PropMatrix:
		for i, v := range pv.Matrix {
			putFloat32(dst[i*4:], v)
		}
		off = 24
	}
	return off
}

// EncodeSetContext writes a SetContext operation carrying fields.
func EncodeSetContext(dst []byte, fields []PropertyValue) int {
	n := 1 + UvarintSize(uint32(len(fields)))
	for _, f := range fields {
		n += 1 + propertyPayloadSize(f)
	}
	if len(dst) < n {
		return -1
	}
	off := 0
	dst[off] = byte(OpSetContext)
	off++
	off += WriteUvarint(dst[off:], uint32(len(fields)))
	for _, f := range fields {
		dst[off] = byte(f.ID)
		off++
		off += putPropertyPayload(dst[off:], f)
	}
	return off
}

// EncodeSaveContext writes a SaveContext operation.
func EncodeSaveContext(dst []byte) int { return encodeBareOp(dst, OpSaveContext) }

// EncodeRestoreContext writes a RestoreContext operation.
func EncodeRestoreContext(dst []byte) int { return encodeBareOp(dst, OpRestoreContext) }

// EncodeResetContext writes a ResetContext operation.
func EncodeResetContext(dst []byte) int { return encodeBareOp(dst, OpResetContext) }

func encodeBareOp(dst []byte, op Opcode) int {
	if len(dst) < 1 {
		return -1
	}
	dst[0] = byte(op)
	return 1
}
