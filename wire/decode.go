package wire

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/canvasstream/canvas"
)

// DecodeOp reads a single operation from the front of buf, matching the
// opcode table of the format. It returns the decoded op and the number
// of bytes consumed. n == 0 means buf does not yet hold a complete
// operation (need more data); n == -1 means buf's lead byte is not a
// recognized opcode, or a nested read reported overflow (malformed).
func DecodeOp(buf []byte) (op Op, n int) {
	if len(buf) < 1 {
		return nil, 0
	}
	code := Opcode(buf[0])
	switch code {
	case OpDrawPolygon:
		return decodeDrawPolygon(buf)
	case OpDrawText:
		return decodeDrawText(buf)
	case OpDrawCircle:
		return decodeDrawCircle(buf)
	case OpDrawRect:
		return decodeDrawRect(buf)
	case OpDrawLine:
		return decodeDrawLine(buf)
	case OpSetContext:
		return decodeSetContext(buf)
	case OpSaveContext:
		return SaveContextOp{}, 1
	case OpRestoreContext:
		return RestoreContextOp{}, 1
	case OpResetContext:
		return ResetContextOp{}, 1
	default:
		return nil, -1
	}
}

func decodeDrawPolygon(buf []byte) (Op, int) {
	pos := 1
	count, n := ReadUvarint(buf[pos:])
	if n <= 0 {
		return nil, n
	}
	pos += n

	points := make([]Point, 0, count)
	var px, py int32
	for i := uint32(0); i < count; i++ {
		if i == 0 {
			x, n1 := ReadVarint(buf[pos:])
			if n1 <= 0 {
				return nil, n1
			}
			pos += n1
			y, n2 := ReadVarint(buf[pos:])
			if n2 <= 0 {
				return nil, n2
			}
			pos += n2
			px, py = x, y
		} else {
			dx, n1 := ReadVarint(buf[pos:])
			if n1 <= 0 {
				return nil, n1
			}
			pos += n1
			dy, n2 := ReadVarint(buf[pos:])
			if n2 <= 0 {
				return nil, n2
			}
			pos += n2
			px, py = px+dx, py+dy
		}
		points = append(points, Point{X: px, Y: py})
	}
	return DrawPolygonOp{Points: points}, pos
}

func decodeDrawText(buf []byte) (Op, int) {
	pos := 1
	x, n1 := ReadVarint(buf[pos:])
	if n1 <= 0 {
		return nil, n1
	}
	pos += n1
	y, n2 := ReadVarint(buf[pos:])
	if n2 <= 0 {
		return nil, n2
	}
	pos += n2
	length, n3 := ReadUvarint(buf[pos:])
	if n3 <= 0 {
		return nil, n3
	}
	pos += n3
	if uint32(len(buf)-pos) < length {
		return nil, 0
	}
	text := string(buf[pos : pos+int(length)])
	pos += int(length)
	return DrawTextOp{X: x, Y: y, Text: text}, pos
}

func decodeDrawCircle(buf []byte) (Op, int) {
	pos := 1
	cx, n1 := ReadVarint(buf[pos:])
	if n1 <= 0 {
		return nil, n1
	}
	pos += n1
	cy, n2 := ReadVarint(buf[pos:])
	if n2 <= 0 {
		return nil, n2
	}
	pos += n2
	radius, n3 := ReadUvarint(buf[pos:])
	if n3 <= 0 {
		return nil, n3
	}
	pos += n3
	return DrawCircleOp{CX: cx, CY: cy, Radius: radius}, pos
}

func decodeDrawRect(buf []byte) (Op, int) {
	pos := 1
	x, n1 := ReadVarint(buf[pos:])
	if n1 <= 0 {
		return nil, n1
	}
	pos += n1
	y, n2 := ReadVarint(buf[pos:])
	if n2 <= 0 {
		return nil, n2
	}
	pos += n2
	w, n3 := ReadUvarint(buf[pos:])
	if n3 <= 0 {
		return nil, n3
	}
	pos += n3
	h, n4 := ReadUvarint(buf[pos:])
	if n4 <= 0 {
		return nil, n4
	}
	pos += n4
	return DrawRectOp{X: x, Y: y, W: w, H: h}, pos
}

func decodeDrawLine(buf []byte) (Op, int) {
	pos := 1
	var coords [4]int32
	for i := range coords {
		v, n := ReadVarint(buf[pos:])
		if n <= 0 {
			return nil, n
		}
		coords[i] = v
		pos += n
	}
	return DrawLineOp{X1: coords[0], Y1: coords[1], X2: coords[2], Y2: coords[3]}, pos
}

func getFloat32(buf []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf))
}

func decodeSetContext(buf []byte) (Op, int) {
	pos := 1
	fieldCount, n := ReadUvarint(buf[pos:])
	if n <= 0 {
		return nil, n
	}
	pos += n

	fields := make([]PropertyValue, 0, fieldCount)
	for i := uint32(0); i < fieldCount; i++ {
		if pos >= len(buf) {
			return nil, 0
		}
		id := PropertyID(buf[pos])
		pos++
		pv := PropertyValue{ID: id}
		switch id {
		case PropStroke, PropFill, PropFontColor:
			if len(buf)-pos < 4 {
				return nil, 0
			}
			c := canvas.Color{R: buf[pos], G: buf[pos+1], B: buf[pos+2], A: buf[pos+3]}
			pv.Color = c
			pos += 4
		case PropThickness, PropFontSize:
			v, n := ReadUvarint(buf[pos:])
			if n <= 0 {
				return nil, n
			}
			pv.Uint = v
			pos += n
		case PropOffset:
			x, n1 := ReadVarint(buf[pos:])
			if n1 <= 0 {
				return nil, n1
			}
			pos += n1
			y, n2 := ReadVarint(buf[pos:])
			if n2 <= 0 {
				return nil, n2
			}
			pos += n2
			pv.OffsetX, pv.OffsetY = x, y
		case PropRotation:
			if len(buf)-pos < 4 {
				return nil, 0
			}
			pv.Rotation = getFloat32(buf[pos:])
			pos += 4
		case PropScale:
			if len(buf)-pos < 8 {
				return nil, 0
			}
			pv.ScaleX = getFloat32(buf[pos:])
			pv.ScaleY = getFloat32(buf[pos+4:])
			pos += 8
		case PropSkew:
			if len(buf)-pos < 8 {
				return nil, 0
			}
			pv.SkewX = getFloat32(buf[pos:])
			pv.SkewY = getFloat32(buf[pos+4:])
			pos += 8
		case PropMatrix:
			if len(buf)-pos < 24 {
				return nil, 0
			}
			for j := range pv.Matrix {
				pv.Matrix[j] = getFloat32(buf[pos+j*4:])
			}
			pos += 24
		default:
			return nil, -1
		}
		fields = append(fields, pv)
	}
	return SetContextOp{Fields: fields}, pos
}
