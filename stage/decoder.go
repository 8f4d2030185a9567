package stage

import (
	"encoding/binary"

	"github.com/gogpu/canvasstream/canvas"
	"github.com/gogpu/canvasstream/wire"
)

// DecodeResult reports the outcome of a single Decode call.
type DecodeResult struct {
	// Success is true only when a complete, valid message was parsed.
	Success bool
	// BytesConsumed is the exact length of the parsed message on
	// success, and 0 otherwise (need-more-data and malformed-message
	// both leave the input buffer untouched).
	BytesConsumed int
	FrameID       uint64
	LayerCount    int
	// TouchedLayers lists, in message order, the layer ids this message
	// declared a block for. Supplements spec's DecodeResult with enough
	// detail for a caller to know what to recomposite.
	TouchedLayers []uint8
	// Err is nil for success and for need-more-data; one of the
	// sentinel errors in errors.go otherwise.
	Err error
}

func needMoreData() DecodeResult { return DecodeResult{} }

func malformed(err error) DecodeResult { return DecodeResult{Err: err} }

// Decoder parses messages against a RenderingStage. One Decoder exists
// per connection; the per-layer context state machine it drives is
// scoped to the message currently being parsed; each Master layer block
// begins from a fresh default context, per spec.
type Decoder struct {
	stage *RenderingStage
}

// NewDecoder returns a decoder that publishes frames to stage.
func NewDecoder(stage *RenderingStage) *Decoder {
	return &Decoder{stage: stage}
}

// Decode attempts to parse exactly one message from the front of buf.
func (d *Decoder) Decode(buf []byte) DecodeResult {
	if len(buf) < wire.HeaderSize {
		return needMoreData()
	}
	frameID := binary.LittleEndian.Uint64(buf[0:8])
	layerCount := int(buf[8])
	pos := wire.HeaderSize

	if err := d.stage.OnFrameStart(frameID); err != nil {
		return malformed(err)
	}

	touched := make([]uint8, 0, layerCount)
	for i := 0; i < layerCount; i++ {
		if pos+2 > len(buf) {
			d.stage.AbortFrame()
			return needMoreData()
		}
		layerID := buf[pos]
		frameType := wire.FrameType(buf[pos+1])
		pos += 2
		if !frameType.Valid() {
			d.stage.AbortFrame()
			return malformed(ErrMalformedMessage)
		}
		touched = append(touched, layerID)

		switch frameType {
		case wire.Clear:
			if err := d.stage.Clear(layerID); err != nil {
				d.stage.AbortFrame()
				return malformed(err)
			}
		case wire.Remain:
			if err := d.stage.Remain(layerID); err != nil {
				d.stage.AbortFrame()
				return malformed(err)
			}
		case wire.Master:
			n, err := d.decodeMasterLayer(buf[pos:], layerID)
			if err != nil {
				d.stage.AbortFrame()
				return malformed(err)
			}
			if n == 0 {
				d.stage.AbortFrame()
				return needMoreData()
			}
			pos += n
		}
	}

	if pos+len(wire.EndMarker) > len(buf) {
		d.stage.AbortFrame()
		return needMoreData()
	}
	if buf[pos] != wire.EndMarker[0] || buf[pos+1] != wire.EndMarker[1] {
		d.stage.AbortFrame()
		return malformed(ErrMalformedMessage)
	}
	pos += len(wire.EndMarker)

	d.stage.OnFrameEnd()
	d.stage.MarkFrameAccepted(frameID)

	return DecodeResult{
		Success:       true,
		BytesConsumed: pos,
		FrameID:       frameID,
		LayerCount:    layerCount,
		TouchedLayers: touched,
	}
}

// decodeMasterLayer reads a Master layer block's op_count and that many
// operations, applying each to stage's working context for layerID and
// canvas. It returns bytes consumed (0 for need-more-data) and an error
// (nil unless malformed).
func (d *Decoder) decodeMasterLayer(buf []byte, layerID uint8) (int, error) {
	if err := d.stage.Clear(layerID); err != nil {
		return 0, err
	}

	opCount, n := wire.ReadUvarint(buf)
	if n == 0 {
		return 0, nil
	}
	if n < 0 {
		return 0, ErrMalformedMessage
	}
	pos := n

	stack := canvas.NewContextStack()
	cv := d.stage.CanvasFor(layerID)

	for i := uint32(0); i < opCount; i++ {
		op, m := wire.DecodeOp(buf[pos:])
		if m == 0 {
			return 0, nil
		}
		if m < 0 {
			return 0, ErrMalformedMessage
		}
		applyOp(stack, cv, op)
		pos += m
	}
	return pos, nil
}

func applyOp(stack *canvas.ContextStack, cv Canvas, op wire.Op) {
	switch o := op.(type) {
	case wire.SetContextOp:
		c := stack.Current()
		for _, f := range o.Fields {
			applyProperty(&c, f)
		}
		stack.Set(c)
	case wire.SaveContextOp:
		stack.Save()
		cv.Save()
	case wire.RestoreContextOp:
		stack.Restore()
		cv.Restore()
	case wire.ResetContextOp:
		stack.Reset()
	case wire.DrawPolygonOp:
		c := stack.Current()
		cv.SetMatrix(c.EffectiveTransform())
		cv.DrawPolygon(toPoints(o.Points), c.Stroke, c.Thickness)
	case wire.DrawTextOp:
		c := stack.Current()
		cv.SetMatrix(c.EffectiveTransform())
		cv.DrawText(o.Text, float64(o.X), float64(o.Y), c.FontColor, c.FontSize)
	case wire.DrawCircleOp:
		c := stack.Current()
		cv.SetMatrix(c.EffectiveTransform())
		cv.DrawCircle(float64(o.CX), float64(o.CY), float64(o.Radius), c.Stroke, c.Thickness)
	case wire.DrawRectOp:
		c := stack.Current()
		cv.SetMatrix(c.EffectiveTransform())
		cv.DrawRect(float64(o.X), float64(o.Y), float64(o.W), float64(o.H), c.Stroke, c.Thickness)
	case wire.DrawLineOp:
		c := stack.Current()
		cv.SetMatrix(c.EffectiveTransform())
		cv.DrawLine(float64(o.X1), float64(o.Y1), float64(o.X2), float64(o.Y2), c.Stroke, c.Thickness)
	}
}

func applyProperty(c *canvas.DrawContext, f wire.PropertyValue) {
	switch f.ID {
	case wire.PropStroke:
		c.Stroke = f.Color
	case wire.PropFill:
		c.Fill = f.Color
	case wire.PropThickness:
		c.Thickness = float64(f.Uint)
	case wire.PropFontSize:
		c.FontSize = float64(f.Uint)
	case wire.PropFontColor:
		c.FontColor = f.Color
	case wire.PropOffset:
		c.SetOffset(float64(f.OffsetX), float64(f.OffsetY))
	case wire.PropRotation:
		c.SetRotation(float64(f.Rotation))
	case wire.PropScale:
		c.SetScale(float64(f.ScaleX), float64(f.ScaleY))
	case wire.PropSkew:
		c.SetSkew(float64(f.SkewX), float64(f.SkewY))
	case wire.PropMatrix:
		m := canvas.ComposeFromMatrixProperty(f.Matrix[0], f.Matrix[1], f.Matrix[2], f.Matrix[3], f.Matrix[4], f.Matrix[5])
		c.SetMatrix(m)
	}
}

func toPoints(points []wire.Point) []canvas.Point {
	out := make([]canvas.Point, len(points))
	for i, p := range points {
		out[i] = canvas.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}
