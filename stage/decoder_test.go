package stage

import (
	"encoding/binary"
	"testing"

	"github.com/gogpu/canvasstream/canvas"
	"github.com/gogpu/canvasstream/wire"
)

type testLayerBlock struct {
	id        uint8
	frameType wire.FrameType
	ops       [][]byte
}

func buildMessage(frameID uint64, layers []testLayerBlock) []byte {
	var buf []byte
	header := make([]byte, wire.HeaderSize)
	binary.LittleEndian.PutUint64(header, frameID)
	header[8] = byte(len(layers))
	buf = append(buf, header...)

	for _, l := range layers {
		buf = append(buf, l.id, byte(l.frameType))
		if l.frameType == wire.Master {
			var ops []byte
			for _, op := range l.ops {
				ops = append(ops, op...)
			}
			countBuf := make([]byte, 10)
			n := wire.WriteUvarint(countBuf, uint32(len(l.ops)))
			buf = append(buf, countBuf[:n]...)
			buf = append(buf, ops...)
		}
	}
	buf = append(buf, wire.EndMarker[0], wire.EndMarker[1])
	return buf
}

func encodeOp(encode func([]byte) int) []byte {
	buf := make([]byte, 256)
	n := encode(buf)
	return buf[:n]
}

func TestDecodeEmptyFrame(t *testing.T) {
	st := newTestStage()
	d := NewDecoder(st)

	msg := buildMessage(1, nil)
	if len(msg) != wire.HeaderSize+len(wire.EndMarker) {
		t.Fatalf("empty-frame message length = %d, want %d", len(msg), wire.HeaderSize+len(wire.EndMarker))
	}

	result := d.Decode(msg)
	if !result.Success || result.BytesConsumed != len(msg) || result.FrameID != 1 || result.LayerCount != 0 {
		t.Fatalf("Decode(empty frame) = %+v", result)
	}
	snap, ok := st.TryCopyFrame()
	if !ok {
		t.Fatal("expected an empty but valid snapshot after the first frame")
	}
	if snap.Len() != maxLayers {
		t.Errorf("snapshot length = %d, want %d", snap.Len(), maxLayers)
	}
	snap.Dispose()
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDecodeSingleRedSquare(t *testing.T) {
	st := newTestStage()
	d := NewDecoder(st)

	setStroke := encodeOp(func(dst []byte) int {
		return wire.EncodeSetContext(dst, []wire.PropertyValue{{ID: wire.PropStroke, Color: canvas.RGB(255, 0, 0)}})
	})
	drawRect := encodeOp(func(dst []byte) int { return wire.EncodeDrawRect(dst, 10, 20, 100, 50) })

	msg := buildMessage(1, []testLayerBlock{
		{id: 0, frameType: wire.Master, ops: [][]byte{setStroke, drawRect}},
	})

	result := d.Decode(msg)
	if !result.Success {
		t.Fatalf("Decode failed: %+v", result)
	}

	snap, ok := st.TryCopyFrame()
	if !ok {
		t.Fatal("expected a published snapshot")
	}
	defer snap.Dispose()
	ref := snap.Get(0)
	if ref == nil {
		t.Fatal("expected layer 0 present in the snapshot")
	}
	cv := ref.Value().(*recordingCanvas)
	if !cv.cleared {
		t.Error("Master layer should have been cleared before drawing")
	}
	if len(cv.calls) < 2 || cv.calls[len(cv.calls)-1] != "DrawRect" {
		t.Errorf("expected a DrawRect call, got %v", cv.calls)
	}
}

func TestDecodeKeyframeCompressionReuseAcrossFrames(t *testing.T) {
	st := newTestStage()
	d := NewDecoder(st)

	rect := encodeOp(func(dst []byte) int { return wire.EncodeDrawRect(dst, 0, 0, 10, 10) })
	poly := encodeOp(func(dst []byte) int {
		return wire.EncodeDrawPolygon(dst, []wire.Point{{X: 0, Y: 0}, {X: 5, Y: 5}})
	})

	msg1 := buildMessage(1, []testLayerBlock{
		{id: 0, frameType: wire.Master, ops: [][]byte{rect}},
		{id: 1, frameType: wire.Master, ops: [][]byte{poly}},
	})
	if r := d.Decode(msg1); !r.Success {
		t.Fatalf("frame 1 decode failed: %+v", r)
	}
	statsAfter1 := st.Stats()
	if statsAfter1.Pool.Rented != 2 {
		t.Fatalf("after frame 1, rented = %d, want 2", statsAfter1.Pool.Rented)
	}

	poly2 := encodeOp(func(dst []byte) int {
		return wire.EncodeDrawPolygon(dst, []wire.Point{{X: 1, Y: 1}, {X: 9, Y: 9}})
	})
	msg2 := buildMessage(2, []testLayerBlock{
		{id: 0, frameType: wire.Remain},
		{id: 1, frameType: wire.Master, ops: [][]byte{poly2}},
	})
	if r := d.Decode(msg2); !r.Success {
		t.Fatalf("frame 2 decode failed: %+v", r)
	}
	statsAfter2 := st.Stats()
	if statsAfter2.Pool.Rented != statsAfter1.Pool.Rented+1 {
		t.Errorf("rented after frame 2 = %d, want %d (+1 for layer 1)", statsAfter2.Pool.Rented, statsAfter1.Pool.Rented+1)
	}
}

func TestDecodeRemainWithoutPredecessorIsFatal(t *testing.T) {
	st := newTestStage()
	d := NewDecoder(st)

	msg := buildMessage(1, []testLayerBlock{{id: 5, frameType: wire.Remain}})
	result := d.Decode(msg)
	if result.Success || result.Err != ErrRemainWithoutPredecessor {
		t.Fatalf("Decode(remain without predecessor) = %+v, want ErrRemainWithoutPredecessor", result)
	}
	if _, ok := st.TryCopyFrame(); ok {
		t.Error("display frame should remain unset after a failed first message")
	}
}

func TestDecodeTruncatedMessageNeedsMoreData(t *testing.T) {
	st := newTestStage()
	d := NewDecoder(st)

	rect := encodeOp(func(dst []byte) int { return wire.EncodeDrawRect(dst, 1, 2, 3, 4) })
	full := buildMessage(1, []testLayerBlock{{id: 0, frameType: wire.Master, ops: [][]byte{rect}}})

	for i := 0; i < len(full); i++ {
		result := d.Decode(full[:i])
		if result.Success || result.BytesConsumed != 0 || result.Err != nil {
			t.Fatalf("truncated at %d/%d bytes: %+v, want need-more-data", i, len(full), result)
		}
	}
	result := d.Decode(full)
	if !result.Success {
		t.Fatalf("full message should decode successfully, got %+v", result)
	}
}

func TestDecodeUnknownFrameTypeIsMalformed(t *testing.T) {
	st := newTestStage()
	d := NewDecoder(st)

	header := make([]byte, wire.HeaderSize)
	header[8] = 1
	msg := append(header, 0, 9) // layer 0, frame type 9 (invalid)
	msg = append(msg, wire.EndMarker[0], wire.EndMarker[1])

	result := d.Decode(msg)
	if result.Success || result.Err != ErrMalformedMessage {
		t.Fatalf("Decode(unknown frame type) = %+v, want ErrMalformedMessage", result)
	}
}

func TestDecodeUnknownOpcodeIsMalformedNotNeedMoreData(t *testing.T) {
	st := newTestStage()
	d := NewDecoder(st)

	header := make([]byte, wire.HeaderSize)
	binary.LittleEndian.PutUint64(header, 1)
	header[8] = 1
	msg := append(header, 0, byte(wire.Master))
	countBuf := make([]byte, 10)
	n := wire.WriteUvarint(countBuf, 1)
	msg = append(msg, countBuf[:n]...)
	msg = append(msg, 0x99) // unknown opcode
	msg = append(msg, wire.EndMarker[0], wire.EndMarker[1])

	result := d.Decode(msg)
	if result.Success {
		t.Fatalf("Decode(unknown opcode) succeeded, want malformed")
	}
	if result.Err != ErrMalformedMessage {
		t.Fatalf("Decode(unknown opcode) = %+v, want ErrMalformedMessage (not need-more-data)", result)
	}
}

func TestDecodeStrictlyIncreasingFrameIDs(t *testing.T) {
	st := newTestStage()
	d := NewDecoder(st)

	msg1 := buildMessage(5, nil)
	if r := d.Decode(msg1); !r.Success {
		t.Fatalf("first decode failed: %+v", r)
	}
	msg2 := buildMessage(5, nil)
	result := d.Decode(msg2)
	if result.Success || result.Err != ErrMalformedMessage {
		t.Fatalf("non-increasing frame id should fail, got %+v", result)
	}
}

func TestSaveRestoreNestingAppliesExpectedMatrices(t *testing.T) {
	st := newTestStage()
	d := NewDecoder(st)

	save := encodeOp(EncodeSaveWrapper)
	restore := encodeOp(EncodeRestoreWrapper)
	setOffset := func(x, y int32) []byte {
		return encodeOp(func(dst []byte) int {
			return wire.EncodeSetContext(dst, []wire.PropertyValue{{ID: wire.PropOffset, OffsetX: x, OffsetY: y}})
		})
	}
	setScale := func(sx, sy float32) []byte {
		return encodeOp(func(dst []byte) int {
			return wire.EncodeSetContext(dst, []wire.PropertyValue{{ID: wire.PropScale, ScaleX: sx, ScaleY: sy}})
		})
	}
	drawPoly := encodeOp(func(dst []byte) int {
		return wire.EncodeDrawPolygon(dst, []wire.Point{{X: 1, Y: 1}, {X: 2, Y: 2}})
	})

	ops := [][]byte{
		setOffset(100, 100),
		save,
		setScale(0.5, 0.5),
		drawPoly,
		restore,
		drawPoly,
		restore,
		drawPoly,
	}
	msg := buildMessage(1, []testLayerBlock{{id: 0, frameType: wire.Master, ops: ops}})
	result := d.Decode(msg)
	if !result.Success {
		t.Fatalf("decode failed: %+v", result)
	}

	snap, _ := st.TryCopyFrame()
	defer snap.Dispose()
	cv := snap.Get(0).Value().(*recordingCanvas)

	if len(cv.matrixLog) != 3 {
		t.Fatalf("expected 3 SetMatrix calls (one per draw), got %d", len(cv.matrixLog))
	}
	wantOffsetScale := canvas.ComposeTRSK(100, 100, 0, 0.5, 0.5, 0, 0)
	wantOffsetOnly := canvas.Translate(100, 100)
	wantIdentity := canvas.Identity()
	want := []canvas.Affine{wantOffsetScale, wantOffsetOnly, wantIdentity}
	for i, w := range want {
		if cv.matrixLog[i] != w {
			t.Errorf("draw %d matrix = %+v, want %+v", i, cv.matrixLog[i], w)
		}
	}
}

func EncodeSaveWrapper(dst []byte) int    { return wire.EncodeSaveContext(dst) }
func EncodeRestoreWrapper(dst []byte) int { return wire.EncodeRestoreContext(dst) }
