package wire

// EndMarker is the two-byte sequence that terminates every message.
// 0xFF is otherwise unused as a lead byte anywhere else in the format.
var EndMarker = [2]byte{0xFF, 0xFF}

// HeaderSize is the size in bytes of the fixed message header:
// an 8-byte little-endian frame id followed by a 1-byte layer count.
const HeaderSize = 8 + 1

// FrameType identifies how a layer block's contents should be applied:
// redraw from scratch, reuse the previous frame's buffer unchanged, or
// erase to transparent.
type FrameType uint8

// Layer block frame types.
const (
	Master FrameType = iota
	Remain
	Clear
)

var frameTypeNames = [...]string{
	Master: "Master",
	Remain: "Remain",
	Clear:  "Clear",
}

// String returns the human-readable name of a FrameType.
func (f FrameType) String() string {
	if int(f) < len(frameTypeNames) {
		return frameTypeNames[f]
	}
	return "Unknown"
}

// Valid reports whether f is one of the three defined frame types.
func (f FrameType) Valid() bool {
	return f == Master || f == Remain || f == Clear
}

// Opcode identifies a single operation within a Master layer block's
// operation stream.
type Opcode uint8

// Draw and context opcodes, per the wire format table.
const (
	OpDrawPolygon    Opcode = 0x01
	OpDrawText       Opcode = 0x02
	OpDrawCircle     Opcode = 0x03
	OpDrawRect       Opcode = 0x04
	OpDrawLine       Opcode = 0x05
	OpSetContext     Opcode = 0x10
	OpSaveContext    Opcode = 0x11
	OpRestoreContext Opcode = 0x12
	OpResetContext   Opcode = 0x13
)

var opcodeNames = map[Opcode]string{
	OpDrawPolygon:    "DrawPolygon",
	OpDrawText:       "DrawText",
	OpDrawCircle:     "DrawCircle",
	OpDrawRect:       "DrawRect",
	OpDrawLine:       "DrawLine",
	OpSetContext:     "SetContext",
	OpSaveContext:    "SaveContext",
	OpRestoreContext: "RestoreContext",
	OpResetContext:   "ResetContext",
}

// String returns the human-readable name of an Opcode, or "Unknown" for
// an opcode the wire format does not define.
func (o Opcode) String() string {
	if name, ok := opcodeNames[o]; ok {
		return name
	}
	return "Unknown"
}

// PropertyID identifies a single field carried by a SetContext operation.
type PropertyID uint8

// Property ids, per the SetContext payload table.
const (
	PropStroke    PropertyID = 0x01
	PropFill      PropertyID = 0x02
	PropThickness PropertyID = 0x03
	PropFontSize  PropertyID = 0x04
	PropFontColor PropertyID = 0x05
	PropOffset    PropertyID = 0x10
	PropRotation  PropertyID = 0x11
	PropScale     PropertyID = 0x12
	PropSkew      PropertyID = 0x13
	PropMatrix    PropertyID = 0x20
)

var propertyIDNames = map[PropertyID]string{
	PropStroke:    "Stroke",
	PropFill:      "Fill",
	PropThickness: "Thickness",
	PropFontSize:  "FontSize",
	PropFontColor: "FontColor",
	PropOffset:    "Offset",
	PropRotation:  "Rotation",
	PropScale:     "Scale",
	PropSkew:      "Skew",
	PropMatrix:    "Matrix",
}

// String returns the human-readable name of a PropertyID.
func (p PropertyID) String() string {
	if name, ok := propertyIDNames[p]; ok {
		return name
	}
	return "Unknown"
}
