package wire

import "github.com/gogpu/canvasstream/canvas"

// Point is a single vertex of a DrawPolygon operation, already
// delta-decoded back to absolute coordinates.
type Point struct {
	X, Y int32
}

// Op is implemented by every decoded operation. The set of concrete
// types below is closed; a type switch on Op is exhaustive over the
// opcode table.
type Op interface {
	Opcode() Opcode
}

// DrawPolygonOp draws a closed or open polygon through Points, in
// absolute coordinates.
type DrawPolygonOp struct {
	Points []Point
}

// Opcode implements Op.
func (DrawPolygonOp) Opcode() Opcode { return OpDrawPolygon }

// DrawTextOp draws Text with its baseline origin at (X, Y).
type DrawTextOp struct {
	X, Y int32
	Text string
}

// Opcode implements Op.
func (DrawTextOp) Opcode() Opcode { return OpDrawText }

// DrawCircleOp draws a circle centered at (CX, CY).
type DrawCircleOp struct {
	CX, CY int32
	Radius uint32
}

// Opcode implements Op.
func (DrawCircleOp) Opcode() Opcode { return OpDrawCircle }

// DrawRectOp draws an axis-aligned rectangle.
type DrawRectOp struct {
	X, Y int32
	W, H uint32
}

// Opcode implements Op.
func (DrawRectOp) Opcode() Opcode { return OpDrawRect }

// DrawLineOp draws a line segment.
type DrawLineOp struct {
	X1, Y1, X2, Y2 int32
}

// Opcode implements Op.
func (DrawLineOp) Opcode() Opcode { return OpDrawLine }

// PropertyValue is one decoded field of a SetContext operation. Only
// the members relevant to ID are populated; the rest are zero.
type PropertyValue struct {
	ID PropertyID

	Color canvas.Color // Stroke, Fill, FontColor

	Uint uint32 // Thickness, FontSize

	OffsetX, OffsetY int32 // Offset

	Rotation float32 // Rotation, degrees

	ScaleX, ScaleY float32 // Scale

	SkewX, SkewY float32 // Skew

	// Matrix holds scaleX, skewX, transX, skewY, scaleY, transY, in
	// that wire order, for PropMatrix.
	Matrix [6]float32
}

// SetContextOp updates zero or more DrawContext fields; unset fields
// retain their prior value.
type SetContextOp struct {
	Fields []PropertyValue
}

// Opcode implements Op.
func (SetContextOp) Opcode() Opcode { return OpSetContext }

// SaveContextOp pushes a copy of the current context.
type SaveContextOp struct{}

// Opcode implements Op.
func (SaveContextOp) Opcode() Opcode { return OpSaveContext }

// RestoreContextOp pops the most recently saved context.
type RestoreContextOp struct{}

// Opcode implements Op.
func (RestoreContextOp) Opcode() Opcode { return OpRestoreContext }

// ResetContextOp clears the context stack and installs the default.
type ResetContextOp struct{}

// Opcode implements Op.
func (ResetContextOp) Opcode() Opcode { return OpResetContext }
