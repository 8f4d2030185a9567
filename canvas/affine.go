package canvas

import "math"

// Affine is a 2D affine transformation matrix in row-major 2x3 form:
//
//	| A  B  C |
//	| D  E  F |
//
// representing x' = A*x + B*y + C, y' = D*x + E*y + F. Field names match
// the wire format's Matrix property payload order (scaleX, skewX,
// transX, skewY, scaleY, transY maps to A, B, C, D, E, F here via
// ComposeFromMatrixProperty).
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine {
	return Affine{A: 1, D: 0, B: 0, E: 1, C: 0, F: 0}
}

// IsIdentity reports whether m performs no transformation.
func (m Affine) IsIdentity() bool {
	return m == Identity()
}

// Translate returns a translation matrix.
func Translate(x, y float64) Affine {
	return Affine{A: 1, B: 0, C: x, D: 0, E: 1, F: y}
}

// Rotate returns a rotation matrix. degrees follows the wire format's
// Rotation property, which is expressed in degrees.
func Rotate(degrees float64) Affine {
	rad := degrees * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return Affine{A: cos, B: -sin, C: 0, D: sin, E: cos, F: 0}
}

// Scale returns a scaling matrix.
func Scale(sx, sy float64) Affine {
	return Affine{A: sx, B: 0, C: 0, D: 0, E: sy, F: 0}
}

// Skew returns a shear matrix with independent X and Y skew.
func Skew(sx, sy float64) Affine {
	return Affine{A: 1, B: sx, C: 0, D: sy, E: 1, F: 0}
}

// Multiply composes m then other: the result applies m's transformation
// first, then other's (other * m in conventional matrix-on-the-left
// notation, i.e. post-concatenation of other onto m).
func (m Affine) Multiply(other Affine) Affine {
	return Affine{
		A: other.A*m.A + other.B*m.D,
		B: other.A*m.B + other.B*m.E,
		C: other.A*m.C + other.B*m.F + other.C,
		D: other.D*m.A + other.E*m.D,
		E: other.D*m.B + other.E*m.E,
		F: other.D*m.C + other.E*m.F + other.F,
	}
}

// TransformPoint applies m to the point (x, y).
func (m Affine) TransformPoint(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// ComposeTRSK builds the composite transform from the component fields
// of a DrawContext, in the exact order spec §3 requires: start with
// identity, post-concatenate translation, then rotation (degrees), then
// scale, then skew. This order is observable on the wire and must match
// between producer and consumer bit for bit in its numerical result.
func ComposeTRSK(tx, ty, rotationDegrees, sx, sy, skewX, skewY float64) Affine {
	m := Identity()
	m = m.Multiply(Translate(tx, ty))
	m = m.Multiply(Rotate(rotationDegrees))
	m = m.Multiply(Scale(sx, sy))
	m = m.Multiply(Skew(skewX, skewY))
	return m
}

// ComposeFromMatrixProperty builds an Affine from the six f32 fields of
// the wire format's Matrix property, in the order the property payload
// defines them: scaleX, skewX, transX, skewY, scaleY, transY.
func ComposeFromMatrixProperty(scaleX, skewX, transX, skewY, scaleY, transY float32) Affine {
	return Affine{
		A: float64(scaleX), B: float64(skewX), C: float64(transX),
		D: float64(skewY), E: float64(scaleY), F: float64(transY),
	}
}
