package canvas

// DrawContext holds the full styling and transform state that applies
// to subsequent draw operations on a layer, mirroring the fields a
// SetContext operation can carry on the wire.
type DrawContext struct {
	Stroke    Color
	Fill      Color
	Thickness float64
	FontSize  float64
	FontColor Color

	// Transform components, applied in the fixed order translate then
	// rotate then scale then skew (see ComposeTRSK). Matrix, when
	// present, overrides the component fields entirely.
	OffsetX, OffsetY float64
	RotationDegrees  float64
	ScaleX, ScaleY   float64
	SkewX, SkewY     float64
	Matrix           Affine
	matrixSet        bool
}

// DefaultContext returns the context a fresh layer starts with: a
// one-pixel black stroke, no fill, 12-point black text, and an identity
// transform expressed as zero translation, zero rotation, unit scale
// and zero skew.
func DefaultContext() DrawContext {
	return DrawContext{
		Stroke:    Black,
		Fill:      Transparent,
		Thickness: 1,
		FontSize:  12,
		FontColor: Black,
		ScaleX:    1,
		ScaleY:    1,
	}
}

// SetMatrix overrides the component transform fields with an explicit
// matrix. It takes precedence until the next SetOffset, SetRotation,
// SetScale or SetSkew call clears it, per the "most recently written
// wins" rule: an explicit Matrix write and a component write are
// mutually exclusive, and whichever happened last determines how
// EffectiveTransform computes the result.
func (c *DrawContext) SetMatrix(m Affine) {
	c.Matrix = m
	c.matrixSet = true
}

// SetOffset sets the translation components and clears any pending
// explicit matrix override.
func (c *DrawContext) SetOffset(x, y float64) {
	c.OffsetX, c.OffsetY = x, y
	c.matrixSet = false
}

// SetRotation sets the rotation component, in degrees, and clears any
// pending explicit matrix override.
func (c *DrawContext) SetRotation(degrees float64) {
	c.RotationDegrees = degrees
	c.matrixSet = false
}

// SetScale sets the scale components and clears any pending explicit
// matrix override.
func (c *DrawContext) SetScale(sx, sy float64) {
	c.ScaleX, c.ScaleY = sx, sy
	c.matrixSet = false
}

// SetSkew sets the skew components and clears any pending explicit
// matrix override.
func (c *DrawContext) SetSkew(sx, sy float64) {
	c.SkewX, c.SkewY = sx, sy
	c.matrixSet = false
}

// EffectiveTransform returns the matrix that subsequent draw operations
// should be transformed by: the explicit Matrix if one was written more
// recently than any component field, otherwise the composition of the
// translate/rotate/scale/skew components in that fixed order.
func (c DrawContext) EffectiveTransform() Affine {
	if c.matrixSet {
		return c.Matrix
	}
	return ComposeTRSK(c.OffsetX, c.OffsetY, c.RotationDegrees, c.ScaleX, c.ScaleY, c.SkewX, c.SkewY)
}

// ContextStack implements the save/restore LIFO stack a layer's context
// operations push onto and pop from.
type ContextStack struct {
	current DrawContext
	saved   []DrawContext
}

// NewContextStack returns a stack primed with DefaultContext as the
// current context and an empty save stack.
func NewContextStack() *ContextStack {
	return &ContextStack{current: DefaultContext()}
}

// Current returns the context in effect right now.
func (s *ContextStack) Current() DrawContext {
	return s.current
}

// Set replaces the current context wholesale, as a SetContext operation
// that supplied every field does.
func (s *ContextStack) Set(c DrawContext) {
	s.current = c
}

// Save pushes a copy of the current context onto the stack.
func (s *ContextStack) Save() {
	s.saved = append(s.saved, s.current)
}

// Restore pops the most recently saved context and makes it current. If
// the stack is empty, it resets to DefaultContext instead of erroring:
// an unbalanced RestoreContext is a caller mistake, not a transport
// fault, and the decoder must keep decoding subsequent operations.
// The underflow is reported only through the return value; Decoder
// ignores it and does not log it.
func (s *ContextStack) Restore() (underflow bool) {
	n := len(s.saved)
	if n == 0 {
		s.current = DefaultContext()
		return true
	}
	s.current = s.saved[n-1]
	s.saved = s.saved[:n-1]
	return false
}

// Reset clears the save stack and restores the current context to
// DefaultContext, per a ResetContext operation.
func (s *ContextStack) Reset() {
	s.current = DefaultContext()
	s.saved = s.saved[:0]
}

// Depth reports how many contexts are currently saved.
func (s *ContextStack) Depth() int {
	return len(s.saved)
}
