// Package canvas holds the protocol's stateful drawing model: the
// 4-byte wire color, the per-layer DrawContext (styling plus transform)
// and its save/restore stack, and the affine matrix composition rule
// that both the encoder and the decoder must apply identically.
package canvas

import "image/color"

// Color is the wire-format color of spec §3: four bytes, alpha
// defaulting to fully opaque. It is distinct from any blending color a
// raster backend uses internally — the wire format never carries more
// than one byte per channel.
type Color struct {
	R, G, B, A uint8
}

// DefaultAlpha is the alpha value assumed when a color is constructed
// without one, matching "A defaults to 255" in spec §3.
const DefaultAlpha = 255

// RGB constructs an opaque color from red, green and blue components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: DefaultAlpha}
}

// RGBA constructs a color from all four components.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Black is the default stroke and font color of a fresh DrawContext.
var Black = RGB(0, 0, 0)

// Transparent is fully transparent black, used to clear a layer buffer.
var Transparent = RGBA(0, 0, 0, 0)

// NRGBA converts c to the standard library's non-premultiplied color
// representation, for interop with image.Image-based backends.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromNRGBA converts a standard library color back into wire Color,
// truncating to 8 bits per channel.
func FromNRGBA(c color.NRGBA) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
