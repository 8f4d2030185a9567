// Package raster is the reference drawing backend: a premultiplied
// RGBA8888 pixel buffer per layer, with simple, non-antialiased
// software fills for the five draw primitives the wire format names.
// Rasterization quality is explicitly out of scope for this module; the
// point of this package is to give the decoder something real to drive
// and to make the end-to-end golden fixtures verifiable pixel by pixel.
package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/canvasstream/canvas"
)

// Buffer is a fixed-size layer canvas. It implements image.Image and
// draw.Image for interop with the standard library's image encoders,
// and it implements the drawing interface the decoder drives: Save,
// Restore, SetMatrix and the five Draw* primitives, plus Clear.
type Buffer struct {
	width, height int
	pix           []byte // premultiplied RGBA, stride = width*4

	transform canvas.Affine
	stack     []canvas.Affine
}

// NewBuffer allocates a transparent buffer of the given fixed dimensions.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{
		width:     width,
		height:    height,
		pix:       make([]byte, width*height*4),
		transform: canvas.Identity(),
	}
	return b
}

// Width returns the buffer's fixed width.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer's fixed height.
func (b *Buffer) Height() int { return b.height }

// Clear erases the buffer to fully transparent and resets the
// transform stack. LayerPool calls this before handing a buffer out.
func (b *Buffer) Clear() {
	for i := range b.pix {
		b.pix[i] = 0
	}
	b.transform = canvas.Identity()
	b.stack = b.stack[:0]
}

// Save pushes the current transform onto the backend's own rendering
// stack. This is distinct from the decoder's DrawContext stack; it
// exists so canvas.Save()/canvas.Restore() forwarding (spec §4.5) keeps
// the rasterizer's notion of "current transform" aligned with the
// decoder's, even though in this implementation the decoder always
// calls SetMatrix before every draw and so Save/Restore only matter to
// a backend that caches more per-frame state than this one does.
func (b *Buffer) Save() {
	b.stack = append(b.stack, b.transform)
}

// Restore pops the most recently saved transform. A Restore with
// nothing saved is a no-op; the decoder's own context stack is the
// source of truth for whether this is a protocol error.
func (b *Buffer) Restore() {
	n := len(b.stack)
	if n == 0 {
		return
	}
	b.transform = b.stack[n-1]
	b.stack = b.stack[:n-1]
}

// SetMatrix installs the transform subsequent draw calls use to map
// local drawing-space coordinates to buffer pixel coordinates.
func (b *Buffer) SetMatrix(m canvas.Affine) {
	b.transform = m
}

func (b *Buffer) transformPoint(p canvas.Point) (float64, float64) {
	return b.transform.TransformPoint(p.X, p.Y)
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// At implements image.Image, returning the stored premultiplied pixel.
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return color.RGBA{}
	}
	i := (y*b.width + x) * 4
	return color.RGBA{R: b.pix[i], G: b.pix[i+1], B: b.pix[i+2], A: b.pix[i+3]}
}

// Set implements draw.Image. c is converted to premultiplied RGBA and
// stored as a fully-covering (non-blended) write, matching image/draw's
// Src-like semantics for direct pixel pokes.
func (b *Buffer) Set(x, y int, c color.Color) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	rc := color.RGBAModel.Convert(c).(color.RGBA)
	i := (y*b.width + x) * 4
	b.pix[i], b.pix[i+1], b.pix[i+2], b.pix[i+3] = rc.R, rc.G, rc.B, rc.A
}

// blend composites a straight-alpha color over the buffer's stored
// premultiplied pixel using source-over, the standard compositing
// operator for premultiplied RGBA8888.
func (b *Buffer) blend(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	i := (y*b.width + x) * 4
	a := float64(c.A) / 255
	srcR := float64(c.R) * a
	srcG := float64(c.G) * a
	srcB := float64(c.B) * a
	inv := 1 - a
	b.pix[i] = clampUint8(srcR + float64(b.pix[i])*inv)
	b.pix[i+1] = clampUint8(srcG + float64(b.pix[i+1])*inv)
	b.pix[i+2] = clampUint8(srcB + float64(b.pix[i+2])*inv)
	b.pix[i+3] = clampUint8(float64(c.A) + float64(b.pix[i+3])*inv)
}

func clampUint8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}

func colorToNRGBA(c canvas.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
