package raster

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/canvasstream/canvas"
)

// DrawText draws text with its baseline origin at (x, y), in local
// drawing-space coordinates. Font shaping is intentionally minimal: a
// single fixed-size bitmap face, scaled by nearest-neighbor replication
// to approximate fontSize. Real font rendering is out of scope; this
// exists so DrawText is a real, testable operation rather than a stub.
func (b *Buffer) DrawText(text string, x, y float64, textColor canvas.Color, fontSize float64) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	scale := fontSize / 13
	if scale < 1 {
		scale = 1
	}

	widthFixed := font.MeasureString(face, text)
	width := widthFixed.Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	height := ascent + descent
	if width <= 0 || height <= 0 {
		return
	}

	mask := image.NewNRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.NewUniform(colorToNRGBA(textColor)),
		Face: face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(text)

	ox, oy := b.transformPoint(canvas.Point{X: x, Y: y - float64(ascent)})
	for my := 0; my < height; my++ {
		for mx := 0; mx < width; mx++ {
			c := mask.NRGBAAt(mx, my)
			if c.A == 0 {
				continue
			}
			bx := ox + float64(mx)*scale
			by := oy + float64(my)*scale
			size := scale
			for dy := 0.0; dy < size; dy++ {
				for dx := 0.0; dx < size; dx++ {
					b.blend(int(bx+dx), int(by+dy), c)
				}
			}
		}
	}
}
