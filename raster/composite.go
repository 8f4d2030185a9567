package raster

import (
	"image"
	"image/color"
)

// Composite draws layers onto a freshly allocated output image in
// ascending index order, per spec's "draws all layer buffers in
// ascending layer-id order onto an output canvas": layers[i] is treated
// as layer id i, and a nil entry (a sparse, never-touched layer id) is
// skipped.
func Composite(layers []*Buffer, width, height int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		compositeOver(out, layer)
	}
	return out
}

func compositeOver(dst *image.RGBA, src *Buffer) {
	w, h := src.width, src.height
	if w > dst.Bounds().Dx() {
		w = dst.Bounds().Dx()
	}
	if h > dst.Bounds().Dy() {
		h = dst.Bounds().Dy()
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*src.width + x) * 4
			sr, sg, sb, sa := src.pix[i], src.pix[i+1], src.pix[i+2], src.pix[i+3]
			if sa == 0 {
				continue
			}
			dst.Set(x, y, premultipliedOver(dst.RGBAAt(x, y), color.RGBA{R: sr, G: sg, B: sb, A: sa}))
		}
	}
}

func premultipliedOver(dst, src color.RGBA) color.RGBA {
	if src.A == 255 {
		return src
	}
	inv := float64(255-src.A) / 255
	return color.RGBA{
		R: clampUint8(float64(src.R) + float64(dst.R)*inv),
		G: clampUint8(float64(src.G) + float64(dst.G)*inv),
		B: clampUint8(float64(src.B) + float64(dst.B)*inv),
		A: clampUint8(float64(src.A) + float64(dst.A)*inv),
	}
}
