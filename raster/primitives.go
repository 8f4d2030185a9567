package raster

import (
	"image/color"
	"math"

	"github.com/gogpu/canvasstream/canvas"
)

// DrawLine strokes a straight segment from (x1,y1) to (x2,y2) in local
// drawing-space coordinates, through the buffer's current transform.
func (b *Buffer) DrawLine(x1, y1, x2, y2 float64, stroke canvas.Color, thickness float64) {
	ax, ay := b.transformPoint(canvas.Point{X: x1, Y: y1})
	bx, by := b.transformPoint(canvas.Point{X: x2, Y: y2})
	b.strokeSegment(ax, ay, bx, by, stroke, thickness)
}

// DrawRect strokes the outline of an axis-aligned rectangle.
func (b *Buffer) DrawRect(x, y, w, h float64, stroke canvas.Color, thickness float64) {
	b.DrawLine(x, y, x+w, y, stroke, thickness)
	b.DrawLine(x+w, y, x+w, y+h, stroke, thickness)
	b.DrawLine(x+w, y+h, x, y+h, stroke, thickness)
	b.DrawLine(x, y+h, x, y, stroke, thickness)
}

// DrawCircle strokes a circle outline using a fixed-step polyline
// approximation, transformed the same way straight segments are.
func (b *Buffer) DrawCircle(cx, cy, r float64, stroke canvas.Color, thickness float64) {
	const steps = 64
	prevX, prevY := cx+r, cy
	for i := 1; i <= steps; i++ {
		theta := 2 * math.Pi * float64(i) / steps
		x := cx + r*math.Cos(theta)
		y := cy + r*math.Sin(theta)
		b.DrawLine(prevX, prevY, x, y, stroke, thickness)
		prevX, prevY = x, y
	}
}

// DrawPolygon strokes the open polyline through points, in order. It
// does not implicitly close the path back to the first point; a caller
// wanting a closed shape repeats the first point at the end.
func (b *Buffer) DrawPolygon(points []canvas.Point, stroke canvas.Color, thickness float64) {
	for i := 1; i < len(points); i++ {
		b.DrawLine(points[i-1].X, points[i-1].Y, points[i].X, points[i].Y, stroke, thickness)
	}
}

// strokeSegment rasterizes a thick line in buffer pixel space by walking
// the segment and stamping a disk of radius thickness/2 at each step: no
// antialiasing, adequate for a reference implementation but not a
// quality rasterizer.
func (b *Buffer) strokeSegment(x1, y1, x2, y2 float64, stroke canvas.Color, thickness float64) {
	c := colorToNRGBA(stroke)
	radius := thickness / 2
	if radius < 0.5 {
		radius = 0.5
	}
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	steps := int(length) + 1
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		px := x1 + dx*t
		py := y1 + dy*t
		b.stampDisk(px, py, radius, c)
	}
}

func (b *Buffer) stampDisk(cx, cy, radius float64, c color.NRGBA) {
	minX := int(math.Floor(cx - radius))
	maxX := int(math.Ceil(cx + radius))
	minY := int(math.Floor(cy - radius))
	maxY := int(math.Ceil(cy + radius))
	r2 := radius * radius
	// The pixel containing the stamp centre is always painted, so a thin
	// stroke along integer coordinates (where no pixel centre lies within
	// radius 0.5) still marks the pixels it passes through.
	hx, hy := int(math.Floor(cx)), int(math.Floor(cy))
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			fx, fy := float64(x)+0.5, float64(y)+0.5
			ddx, ddy := fx-cx, fy-cy
			if ddx*ddx+ddy*ddy <= r2 || (x == hx && y == hy) {
				b.blend(x, y, c)
			}
		}
	}
}
