package stage

import "github.com/gogpu/canvasstream/canvas"

// Canvas is the backend drawing interface a RenderingStage drives for
// one layer. Implementations mirror a standard 2D canvas API; a raster
// backend's Buffer is the reference implementation. Draw methods must
// not themselves touch the transform or a save stack of their own that
// the decoder isn't explicitly driving — the decoder owns every
// transition, via SetMatrix/Save/Restore calls made at the right point
// in the operation stream.
type Canvas interface {
	Save()
	Restore()
	SetMatrix(m canvas.Affine)
	Clear()

	DrawPolygon(points []canvas.Point, stroke canvas.Color, thickness float64)
	DrawText(text string, x, y float64, color canvas.Color, fontSize float64)
	DrawCircle(cx, cy, r float64, stroke canvas.Color, thickness float64)
	DrawRect(x, y, w, h float64, stroke canvas.Color, thickness float64)
	DrawLine(x1, y1, x2, y2 float64, stroke canvas.Color, thickness float64)
}
