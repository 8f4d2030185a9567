package stage

import "github.com/gogpu/canvasstream/canvas"

// recordingCanvas is a stage.Canvas test double that records every call
// made against it, for asserting on the sequence the decoder produces.
type recordingCanvas struct {
	calls     []string
	matrix    canvas.Affine
	matrixLog []canvas.Affine
	cleared   bool
}

func newRecordingCanvas() *recordingCanvas {
	return &recordingCanvas{matrix: canvas.Identity()}
}

func (c *recordingCanvas) Save()    { c.calls = append(c.calls, "Save") }
func (c *recordingCanvas) Restore() { c.calls = append(c.calls, "Restore") }
func (c *recordingCanvas) Clear()   { c.cleared = true; c.calls = append(c.calls, "Clear") }

func (c *recordingCanvas) SetMatrix(m canvas.Affine) {
	c.matrix = m
	c.matrixLog = append(c.matrixLog, m)
	c.calls = append(c.calls, "SetMatrix")
}

func (c *recordingCanvas) DrawPolygon(points []canvas.Point, stroke canvas.Color, thickness float64) {
	c.calls = append(c.calls, "DrawPolygon")
}

func (c *recordingCanvas) DrawText(text string, x, y float64, color canvas.Color, fontSize float64) {
	c.calls = append(c.calls, "DrawText")
}

func (c *recordingCanvas) DrawCircle(cx, cy, r float64, stroke canvas.Color, thickness float64) {
	c.calls = append(c.calls, "DrawCircle")
}

func (c *recordingCanvas) DrawRect(x, y, w, h float64, stroke canvas.Color, thickness float64) {
	c.calls = append(c.calls, "DrawRect")
}

func (c *recordingCanvas) DrawLine(x1, y1, x2, y2 float64, stroke canvas.Color, thickness float64) {
	c.calls = append(c.calls, "DrawLine")
}

func newTestStage() *RenderingStage {
	return NewRenderingStage(64, 64,
		func() Canvas { return newRecordingCanvas() },
		func(c Canvas) { c.Clear() },
	)
}
