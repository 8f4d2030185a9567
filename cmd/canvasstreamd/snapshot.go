package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/canvasstream"
	"github.com/gogpu/canvasstream/raster"
	"github.com/gogpu/canvasstream/stage"
)

// snapshotLoop periodically composites the stage's currently published
// frame and writes it as a PNG, for inspecting what a connected
// producer is drawing without a real renderer attached.
func snapshotLoop(ctx context.Context, st *stage.RenderingStage, opts *options) error {
	logger := canvasstream.Logger()
	ticker := time.NewTicker(opts.snapshotInterval)
	defer ticker.Stop()

	var n int
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			snap, ok := st.TryCopyFrame()
			if !ok {
				continue
			}
			layers := make([]*raster.Buffer, snap.Len())
			for i := range layers {
				ref := snap.Get(i)
				if ref == nil {
					continue
				}
				layers[i] = ref.Value().(*raster.Buffer)
			}
			img := raster.Composite(layers, opts.width, opts.height)
			snap.Dispose()

			path := filepath.Join(opts.snapshotDir, fmt.Sprintf("frame-%04d.png", n))
			if err := writePNG(path, img); err != nil {
				logger.Warn("canvasstreamd: snapshot write failed", "path", path, "error", err)
				continue
			}
			n++
		}
	}
}

func writePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
