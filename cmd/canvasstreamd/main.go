// Command canvasstreamd is a demo server: it accepts one websocket
// producer connection at a time, decodes its messages into a
// RenderingStage backed by the raster reference backend, and
// periodically writes a PNG snapshot of the composited frame for
// inspection.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
