package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/canvasstream"
)

type options struct {
	addr             string
	width            int
	height           int
	warmLayers       int
	snapshotInterval time.Duration
	snapshotDir      string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "canvasstreamd",
		Short: "Serve a canvasstream websocket endpoint and composite frames to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			canvasstream.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.addr, "addr", ":8080", "address to listen on")
	flags.IntVar(&opts.width, "width", 800, "canvas width in pixels")
	flags.IntVar(&opts.height, "height", 600, "canvas height in pixels")
	flags.IntVar(&opts.warmLayers, "layers", 8, "number of layer buffers to pre-warm the pool with at startup")
	flags.DurationVar(&opts.snapshotInterval, "snapshot-interval", 2*time.Second, "how often to write a PNG snapshot of the composited frame")
	flags.StringVar(&opts.snapshotDir, "snapshot-dir", ".", "directory to write PNG snapshots to")

	return cmd
}
