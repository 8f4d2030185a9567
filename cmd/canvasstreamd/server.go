package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/canvasstream"
	"github.com/gogpu/canvasstream/raster"
	"github.com/gogpu/canvasstream/stage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func run(ctx context.Context, opts *options) error {
	logger := canvasstream.Logger()

	st := stage.NewRenderingStage(opts.width, opts.height,
		func() stage.Canvas { return raster.NewBuffer(opts.width, opts.height) },
		func(c stage.Canvas) { c.(*raster.Buffer).Clear() },
	)
	st.WarmUp(opts.warmLayers)
	logger.Info("canvasstreamd: warmed layer pool", "buffers", opts.warmLayers)

	g, gctx := errgroup.WithContext(ctx)

	// connMu admits one producer connection at a time: the stage's
	// working set is driven by a single decoder.
	var connMu sync.Mutex
	mux := http.NewServeMux()
	mux.HandleFunc("/stream", func(w http.ResponseWriter, r *http.Request) {
		connMu.Lock()
		defer connMu.Unlock()
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("canvasstreamd: upgrade failed", "error", err)
			return
		}
		handleConnection(gctx, conn, st, logger)
	})

	httpServer := &http.Server{Addr: opts.addr, Handler: mux}

	g.Go(func() error {
		logger.Info("canvasstreamd: listening", "addr", opts.addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return snapshotLoop(gctx, st, opts)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	st.Dispose()
	logger.Info("canvasstreamd: layer pool disposed")
	return err
}

// handleConnection runs the decoder's receive loop for one producer
// connection: accumulate bytes from the socket, feed them to Decode,
// and retry on need-more-data. A malformed message closes the
// connection; per spec, mid-operation cancellation must not publish a
// partial frame, which Decoder already guarantees via AbortFrame.
func handleConnection(ctx context.Context, conn *websocket.Conn, st *stage.RenderingStage, logger *slog.Logger) {
	defer conn.Close()
	logger.Info("canvasstreamd: connection accepted", "remote", conn.RemoteAddr())

	d := stage.NewDecoder(st)
	var pending []byte

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			logger.Info("canvasstreamd: connection closed", "remote", conn.RemoteAddr(), "error", err)
			return
		}
		pending = append(pending, data...)

		for {
			result := d.Decode(pending)
			if !result.Success {
				if result.Err != nil {
					logger.Warn("canvasstreamd: protocol error, closing connection", "error", result.Err)
					return
				}
				break // need more data
			}
			pending = pending[result.BytesConsumed:]
		}
	}
}
