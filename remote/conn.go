package remote

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gogpu/canvasstream"
)

// Conn is the transport RemoteCanvas.Flush writes framed messages to.
// *websocket.Conn satisfies it directly — no adapter struct needed —
// which keeps this package free of any gorilla-specific type outside
// Dial.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

var _ Conn = (*websocket.Conn)(nil)

// Dial opens a websocket connection to addr and wraps it in a
// RemoteCanvas. Logs the connect and any dial failure through the
// module's ambient logger; never logs anything past this point.
func Dial(ctx context.Context, addr string, header http.Header) (*RemoteCanvas, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, addr, header)
	if err != nil {
		canvasstream.Logger().Warn("remote: dial failed", "addr", addr, "error", err)
		return nil, err
	}
	canvasstream.Logger().Info("remote: connected", "addr", addr)
	return NewRemoteCanvas(conn), nil
}
