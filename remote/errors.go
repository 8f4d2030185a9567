// Package remote implements the producer side of the protocol: a
// per-connection RemoteCanvas that applications draw into, and the
// websocket transport Flush sends completed frames over.
package remote

import "errors"

// ErrNoBeginFrame is panicked with when a layer operation is attempted
// without an enclosing BeginFrame — a programming error, not a runtime
// condition the caller should otherwise recover from.
var ErrNoBeginFrame = errors.New("remote: layer operation called without BeginFrame")
