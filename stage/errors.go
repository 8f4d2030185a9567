package stage

import "errors"

// Sentinel errors a Decode or TryCopyFrame call can return, per the
// error kinds a caller needs to branch on: protocol faults, pool
// lifecycle, and the renderer-side lease-copy failure mode.
var (
	// ErrMalformedMessage covers every byte-level protocol fault: an
	// unknown opcode or frame type, a varint overflow, a point count or
	// op count that consumed more (or fewer) bytes than declared, or a
	// missing end marker after the declared layer blocks.
	ErrMalformedMessage = errors.New("stage: malformed message")

	// ErrRemainWithoutPredecessor is returned when a layer block asks
	// to Remain a layer id absent from the previously published frame.
	ErrRemainWithoutPredecessor = errors.New("stage: remain without predecessor")

	// ErrPoolDisposed is returned by Rent-driving calls after the
	// backing pool has been disposed; the caller must stop decoding.
	ErrPoolDisposed = errors.New("stage: pool disposed")
)
