// Package wire defines the canvasstream binary wire format: unsigned and
// zigzag varints, message framing, opcodes and property ids. It is a pure
// byte-level contract with no drawing semantics of its own — see canvas
// for the stateful drawing context and stage/remote for the state
// machines that read and write this format.
package wire

import "encoding/binary"

// ReadUvarint decodes an unsigned LEB128 varint from buf.
//
// It returns the decoded value and the number of bytes consumed. A
// return of (0, 0) means buf does not yet contain a complete varint —
// the caller should accumulate more bytes and retry, per the decoder's
// need-more-data contract. A return of (0, -1) means the varint is
// malformed: either ten bytes were consumed and the continuation bit
// was still set (the spec's overflow guard), or the decoded value does
// not fit in 32 bits, which this wire format never needs to encode.
func ReadUvarint(buf []byte) (value uint32, n int) {
	v, n := binary.Uvarint(buf)
	switch {
	case n == 0:
		if len(buf) >= binary.MaxVarintLen64 {
			return 0, -1
		}
		return 0, 0
	case n < 0:
		return 0, -1
	case v > 0xFFFFFFFF:
		return 0, -1
	}
	return uint32(v), n
}

// WriteUvarint encodes v as an unsigned LEB128 varint into dst and
// returns the number of bytes written. dst must have at least
// MaxVarintLen32 bytes available.
func WriteUvarint(dst []byte, v uint32) int {
	return binary.PutUvarint(dst, uint64(v))
}

// UvarintSize returns the number of bytes WriteUvarint would write for v.
func UvarintSize(v uint32) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// ZigZagEncode maps a signed 32-bit integer to an unsigned one so that
// small-magnitude values (positive or negative) both encode to small
// varints: (n << 1) ^ (n >> 31).
func ZigZagEncode(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

// ZigZagDecode is the inverse of ZigZagEncode.
func ZigZagDecode(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// ReadVarint decodes a zigzag-encoded signed varint from buf. Its
// need-more-data and malformed-varint contracts match ReadUvarint.
func ReadVarint(buf []byte) (value int32, n int) {
	u, n := ReadUvarint(buf)
	if n <= 0 {
		return 0, n
	}
	return ZigZagDecode(u), n
}

// WriteVarint encodes a zigzag signed varint into dst and returns the
// number of bytes written.
func WriteVarint(dst []byte, v int32) int {
	return WriteUvarint(dst, ZigZagEncode(v))
}

// VarintSize returns the number of bytes WriteVarint would write for v.
func VarintSize(v int32) int {
	return UvarintSize(ZigZagEncode(v))
}
