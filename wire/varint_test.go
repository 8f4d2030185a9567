package wire

import (
	"math"
	"testing"
)

func TestUvarintRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 127, 128, 16383, 16384, 1 << 20, math.MaxUint32}
	for _, v := range values {
		buf := make([]byte, 10)
		n := WriteUvarint(buf, v)
		if n != UvarintSize(v) {
			t.Errorf("UvarintSize(%d) = %d, want %d (bytes written)", v, UvarintSize(v), n)
		}
		got, consumed := ReadUvarint(buf[:n])
		if consumed != n {
			t.Errorf("ReadUvarint consumed %d bytes, wrote %d", consumed, n)
		}
		if got != v {
			t.Errorf("round trip: got %d, want %d", got, v)
		}
	}
}

func TestUvarintNeedMoreData(t *testing.T) {
	buf := make([]byte, 5)
	n := WriteUvarint(buf, 1<<20)
	for i := 0; i < n; i++ {
		_, consumed := ReadUvarint(buf[:i])
		if consumed != 0 {
			t.Errorf("truncated varint (%d/%d bytes) should report need-more-data, got consumed=%d", i, n, consumed)
		}
	}
}

func TestUvarintOverflowGuard(t *testing.T) {
	// Ten bytes, every one with the continuation bit set: never terminates.
	buf := make([]byte, 10)
	for i := range buf {
		buf[i] = 0x80
	}
	_, n := ReadUvarint(buf)
	if n != -1 {
		t.Errorf("ReadUvarint(all-continuation) = (_, %d), want -1", n)
	}
}

func TestZigZagRoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 2, -2, math.MaxInt32, math.MinInt32, 1000000, -1000000}
	for _, v := range values {
		u := ZigZagEncode(v)
		got := ZigZagDecode(u)
		if got != v {
			t.Errorf("zigzag round trip: ZigZagDecode(ZigZagEncode(%d)) = %d", v, got)
		}
	}
}

func TestZigZagSmallMagnitudeIsSmall(t *testing.T) {
	// The whole point of zigzag is that small-magnitude negatives stay small.
	if ZigZagEncode(-1) != 1 {
		t.Errorf("ZigZagEncode(-1) = %d, want 1", ZigZagEncode(-1))
	}
	if ZigZagEncode(1) != 2 {
		t.Errorf("ZigZagEncode(1) = %d, want 2", ZigZagEncode(1))
	}
}

func TestVarintRoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 63, -64, 1000000, -1000000, math.MaxInt32, math.MinInt32}
	for _, v := range values {
		buf := make([]byte, 10)
		n := WriteVarint(buf, v)
		if n != VarintSize(v) {
			t.Errorf("VarintSize(%d) = %d, want %d", v, VarintSize(v), n)
		}
		got, consumed := ReadVarint(buf[:n])
		if consumed != n || got != v {
			t.Errorf("varint round trip: got (%d, %d), want (%d, %d)", got, consumed, v, n)
		}
	}
}

func FuzzUvarintRoundTrip(f *testing.F) {
	f.Add(uint32(0))
	f.Add(uint32(127))
	f.Add(uint32(math.MaxUint32))
	f.Fuzz(func(t *testing.T, v uint32) {
		buf := make([]byte, 10)
		n := WriteUvarint(buf, v)
		got, consumed := ReadUvarint(buf[:n])
		if got != v || consumed != n {
			t.Fatalf("round trip failed for %d: got (%d, %d)", v, got, consumed)
		}
	})
}

func FuzzZigZagRoundTrip(f *testing.F) {
	f.Add(int32(0))
	f.Add(int32(-1))
	f.Add(int32(math.MinInt32))
	f.Fuzz(func(t *testing.T, v int32) {
		if got := ZigZagDecode(ZigZagEncode(v)); got != v {
			t.Fatalf("zigzag round trip failed for %d: got %d", v, got)
		}
	})
}
