package pool

import "testing"

func makeSlot(returned *int) *Ref[int] {
	return NewRef(NewLease(1, func(int) { *returned++ }))
}

func TestRefArrayTryCopySucceedsWithSparseSlots(t *testing.T) {
	var r0, r2 int
	arr := NewRefArray([]*Ref[int]{makeSlot(&r0), nil, makeSlot(&r2)})

	cp, ok := arr.TryCopy()
	if !ok {
		t.Fatal("TryCopy should succeed when every present slot is live")
	}
	if cp.Len() != 3 {
		t.Fatalf("copy length = %d, want 3", cp.Len())
	}
	if cp.Get(1) != nil {
		t.Error("empty slot should stay nil in the copy")
	}

	arr.Dispose()
	if r0 != 0 || r2 != 0 {
		t.Fatal("original dispose should not return resources while the copy still holds references")
	}
	cp.Dispose()
	if r0 != 1 || r2 != 1 {
		t.Errorf("resources not returned after both array copies disposed: r0=%d r2=%d", r0, r2)
	}
}

func TestRefArrayTryCopyRollsBackOnPartialFailure(t *testing.T) {
	var r0, r1 int
	s0 := makeSlot(&r0)
	s1 := makeSlot(&r1)
	arr := NewRefArray([]*Ref[int]{s0, s1})

	// Dispose s1's only reference out from under the array to force a
	// failed slot partway through TryCopy.
	s1.Dispose()

	_, ok := arr.TryCopy()
	if ok {
		t.Fatal("TryCopy should fail when any slot has already been disposed")
	}
	if r0 != 0 {
		t.Error("a successful copy of slot 0 should have been rolled back, not leaked as a dangling extra reference")
	}

	arr.Dispose()
	if r0 != 1 {
		t.Errorf("original array's own reference to slot 0 should still dispose normally, r0=%d", r0)
	}
}

func TestRefArrayDisposeIsIdempotent(t *testing.T) {
	var r0 int
	arr := NewRefArray([]*Ref[int]{makeSlot(&r0)})
	arr.Dispose()
	arr.Dispose()
	if r0 != 1 {
		t.Errorf("resource returned %d times, want exactly 1", r0)
	}
}

func TestRefArrayNilArrayIsSafe(t *testing.T) {
	var arr *RefArray[int]
	if arr.Len() != 0 {
		t.Error("nil RefArray Len() should be 0")
	}
	if arr.Get(0) != nil {
		t.Error("nil RefArray Get() should be nil")
	}
	arr.Dispose()
	if cp, ok := arr.TryCopy(); !ok || cp != nil {
		t.Error("nil RefArray TryCopy() should succeed and return nil")
	}
}
