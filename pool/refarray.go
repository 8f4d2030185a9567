package pool

// RefArray is an immutable, layer-id-indexed array of optional
// references to pooled buffers. A nil slot means that layer was absent
// from the frame (never drawn, or explicitly cleared with no
// replacement buffer).
type RefArray[T any] struct {
	slots []*Ref[T]
}

// NewRefArray builds a RefArray from slots. The array takes ownership
// of the references it's given; callers should not dispose slots
// individually afterward except through the array's Dispose.
func NewRefArray[T any](slots []*Ref[T]) *RefArray[T] {
	cp := make([]*Ref[T], len(slots))
	copy(cp, slots)
	return &RefArray[T]{slots: cp}
}

// Len returns the number of slots in the array.
func (a *RefArray[T]) Len() int {
	if a == nil {
		return 0
	}
	return len(a.slots)
}

// Get returns the reference at index i, or nil if that slot is empty.
func (a *RefArray[T]) Get(i int) *Ref[T] {
	if a == nil || i < 0 || i >= len(a.slots) {
		return nil
	}
	return a.slots[i]
}

// TryCopy attempts to copy every non-nil slot's reference. If any slot
// fails (its cell already disposed), every copy made so far is rolled
// back by disposing it, and TryCopy returns ok=false. Because disposing
// a just-made copy only decrements the shared count back to where it
// was, the original array is left untouched by a failed TryCopy.
func (a *RefArray[T]) TryCopy() (cp *RefArray[T], ok bool) {
	if a == nil {
		return nil, true
	}
	out := make([]*Ref[T], len(a.slots))
	for i, slot := range a.slots {
		if slot == nil {
			continue
		}
		ref, copied := slot.TryCopy()
		if !copied {
			for j := 0; j < i; j++ {
				if out[j] != nil {
					out[j].Dispose()
				}
			}
			return nil, false
		}
		out[i] = ref
	}
	return &RefArray[T]{slots: out}, true
}

// Dispose disposes every non-nil slot exactly once. Safe to call more
// than once on the same array; subsequent calls are no-ops because each
// slot's own Dispose is only ever invoked the first time through here,
// after which the slots are cleared.
func (a *RefArray[T]) Dispose() {
	if a == nil {
		return
	}
	for i, slot := range a.slots {
		if slot != nil {
			slot.Dispose()
			a.slots[i] = nil
		}
	}
}
