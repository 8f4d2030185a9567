package pool

import "testing"

func TestLeaseDisposeInvokesCallbackOnce(t *testing.T) {
	calls := 0
	l := NewLease(42, func(int) { calls++ })
	l.Dispose()
	l.Dispose()
	l.Dispose()
	if calls != 1 {
		t.Errorf("Dispose callback invoked %d times, want 1", calls)
	}
}

func TestLeaseValue(t *testing.T) {
	l := NewLease("hello", func(string) {})
	if l.Value() != "hello" {
		t.Errorf("Value() = %q, want %q", l.Value(), "hello")
	}
}
