package terminal

import (
	"bytes"
	"errors"
	"testing"
)

// expectPanic runs fn and checks it panics with the sentinel error
func expectPanic(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("Expected panic with %v, got none", want)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, want) {
			t.Fatalf("Expected panic with %v, got %v", want, r)
		}
	}()
	fn()
}

func TestInputBufferAppendRead(t *testing.T) {
	b := NewInputBuffer(4)
	b.Append([]byte("ab"))
	b.Append([]byte("cdef")) // forces growth

	if b.Count() != 6 {
		t.Fatalf("Expected count 6, got %d", b.Count())
	}
	if b.Cap() < 6 {
		t.Errorf("Expected cap >= 6, got %d", b.Cap())
	}
	if c := b.Peek(); c != 'a' {
		t.Errorf("Peek = %q, want 'a'", c)
	}
	if c := b.Read(); c != 'a' {
		t.Errorf("Read = %q, want 'a'", c)
	}
	b.Skip(2)
	if got := b.Remaining(); !bytes.Equal(got, []byte("def")) {
		t.Errorf("Remaining = %q, want %q", got, "def")
	}
}

// TestInputBufferGrowthPreservesOffsets grows with unread bytes in the middle
func TestInputBufferGrowthPreservesOffsets(t *testing.T) {
	b := NewInputBuffer(4)
	b.Append([]byte("wxyz"))
	b.Skip(3)
	b.Append([]byte("12345678"))

	if got := string(b.Remaining()); got != "z12345678" {
		t.Errorf("Remaining after growth = %q, want %q", got, "z12345678")
	}
	if b.Cap() < 12 {
		t.Errorf("Expected cap >= 12, got %d", b.Cap())
	}
}

func TestInputBufferGrowthFactor(t *testing.T) {
	b := NewInputBuffer(10)
	b.Append(make([]byte, 10))
	b.Append([]byte{1})
	if b.Cap() != 15 {
		t.Errorf("Expected 1.5x growth to 15, got %d", b.Cap())
	}

	z := NewInputBuffer(0)
	z.Append([]byte{7})
	if z.Cap() < 1 || z.Read() != 7 {
		t.Errorf("zero-capacity buffer failed to grow: cap=%d", z.Cap())
	}
}

func TestInputBufferUnderflow(t *testing.T) {
	b := NewInputBuffer(8)
	expectPanic(t, ErrBufferUnderflow, func() { b.Peek() })
	expectPanic(t, ErrBufferUnderflow, func() { b.Read() })

	b.Append([]byte("ab"))
	expectPanic(t, ErrBufferUnderflow, func() { b.Skip(3) })
	expectPanic(t, ErrBufferUnderflow, func() { b.Skip(-1) })

	// Failed skip leaves the buffer untouched
	if b.Count() != 2 {
		t.Errorf("Expected count 2 after failed skip, got %d", b.Count())
	}
}

// TestInputBufferResetKeepsStorage checks reset rewinds without reallocating
func TestInputBufferResetKeepsStorage(t *testing.T) {
	b := NewInputBuffer(8)
	b.Append([]byte("abc"))
	expectPanic(t, ErrBufferNotDrained, func() { b.Reset() })

	b.Skip(3)
	if !b.IsEmpty() {
		t.Fatal("Expected empty buffer after consuming all bytes")
	}
	before := &b.buf[0]
	capBefore := cap(b.buf)

	b.Reset()
	if b.read != 0 || b.write != 0 {
		t.Errorf("Expected offsets 0/0, got %d/%d", b.read, b.write)
	}
	if &b.buf[0] != before || cap(b.buf) != capBefore {
		t.Error("Reset reallocated the backing array")
	}

	b.Append([]byte("x"))
	if got := string(b.Remaining()); got != "x" {
		t.Errorf("Remaining after reset = %q", got)
	}
}
