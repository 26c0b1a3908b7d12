package terminal

// InputBuffer is a growable byte buffer with independent read and write
// offsets. Bytes in [read, write) are unread.
// Not safe for concurrent use; owned by the decoder goroutine
type InputBuffer struct {
	buf   []byte
	read  int
	write int
}

// NewInputBuffer creates a buffer with the given initial capacity
func NewInputBuffer(capacity int) *InputBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &InputBuffer{buf: make([]byte, capacity)}
}

// Append copies p after the last written byte, growing the backing array
// when needed. Offsets are preserved across growth
func (b *InputBuffer) Append(p []byte) {
	if len(p) == 0 {
		return
	}
	need := b.write + len(p)
	if need > len(b.buf) {
		newCap := max(len(b.buf)*3/2, need, 1)
		grown := make([]byte, newCap)
		copy(grown, b.buf[:b.write])
		b.buf = grown
	}
	copy(b.buf[b.write:], p)
	b.write = need
}

// Peek returns the next unread byte without consuming it
func (b *InputBuffer) Peek() byte {
	if b.read == b.write {
		panic(ErrBufferUnderflow)
	}
	return b.buf[b.read]
}

// Read consumes and returns the next unread byte
func (b *InputBuffer) Read() byte {
	c := b.Peek()
	b.read++
	return c
}

// Skip consumes n unread bytes
func (b *InputBuffer) Skip(n int) {
	if n < 0 || b.read+n > b.write {
		panic(ErrBufferUnderflow)
	}
	b.read += n
}

// Remaining returns a view of the unread bytes, valid until the next Append or Reset
func (b *InputBuffer) Remaining() []byte {
	return b.buf[b.read:b.write]
}

// Count returns the number of unread bytes
func (b *InputBuffer) Count() int {
	return b.write - b.read
}

// IsEmpty reports whether every written byte has been read
func (b *InputBuffer) IsEmpty() bool {
	return b.read == b.write
}

// Cap returns the capacity of the backing array
func (b *InputBuffer) Cap() int {
	return len(b.buf)
}

// Reset rewinds both offsets to zero, keeping the backing array.
// The buffer must be drained
func (b *InputBuffer) Reset() {
	if b.read != b.write {
		panic(ErrBufferNotDrained)
	}
	b.read = 0
	b.write = 0
}
