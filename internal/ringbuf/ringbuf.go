// Package ringbuf provides a small growable byte buffer used by the
// Telnet decoder's subnegotiation accumulator and the encoder's output
// buffer. Both need to append without knowing the final size up front,
// and periodically reset to empty without giving the backing array back
// to the garbage collector.
package ringbuf

// Buffer is a growable byte buffer with an explicit capacity ceiling.
// Unlike bytes.Buffer, it can reject a write that would exceed a
// configured maximum instead of growing forever- this is what lets the
// Telnet decoder enforce a bound on subnegotiation payload size.
type Buffer struct {
	data []byte
	max  int
}

// New creates a Buffer with no bound (max <= 0 means unbounded) or a
// fixed ceiling in bytes.
func New(max int) *Buffer {
	return &Buffer{max: max}
}

// Write appends b to the buffer. It reports false without modifying the
// buffer if doing so would exceed the configured maximum.
func (b *Buffer) Write(p byte) bool {
	if b.max > 0 && len(b.data) >= b.max {
		return false
	}
	b.data = append(b.data, p)
	return true
}

// WriteSlice appends p to the buffer, same overflow rule as Write.
func (b *Buffer) WriteSlice(p []byte) bool {
	if b.max > 0 && len(b.data)+len(p) > b.max {
		return false
	}
	b.data = append(b.data, p...)
	return true
}

// Bytes returns the current contents. The slice is only valid until the
// next call to Reset.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the number of bytes currently buffered.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Reset empties the buffer while keeping the backing array.
func (b *Buffer) Reset() {
	b.data = b.data[:0]
}
