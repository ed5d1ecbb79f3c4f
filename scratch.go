package spline

import "fmt"

// Scratch is a reusable output region with a write cursor.
//
// Geometry written to a Scratch is valid until the next Reset; consumers
// of a submitted primitive must be done with it before the engine that
// owns the Scratch is called again.
type Scratch struct {
	buf []byte
	n   int
}

// NewScratch allocates a scratch region of size bytes.
func NewScratch(size int) *Scratch {
	return &Scratch{buf: make([]byte, size)}
}

// WrapScratch uses buf as the scratch region. The caller keeps ownership.
func WrapScratch(buf []byte) *Scratch {
	return &Scratch{buf: buf}
}

// Reset rewinds the write cursor to the start of the region.
func (s *Scratch) Reset() { s.n = 0 }

// Len returns the write cursor, the number of bytes written since Reset.
func (s *Scratch) Len() int { return s.n }

// Cap returns the size of the region.
func (s *Scratch) Cap() int { return len(s.buf) }

// Remaining returns the bytes left after the cursor.
func (s *Scratch) Remaining() int { return len(s.buf) - s.n }

// Bytes returns the bytes written since Reset.
func (s *Scratch) Bytes() []byte { return s.buf[:s.n:s.n] }

// Reserve advances the cursor by n bytes and returns them for writing.
// The returned bytes may hold stale data and must be overwritten.
func (s *Scratch) Reserve(n int) ([]byte, error) {
	if n < 0 || n > s.Remaining() {
		return nil, fmt.Errorf("%w: need %d bytes, %d left", ErrScratchFull, n, s.Remaining())
	}
	b := s.buf[s.n : s.n+n : s.n+n]
	s.n += n
	return b, nil
}
