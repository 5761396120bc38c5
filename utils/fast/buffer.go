// Package fast provides the append-only byte sink and the cursor-based byte
// source that the canonical argument codec writes to and reads from.
//
// Reading past the end panics with ErrShortBuffer. Callers that decode
// untrusted input recover that panic and turn it into an error (see
// cser.UnmarshalBinaryAdapter).
package fast

import "errors"

// ErrShortBuffer is the panic value of a read that runs past the end of the
// source.
var ErrShortBuffer = errors.New("fast: read past end of buffer")

// Writer accumulates encoded bytes.
type Writer struct {
	buf []byte
}

// Reader consumes encoded bytes from the front.
type Reader struct {
	buf    []byte
	offset int
}

// NewWriter returns a Writer appending to bb. Pass make([]byte, 0, n) to
// preallocate.
func NewWriter(bb []byte) *Writer {
	return &Writer{buf: bb}
}

// NewReader returns a Reader positioned at the start of bb.
func NewReader(bb []byte) *Reader {
	return &Reader{buf: bb}
}

// WriteByte appends v.
func (w *Writer) WriteByte(v byte) {
	w.buf = append(w.buf, v)
}

// Write appends all of v.
func (w *Writer) Write(v []byte) {
	w.buf = append(w.buf, v...)
}

// Bytes returns everything written so far.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len is the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Read returns the next n bytes. The result aliases the underlying buffer
// and is capped so that appending to it cannot overwrite unread input.
func (r *Reader) Read(n int) []byte {
	if n < 0 || n > r.Remaining() {
		panic(ErrShortBuffer)
	}
	start := r.offset
	r.offset += n
	return r.buf[start:r.offset:r.offset]
}

// ReadByte returns the next byte.
func (r *Reader) ReadByte() byte {
	if r.Empty() {
		panic(ErrShortBuffer)
	}
	r.offset++
	return r.buf[r.offset-1]
}

// Position is the number of bytes consumed.
func (r *Reader) Position() int {
	return r.offset
}

// Remaining is the number of bytes not yet consumed.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.offset
}

// Bytes returns the whole source buffer, consumed or not.
func (r *Reader) Bytes() []byte {
	return r.buf
}

// Empty reports whether every byte has been consumed.
func (r *Reader) Empty() bool {
	return len(r.buf) == r.offset
}
