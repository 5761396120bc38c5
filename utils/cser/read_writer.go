/*
Package cser implements the primitive layer of the canonical argument
serialization: fixed-width little-endian integers, length-prefixed byte
strings and the length-byte-prefixed unsigned big integers used for
U128/U256/U512.

The Writer never fails. The Reader enforces canonical form and panics with
one of the package errors when the input is truncated or not minimally
packed; UnmarshalBinaryAdapter converts those panics into returned errors.
*/
package cser

import (
	"encoding/binary"
	"errors"
	"math/big"
	"unicode/utf8"

	"github.com/rony4d/go-deploy-args/utils/fast"
)

var (
	ErrNonCanonicalEncoding = errors.New("non canonical encoding: data not packed minimally or trailing bytes present")
	ErrMalformedEncoding    = errors.New("malformed encoding: structure invalid or truncated")
	ErrTooLargeAlloc        = errors.New("too large allocation: decoded size exceeds limits")
)

// MaxAlloc limits a single decoded string or byte slice.
const MaxAlloc = 1024 * 1024

// MaxBigUintBytes is the widest magnitude a length byte can announce.
const MaxBigUintBytes = 255

// Writer appends canonical encodings to a byte buffer.
type Writer struct {
	BytesW *fast.Writer
}

// Reader decodes canonical encodings from a byte buffer.
type Reader struct {
	BytesR *fast.Reader
}

// NewWriter creates a ready-to-use Writer.
func NewWriter() *Writer {
	return &Writer{
		BytesW: fast.NewWriter(make([]byte, 0, 64)),
	}
}

// NewReader creates a Reader over raw.
func NewReader(raw []byte) *Reader {
	return &Reader{
		BytesR: fast.NewReader(raw),
	}
}

// Bytes returns everything written so far.
func (w *Writer) Bytes() []byte {
	return w.BytesW.Bytes()
}

// U8 writes one byte.
func (w *Writer) U8(v uint8) {
	w.BytesW.WriteByte(v)
}

// U8 reads one byte.
func (r *Reader) U8() uint8 {
	return r.BytesR.ReadByte()
}

// Bool writes 0x00 or 0x01.
func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
	} else {
		w.U8(0)
	}
}

// Bool rejects any byte other than 0x00 and 0x01.
func (r *Reader) Bool() bool {
	switch r.U8() {
	case 0:
		return false
	case 1:
		return true
	default:
		panic(ErrNonCanonicalEncoding)
	}
}

// U32 writes 4 bytes, little-endian.
func (w *Writer) U32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.BytesW.Write(buf[:])
}

// U32 reads 4 little-endian bytes. A short input panics inside the byte
// layer and is reported by UnmarshalBinaryAdapter as ErrMalformedEncoding.
func (r *Reader) U32() uint32 {
	return binary.LittleEndian.Uint32(r.BytesR.Read(4))
}

// U64 writes 8 bytes, little-endian.
func (w *Writer) U64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	w.BytesW.Write(buf[:])
}

// U64 reads 8 little-endian bytes.
func (r *Reader) U64() uint64 {
	return binary.LittleEndian.Uint64(r.BytesR.Read(8))
}

// I32 writes the two's complement of v in 4 little-endian bytes.
func (w *Writer) I32(v int32) {
	w.U32(uint32(v))
}

// I32 reads what Writer.I32 wrote.
func (r *Reader) I32() int32 {
	return int32(r.U32())
}

// I64 writes the two's complement of v in 8 little-endian bytes.
func (w *Writer) I64(v int64) {
	w.U64(uint64(v))
}

func (r *Reader) I64() int64 {
	return int64(r.U64())
}

// FixedBytes writes v with no length prefix.
func (w *Writer) FixedBytes(v []byte) {
	w.BytesW.Write(v)
}

// FixedBytes fills v from the stream.
func (r *Reader) FixedBytes(v []byte) {
	copy(v, r.BytesR.Read(len(v)))
}

// SliceBytes writes a u32 length followed by v.
func (w *Writer) SliceBytes(v []byte) {
	w.U32(uint32(len(v)))
	w.FixedBytes(v)
}

// SliceBytes reads a u32 length and then that many bytes. The length is
// checked against both maxLen and the bytes actually left, so a forged
// length never causes a large allocation.
func (r *Reader) SliceBytes(maxLen int) []byte {
	size := r.Len(maxLen)
	if size > r.BytesR.Remaining() {
		panic(ErrMalformedEncoding)
	}
	buf := make([]byte, size)
	r.FixedBytes(buf)
	return buf
}

// String writes a u32 byte length followed by the UTF-8 bytes of v.
func (w *Writer) String(v string) {
	w.SliceBytes([]byte(v))
}

func (r *Reader) String(maxLen int) string {
	buf := r.SliceBytes(maxLen)
	if !utf8.Valid(buf) {
		panic(ErrMalformedEncoding)
	}
	return string(buf)
}

// Len reads a u32 count or length and rejects it when it exceeds maxLen.
func (r *Reader) Len(maxLen int) int {
	size := r.U32()
	if uint64(size) > uint64(maxLen) {
		panic(ErrTooLargeAlloc)
	}
	return int(size)
}

// BigUint writes a non-negative integer as one length byte followed by its
// little-endian magnitude with trailing zero bytes trimmed. Zero is 0x00.
func (w *Writer) BigUint(v *big.Int) {
	if v.Sign() < 0 {
		panic("negative value for unsigned big integer")
	}
	be := v.Bytes()
	if len(be) > MaxBigUintBytes {
		panic("big integer magnitude exceeds 255 bytes")
	}
	w.U8(uint8(len(be)))
	w.FixedBytes(reversed(be))
}

// BigUint reads a value written by Writer.BigUint whose magnitude is at most
// maxBytes long. A zero top byte is rejected as non-canonical.
func (r *Reader) BigUint(maxBytes int) *big.Int {
	size := int(r.U8())
	if size > maxBytes {
		panic(ErrMalformedEncoding)
	}
	le := r.BytesR.Read(size)
	if size > 0 && le[size-1] == 0 {
		panic(ErrNonCanonicalEncoding)
	}
	return new(big.Int).SetBytes(reversed(le))
}
