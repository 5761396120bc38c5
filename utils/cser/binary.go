package cser

import "github.com/rony4d/go-deploy-args/utils/fast"

// binary.go connects the Writer/Reader primitives to whole byte slices.
//
// The canonical argument format has no framing of its own: the output of
// MarshalBinaryAdapter is exactly the bytes written, and
// UnmarshalBinaryAdapter requires the callback to consume every input byte.
//
// Use Case:
// - Encoding a named argument list, where the callback may still refuse the
//   input halfway through (an unnamed or duplicate argument).
// - Decoding a value of a known type from untrusted bytes.

// MarshalBinaryAdapter runs marshalCser against a fresh Writer and returns the
// bytes it produced.
//
// The steps are:
//  1. create an empty Writer;
//  2. let the callback write every field in wire order;
//  3. if the callback fails, drop the partial output and return only the
//     error, so a caller never sees half an encoding.
func MarshalBinaryAdapter(marshalCser func(*Writer) error) ([]byte, error) {
	w := NewWriter()
	if err := marshalCser(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// UnmarshalBinaryAdapter runs unmarshalCser over raw and turns the Reader's
// panics back into ordinary errors.
//
// The steps are:
//  1. arm a recover so a panic anywhere in the callback stops decoding;
//  2. run the callback over a Reader positioned at the first byte;
//  3. require the Reader to be exhausted. Trailing bytes would give one value
//     two encodings, so they are ErrNonCanonicalEncoding.
//
// A truncated input surfaces as fast.ErrShortBuffer from the byte layer and
// is reported as ErrMalformedEncoding.
func UnmarshalBinaryAdapter(raw []byte, unmarshalCser func(reader *Reader) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recoveredError(r)
		}
	}()

	reader := NewReader(raw)
	if err = unmarshalCser(reader); err != nil {
		return err
	}
	if !reader.BytesR.Empty() {
		return ErrNonCanonicalEncoding
	}
	return nil
}

func recoveredError(r interface{}) error {
	if e, ok := r.(error); ok {
		switch e {
		case ErrNonCanonicalEncoding, ErrMalformedEncoding, ErrTooLargeAlloc:
			return e
		case fast.ErrShortBuffer:
			return ErrMalformedEncoding
		}
	}
	return ErrMalformedEncoding
}

// reversed returns a new slice holding b in reverse order. It converts between
// the big-endian bytes of math/big and the little-endian wire order.
func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}
