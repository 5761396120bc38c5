package clvalue

import (
	"github.com/rony4d/go-deploy-args/cltype"
	"github.com/rony4d/go-deploy-args/utils/cser"
)

// Encode returns the canonical bytes of v. It is deterministic and never
// fails for a constructed Value.
func Encode(v Value) []byte {
	w := cser.NewWriter()
	v.encode(w)
	return w.Bytes()
}

func (v Bool) encode(w *cser.Writer)   { w.Bool(bool(v)) }
func (v I32) encode(w *cser.Writer)    { w.I32(int32(v)) }
func (v I64) encode(w *cser.Writer)    { w.I64(int64(v)) }
func (v U8) encode(w *cser.Writer)     { w.U8(uint8(v)) }
func (v U32) encode(w *cser.Writer)    { w.U32(uint32(v)) }
func (v U64) encode(w *cser.Writer)    { w.U64(uint64(v)) }
func (Unit) encode(*cser.Writer)       {}
func (v String) encode(w *cser.Writer) { w.String(string(v)) }
func (v Bytes) encode(w *cser.Writer)  { w.SliceBytes(v) }

func (v BigUint) encode(w *cser.Writer) {
	w.BigUint(v.v)
}

func (v FixedBytes) encode(w *cser.Writer) {
	w.FixedBytes(v.b)
}

func (v URef) encode(w *cser.Writer) {
	w.FixedBytes(v.Address.Bytes())
	w.U8(uint8(v.Rights))
}

func (v Key) encode(w *cser.Writer) {
	w.U8(uint8(v.kind))
	if v.kind == KeyURef {
		URef(v.ref).encode(w)
		return
	}
	w.FixedBytes(v.hash.Bytes())
}

const (
	optionNone = 0
	optionSome = 1
)

func (v Option) encode(w *cser.Writer) {
	if v.v == nil {
		w.U8(optionNone)
		return
	}
	w.U8(optionSome)
	v.v.encode(w)
}

func (v List) encode(w *cser.Writer) {
	w.U32(uint32(len(v.items)))
	for _, it := range v.items {
		it.encode(w)
	}
}

// The count of a FixedList is implied by its type.
func (v FixedList) encode(w *cser.Writer) {
	for _, it := range v.items {
		it.encode(w)
	}
}

func (v Tuple) encode(w *cser.Writer) {
	for _, it := range v.items {
		it.encode(w)
	}
}

func (v Map) encode(w *cser.Writer) {
	w.U32(uint32(len(v.entries)))
	for _, e := range v.entries {
		e.Key.encode(w)
		e.Value.encode(w)
	}
}

// EncodeType returns the descriptor bytes of t: the tag byte followed by the
// descriptors of its children. FixedBytes and FixedList append their length
// as a little-endian u32.
func EncodeType(t cltype.Type) []byte {
	w := cser.NewWriter()
	encodeType(w, t)
	return w.Bytes()
}

func encodeType(w *cser.Writer, t cltype.Type) {
	w.U8(uint8(t.Tag()))
	switch t.Tag() {
	case cltype.TagFixedBytes:
		w.U32(t.Len())
	case cltype.TagOption:
		inner, _ := t.Inner()
		encodeType(w, inner)
	case cltype.TagFixedList:
		encodeType(w, t.Elem(0).Type())
		w.U32(t.Len())
	case cltype.TagList, cltype.TagTuple1, cltype.TagTuple2, cltype.TagTuple3, cltype.TagMap:
		for _, e := range t.Elems() {
			encodeType(w, e.Type())
		}
	}
}
