package clvalue

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-deploy-args/cltype"
	"github.com/rony4d/go-deploy-args/uref"
	"github.com/rony4d/go-deploy-args/utils/cser"
)

// Decode parses the canonical encoding of a value of type t. The input must
// be canonical and fully consumed; otherwise the error is one of the cser
// sentinel errors.
func Decode(t cltype.Type, b []byte) (Value, error) {
	var v Value
	err := cser.UnmarshalBinaryAdapter(b, func(r *cser.Reader) error {
		v = decodeValue(r, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func decodeValue(r *cser.Reader, t cltype.Type) Value {
	switch t.Tag() {
	case cltype.TagBool:
		return Bool(r.Bool())
	case cltype.TagI32:
		return I32(r.I32())
	case cltype.TagI64:
		return I64(r.I64())
	case cltype.TagU8:
		return U8(r.U8())
	case cltype.TagU32:
		return U32(r.U32())
	case cltype.TagU64:
		return U64(r.U64())
	case cltype.TagU128, cltype.TagU256, cltype.TagU512:
		s, _ := t.Simple()
		return BigUint{typ: s, v: r.BigUint(int(bigWidths[t.Tag()]) / 8)}
	case cltype.TagUnit:
		return Unit{}
	case cltype.TagString:
		return String(r.String(cser.MaxAlloc))
	case cltype.TagBytes:
		return Bytes(r.SliceBytes(cser.MaxAlloc))
	case cltype.TagFixedBytes:
		if t.Len() > cser.MaxAlloc {
			panic(cser.ErrTooLargeAlloc)
		}
		buf := make([]byte, t.Len())
		r.FixedBytes(buf)
		return FixedBytes{b: buf}
	case cltype.TagURef:
		return URef(decodeURef(r))
	case cltype.TagKey:
		return decodeKey(r)
	case cltype.TagOption:
		inner, _ := t.Inner()
		switch r.U8() {
		case optionNone:
			return None(inner)
		case optionSome:
			return Option{inner: inner, v: decodeValue(r, inner)}
		default:
			panic(cser.ErrNonCanonicalEncoding)
		}
	case cltype.TagList:
		elem := t.Elem(0)
		return List{elem: elem, items: decodeItems(r, elem, r.Len(cser.MaxAlloc))}
	case cltype.TagFixedList:
		if t.Len() > cser.MaxAlloc {
			panic(cser.ErrTooLargeAlloc)
		}
		elem := t.Elem(0)
		return FixedList{elem: elem, items: decodeItems(r, elem, int(t.Len()))}
	case cltype.TagTuple1, cltype.TagTuple2, cltype.TagTuple3:
		items := make([]Value, t.NumElems())
		for i := range items {
			items[i] = decodeValue(r, t.Elem(i).Type())
		}
		return Tuple{items: items}
	case cltype.TagMap:
		m := Map{key: t.Elem(0), val: t.Elem(1)}
		n := r.Len(cser.MaxAlloc)
		m.entries = make([]MapEntry, n)
		for i := range m.entries {
			m.entries[i].Key = decodeValue(r, m.key.Type())
			m.entries[i].Value = decodeValue(r, m.val.Type())
		}
		return m
	}
	panic(cser.ErrMalformedEncoding)
}

func decodeItems(r *cser.Reader, elem cltype.Simple, n int) []Value {
	if n == 0 {
		return nil
	}
	items := make([]Value, n)
	for i := range items {
		items[i] = decodeValue(r, elem.Type())
	}
	return items
}

func decodeURef(r *cser.Reader) uref.URef {
	var u uref.URef
	r.FixedBytes(u.Address[:])
	u.Rights = uref.AccessRights(r.U8())
	return u
}

func decodeKey(r *cser.Reader) Key {
	kind := KeyKind(r.U8())
	switch kind {
	case KeyAccount, KeyHash:
		var h common.Hash
		r.FixedBytes(h[:])
		return Key{kind: kind, hash: h}
	case KeyURef:
		return URefKey(decodeURef(r))
	}
	panic(cser.ErrMalformedEncoding)
}

// DecodeType is the inverse of EncodeType.
func DecodeType(b []byte) (cltype.Type, error) {
	var t cltype.Type
	err := cser.UnmarshalBinaryAdapter(b, func(r *cser.Reader) error {
		t = decodeType(r, true)
		return nil
	})
	return t, err
}

// decodeType reads one descriptor. Composite descriptors are accepted only
// where allowComposite is set, i.e. at the top and inside Option.
func decodeType(r *cser.Reader, allowComposite bool) cltype.Type {
	tag := cltype.Tag(r.U8())
	if !tag.Valid() || (!allowComposite && !tag.IsPrimitive()) {
		panic(cser.ErrMalformedEncoding)
	}
	simple := func() cltype.Simple {
		s, _ := decodeType(r, false).Simple()
		return s
	}
	switch tag {
	case cltype.TagFixedBytes:
		return cltype.FixedBytes(r.U32()).Type()
	case cltype.TagOption:
		return cltype.Option(decodeType(r, true))
	case cltype.TagList:
		return cltype.List(simple())
	case cltype.TagFixedList:
		elem := simple()
		return cltype.FixedList(elem, r.U32())
	case cltype.TagTuple1:
		return cltype.Tuple1(simple())
	case cltype.TagTuple2:
		a := simple()
		return cltype.Tuple2(a, simple())
	case cltype.TagTuple3:
		a := simple()
		b := simple()
		return cltype.Tuple3(a, b, simple())
	case cltype.TagMap:
		k := simple()
		return cltype.Map(k, simple())
	}
	return primitiveOf(tag).Type()
}

var primitives = []cltype.Simple{
	cltype.Bool, cltype.I32, cltype.I64, cltype.U8, cltype.U32, cltype.U64,
	cltype.U128, cltype.U256, cltype.U512, cltype.Unit, cltype.String,
	cltype.Key, cltype.URef, cltype.Bytes,
}

func primitiveOf(tag cltype.Tag) cltype.Simple {
	for _, s := range primitives {
		if s.Tag() == tag {
			return s
		}
	}
	panic(cser.ErrMalformedEncoding)
}
