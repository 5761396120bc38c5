// Package clvalue holds typed deploy argument values and their canonical
// little-endian encoding.
//
// Value is a closed set: every variant is declared in this package and
// knows its own cltype.Type, so a Value can always be encoded without
// further context. Values are immutable after construction.
package clvalue

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-deploy-args/cltype"
	"github.com/rony4d/go-deploy-args/uref"
	"github.com/rony4d/go-deploy-args/utils/bounds"
	"github.com/rony4d/go-deploy-args/utils/cser"
)

// Value is a typed deploy argument value.
type Value interface {
	Type() cltype.Type
	encode(w *cser.Writer)
}

// ContractViolation is the panic value of constructors handed inconsistent
// input, such as list elements of different types.
type ContractViolation struct {
	Reason string
}

func (e *ContractViolation) Error() string {
	return "contract violation: " + e.Reason
}

func violate(format string, args ...interface{}) {
	panic(&ContractViolation{Reason: fmt.Sprintf(format, args...)})
}

// The fixed-width scalars are plain named Go types, so a literal such as
// U32(7) is already a complete Value. Their encodings are:
//
//   - Bool: one byte, 0x00 or 0x01;
//   - I32, I64: two's complement in 4 or 8 little-endian bytes;
//   - U8, U32, U64: 1, 4 or 8 little-endian bytes;
//   - Unit: nothing at all;
//   - String, Bytes: a u32 length followed by the raw bytes.
//
// Wider unsigned integers need a range check on construction and live in
// BigUint below.
type (
	Bool   bool
	I32    int32
	I64    int64
	U8     uint8
	U32    uint32
	U64    uint64
	Unit   struct{}
	String string
	// Bytes is a variable-length byte string.
	Bytes []byte
)

func (Bool) Type() cltype.Type   { return cltype.Bool.Type() }
func (I32) Type() cltype.Type    { return cltype.I32.Type() }
func (I64) Type() cltype.Type    { return cltype.I64.Type() }
func (U8) Type() cltype.Type     { return cltype.U8.Type() }
func (U32) Type() cltype.Type    { return cltype.U32.Type() }
func (U64) Type() cltype.Type    { return cltype.U64.Type() }
func (Unit) Type() cltype.Type   { return cltype.Unit.Type() }
func (String) Type() cltype.Type { return cltype.String.Type() }
func (Bytes) Type() cltype.Type  { return cltype.Bytes.Type() }

// BigUint is a U128, U256 or U512 value.
type BigUint struct {
	typ cltype.Simple
	v   *big.Int
}

var bigWidths = map[cltype.Tag]bounds.Width{
	cltype.TagU128: bounds.W128,
	cltype.TagU256: bounds.W256,
	cltype.TagU512: bounds.W512,
}

func newBigUint(t cltype.Simple, v *big.Int) BigUint {
	if v == nil || !bounds.InBounds(v, bigWidths[t.Tag()], false) {
		violate("%v is out of range for %s", v, t)
	}
	return BigUint{typ: t, v: new(big.Int).Set(v)}
}

// U128 panics unless v is in [0, 2^128-1].
func U128(v *big.Int) BigUint { return newBigUint(cltype.U128, v) }

// U256 panics unless v is in [0, 2^256-1].
func U256(v *big.Int) BigUint { return newBigUint(cltype.U256, v) }

// U512 panics unless v is in [0, 2^512-1].
func U512(v *big.Int) BigUint { return newBigUint(cltype.U512, v) }

func (b BigUint) Type() cltype.Type { return b.typ.Type() }

// Int returns a copy of the value.
func (b BigUint) Int() *big.Int { return new(big.Int).Set(b.v) }

// FixedBytes is a byte array whose length is part of its type.
type FixedBytes struct {
	b []byte
}

// NewFixedBytes copies b.
func NewFixedBytes(b []byte) FixedBytes {
	return FixedBytes{b: common.CopyBytes(b)}
}

func (f FixedBytes) Type() cltype.Type { return cltype.FixedBytes(uint32(len(f.b))).Type() }

// Bytes returns a copy of the content.
func (f FixedBytes) Bytes() []byte { return common.CopyBytes(f.b) }

// URef is a reference value.
type URef uref.URef

func (URef) Type() cltype.Type { return cltype.URef.Type() }

// Ref converts back to uref.URef.
func (u URef) Ref() uref.URef { return uref.URef(u) }

// KeyKind selects the active variant of a Key. Its value is the
// discriminant byte of the encoding.
type KeyKind uint8

const (
	KeyAccount KeyKind = 0
	KeyHash    KeyKind = 1
	KeyURef    KeyKind = 2
)

func (k KeyKind) String() string {
	switch k {
	case KeyAccount:
		return "Account"
	case KeyHash:
		return "Hash"
	case KeyURef:
		return "URef"
	}
	return fmt.Sprintf("KeyKind(%d)", uint8(k))
}

// Key addresses global state by account hash, contract hash or URef.
type Key struct {
	kind KeyKind
	hash common.Hash
	ref  uref.URef
}

// AccountKey addresses an account by its account hash.
func AccountKey(h common.Hash) Key { return Key{kind: KeyAccount, hash: h} }

// HashKey addresses a contract or other hashed item.
func HashKey(h common.Hash) Key { return Key{kind: KeyHash, hash: h} }

// URefKey addresses the value behind u.
func URefKey(u uref.URef) Key { return Key{kind: KeyURef, ref: u} }

func (Key) Type() cltype.Type { return cltype.Key.Type() }

// Kind returns the active variant.
func (k Key) Kind() KeyKind { return k.kind }

// Hash returns the address of an Account or Hash key. ok is false for URef keys.
func (k Key) Hash() (h common.Hash, ok bool) {
	return k.hash, k.kind != KeyURef
}

// URef returns the reference of a URef key. ok is false for other kinds.
func (k Key) URef() (u uref.URef, ok bool) {
	return k.ref, k.kind == KeyURef
}

// Option is a present or absent value of a known inner type.
type Option struct {
	inner cltype.Type
	v     Value
}

// None is an absent value of type inner.
func None(inner cltype.Type) Option {
	return Option{inner: inner}
}

// Some wraps a present value.
func Some(v Value) Option {
	if v == nil {
		violate("Some of nil value")
	}
	return Option{inner: v.Type(), v: v}
}

func (o Option) Type() cltype.Type { return cltype.Option(o.inner) }

// IsSome reports whether a value is present.
func (o Option) IsSome() bool { return o.v != nil }

// Get returns the present value.
func (o Option) Get() (Value, bool) { return o.v, o.v != nil }

// Inner is the type of the wrapped value, known even when absent.
func (o Option) Inner() cltype.Type { return o.inner }

func elemOf(v Value) cltype.Simple {
	s, ok := v.Type().Simple()
	if !ok {
		violate("composite %s is not allowed as an element", v.Type())
	}
	return s
}

func checkElems(elem cltype.Simple, items []Value) []Value {
	out := make([]Value, len(items))
	for i, it := range items {
		if it == nil {
			violate("element %d is nil", i)
		}
		if got := elemOf(it); got != elem {
			violate("element %d is %s, expected %s", i, got, elem)
		}
		out[i] = it
	}
	return out
}

// List is a variable-length sequence of one element type.
type List struct {
	elem  cltype.Simple
	items []Value
}

// NewList builds a non-empty list. All items must share one element type;
// use EmptyList for zero items.
func NewList(items ...Value) List {
	if len(items) == 0 {
		violate("empty list needs an element type, use EmptyList")
	}
	elem := elemOf(items[0])
	return List{elem: elem, items: checkElems(elem, items)}
}

// EmptyList is a list with no items.
func EmptyList(elem cltype.Simple) List {
	return List{elem: elem}
}

func (l List) Type() cltype.Type { return cltype.List(l.elem) }

// Len is the number of items.
func (l List) Len() int { return len(l.items) }

// Items returns the items in order.
func (l List) Items() []Value { return append([]Value(nil), l.items...) }

// FixedList is a sequence whose length is part of its type.
type FixedList struct {
	elem  cltype.Simple
	items []Value
}

// NewFixedList builds a FixedList of len(items).
func NewFixedList(items ...Value) FixedList {
	if len(items) == 0 {
		violate("empty fixed list needs an element type, use EmptyFixedList")
	}
	elem := elemOf(items[0])
	return FixedList{elem: elem, items: checkElems(elem, items)}
}

// EmptyFixedList is a FixedList of length zero.
func EmptyFixedList(elem cltype.Simple) FixedList {
	return FixedList{elem: elem}
}

func (l FixedList) Type() cltype.Type { return cltype.FixedList(l.elem, uint32(len(l.items))) }

func (l FixedList) Len() int { return len(l.items) }

func (l FixedList) Items() []Value { return append([]Value(nil), l.items...) }

// Tuple holds one to three values of non-composite types.
type Tuple struct {
	items []Value
}

// NewTuple builds a Tuple1, Tuple2 or Tuple3.
func NewTuple(items ...Value) Tuple {
	if len(items) < 1 || len(items) > 3 {
		violate("tuples hold 1 to 3 values, got %d", len(items))
	}
	for i, it := range items {
		if it == nil {
			violate("tuple element %d is nil", i)
		}
		elemOf(it)
	}
	return Tuple{items: append([]Value(nil), items...)}
}

func (t Tuple) Type() cltype.Type {
	elems := make([]cltype.Simple, len(t.items))
	for i, it := range t.items {
		elems[i] = elemOf(it)
	}
	typ, _ := cltype.Tuple(elems...)
	return typ
}

func (t Tuple) Len() int { return len(t.items) }

func (t Tuple) Items() []Value { return append([]Value(nil), t.items...) }

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   Value
	Value Value
}

// Map is an insertion-ordered list of entries. Keys are not deduplicated.
type Map struct {
	key, val cltype.Simple
	entries  []MapEntry
}

// NewMap builds a non-empty map. All keys share one type, as do all values.
func NewMap(entries ...MapEntry) Map {
	if len(entries) == 0 {
		violate("empty map needs key and value types, use EmptyMap")
	}
	if entries[0].Key == nil || entries[0].Value == nil {
		violate("map entry 0 is incomplete")
	}
	m := Map{key: elemOf(entries[0].Key), val: elemOf(entries[0].Value)}
	m.entries = make([]MapEntry, len(entries))
	for i, e := range entries {
		if e.Key == nil || e.Value == nil {
			violate("map entry %d is incomplete", i)
		}
		if k := elemOf(e.Key); k != m.key {
			violate("key of entry %d is %s, expected %s", i, k, m.key)
		}
		if v := elemOf(e.Value); v != m.val {
			violate("value of entry %d is %s, expected %s", i, v, m.val)
		}
		m.entries[i] = e
	}
	return m
}

// EmptyMap is a map with no entries.
func EmptyMap(key, val cltype.Simple) Map {
	return Map{key: key, val: val}
}

func (m Map) Type() cltype.Type { return cltype.Map(m.key, m.val) }

func (m Map) Len() int { return len(m.entries) }

// Entries returns the entries in insertion order.
func (m Map) Entries() []MapEntry { return append([]MapEntry(nil), m.entries...) }
