// Package cltype describes the shapes of deploy argument values.
//
// A Type is a closed, tagged description: primitives carry no payload
// (FixedBytes carries its length), composites carry their children.
// Collections and tuples take Simple children only, so a nested composite
// such as List(List(U8)) cannot be constructed. Option is the one composite
// whose inner type may be any Type.
package cltype

import (
	"strconv"
	"strings"
)

// Tag identifies a variant of Type.
type Tag uint8

const (
	TagBool Tag = iota
	TagI32
	TagI64
	TagU8
	TagU32
	TagU64
	TagU128
	TagU256
	TagU512
	TagUnit
	TagString
	TagKey
	TagURef
	TagBytes
	TagFixedBytes
	TagOption
	TagList
	TagFixedList
	TagTuple1
	TagTuple2
	TagTuple3
	TagMap
)

var tagNames = [...]string{
	TagBool:       "Bool",
	TagI32:        "I32",
	TagI64:        "I64",
	TagU8:         "U8",
	TagU32:        "U32",
	TagU64:        "U64",
	TagU128:       "U128",
	TagU256:       "U256",
	TagU512:       "U512",
	TagUnit:       "Unit",
	TagString:     "String",
	TagKey:        "Key",
	TagURef:       "URef",
	TagBytes:      "Bytes",
	TagFixedBytes: "FixedBytes",
	TagOption:     "Option",
	TagList:       "List",
	TagFixedList:  "FixedList",
	TagTuple1:     "Tuple1",
	TagTuple2:     "Tuple2",
	TagTuple3:     "Tuple3",
	TagMap:        "Map",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "Tag(" + strconv.Itoa(int(t)) + ")"
}

// Valid reports whether t is one of the declared tags.
func (t Tag) Valid() bool {
	return t <= TagMap
}

// IsPrimitive is false only for Option, List, FixedList, the tuples and Map.
func (t Tag) IsPrimitive() bool {
	return t <= TagFixedBytes
}

// Simple is a non-composite type. It is the only kind of type that may appear
// as an element of List, FixedList, Tuple and Map. Simple is comparable.
type Simple struct {
	tag    Tag
	length uint32
}

// Primitive types.
var (
	Bool   = Simple{tag: TagBool}
	I32    = Simple{tag: TagI32}
	I64    = Simple{tag: TagI64}
	U8     = Simple{tag: TagU8}
	U32    = Simple{tag: TagU32}
	U64    = Simple{tag: TagU64}
	U128   = Simple{tag: TagU128}
	U256   = Simple{tag: TagU256}
	U512   = Simple{tag: TagU512}
	Unit   = Simple{tag: TagUnit}
	String = Simple{tag: TagString}
	Key    = Simple{tag: TagKey}
	URef   = Simple{tag: TagURef}
	Bytes  = Simple{tag: TagBytes}
)

// FixedBytes is a byte array of exactly n bytes.
func FixedBytes(n uint32) Simple {
	return Simple{tag: TagFixedBytes, length: n}
}

// Tag returns the variant tag.
func (s Simple) Tag() Tag {
	return s.tag
}

// Len is the declared length of FixedBytes and zero otherwise.
func (s Simple) Len() uint32 {
	return s.length
}

// Type lifts s to a Type.
func (s Simple) Type() Type {
	return Type{tag: s.tag, length: s.length}
}

func (s Simple) String() string {
	return s.Type().String()
}

// Type is a full type description.
type Type struct {
	tag    Tag
	length uint32
	elems  []Simple
	inner  *Type
}

// Option is a value of type inner that may be absent.
func Option(inner Type) Type {
	in := inner
	return Type{tag: TagOption, inner: &in}
}

// List is a variable-length sequence of elem.
func List(elem Simple) Type {
	return Type{tag: TagList, elems: []Simple{elem}}
}

// FixedList is a sequence of exactly n values of elem.
func FixedList(elem Simple, n uint32) Type {
	return Type{tag: TagFixedList, length: n, elems: []Simple{elem}}
}

func Tuple1(a Simple) Type {
	return Type{tag: TagTuple1, elems: []Simple{a}}
}

func Tuple2(a, b Simple) Type {
	return Type{tag: TagTuple2, elems: []Simple{a, b}}
}

func Tuple3(a, b, c Simple) Type {
	return Type{tag: TagTuple3, elems: []Simple{a, b, c}}
}

// Tuple picks Tuple1, Tuple2 or Tuple3 by the number of elements.
// It returns false for any other arity.
func Tuple(elems ...Simple) (Type, bool) {
	switch len(elems) {
	case 1:
		return Tuple1(elems[0]), true
	case 2:
		return Tuple2(elems[0], elems[1]), true
	case 3:
		return Tuple3(elems[0], elems[1], elems[2]), true
	}
	return Type{}, false
}

// Map is an ordered collection of key/value entries.
func Map(key, value Simple) Type {
	return Type{tag: TagMap, elems: []Simple{key, value}}
}

// Tag returns the variant tag.
func (t Type) Tag() Tag {
	return t.tag
}

// IsPrimitive reports whether t is not a composite.
func (t Type) IsPrimitive() bool {
	return t.tag.IsPrimitive()
}

// Simple narrows t to a Simple. ok is false for composites.
func (t Type) Simple() (s Simple, ok bool) {
	if !t.IsPrimitive() {
		return Simple{}, false
	}
	return Simple{tag: t.tag, length: t.length}, true
}

// Len is the declared length of FixedBytes and FixedList, zero otherwise.
func (t Type) Len() uint32 {
	return t.length
}

// Elems returns the element types: one for List and FixedList, the tuple
// members in order, or key then value for Map. Nil for other tags.
func (t Type) Elems() []Simple {
	if len(t.elems) == 0 {
		return nil
	}
	out := make([]Simple, len(t.elems))
	copy(out, t.elems)
	return out
}

// Elem returns the i-th element type. It panics when out of range.
func (t Type) Elem(i int) Simple {
	return t.elems[i]
}

// NumElems is the number of element types.
func (t Type) NumElems() int {
	return len(t.elems)
}

// Inner returns the wrapped type of an Option. ok is false for other tags.
func (t Type) Inner() (inner Type, ok bool) {
	if t.tag != TagOption || t.inner == nil {
		return Type{}, false
	}
	return *t.inner, true
}

// Equal reports structural equality.
func (t Type) Equal(o Type) bool {
	if t.tag != o.tag || t.length != o.length || len(t.elems) != len(o.elems) {
		return false
	}
	for i := range t.elems {
		if t.elems[i] != o.elems[i] {
			return false
		}
	}
	if t.tag == TagOption {
		ti, _ := t.Inner()
		oi, _ := o.Inner()
		return ti.Equal(oi)
	}
	return true
}

// String renders t in the grammar accepted by Parse, e.g. "Map(String, U64)".
func (t Type) String() string {
	switch t.tag {
	case TagFixedBytes:
		return "FixedBytes(" + strconv.FormatUint(uint64(t.length), 10) + ")"
	case TagOption:
		inner, _ := t.Inner()
		return "Option(" + inner.String() + ")"
	case TagFixedList:
		return "FixedList(" + t.elems[0].String() + ", " + strconv.FormatUint(uint64(t.length), 10) + ")"
	case TagList, TagTuple1, TagTuple2, TagTuple3, TagMap:
		parts := make([]string, len(t.elems))
		for i, e := range t.elems {
			parts[i] = e.String()
		}
		return t.tag.String() + "(" + strings.Join(parts, ", ") + ")"
	default:
		return t.tag.String()
	}
}
