package deployarg

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-deploy-args/cltype"
	"github.com/rony4d/go-deploy-args/clvalue"
	"github.com/rony4d/go-deploy-args/uref"
)

// KeyShape is the construction data of a Key or URef slot that cannot be
// recovered from the hex input: which Key variant to build, and the access
// rights of a URef. The zero KeyShape is unset.
type KeyShape struct {
	set    bool
	kind   clvalue.KeyKind
	rights uref.AccessRights
}

// AccountShape builds Key slots as account keys.
func AccountShape() KeyShape {
	return KeyShape{set: true, kind: clvalue.KeyAccount}
}

// HashShape builds Key slots as hash keys.
func HashShape() KeyShape {
	return KeyShape{set: true, kind: clvalue.KeyHash}
}

// URefShape builds URef slots, and Key slots as URef keys, with the given
// rights. It is the only shape accepted by a URef slot.
func URefShape(rights uref.AccessRights) KeyShape {
	return KeyShape{set: true, kind: clvalue.KeyURef, rights: rights}
}

// IsSet reports whether s was made by one of the shape constructors.
func (s KeyShape) IsSet() bool { return s.set }

// Kind is the Key variant the shape builds.
func (s KeyShape) Kind() clvalue.KeyKind { return s.kind }

// Rights are the access rights of a URef shape.
func (s KeyShape) Rights() (uref.AccessRights, bool) {
	return s.rights, s.set && s.kind == clvalue.KeyURef
}

// String renders the form read by ParseKeyShape.
func (s KeyShape) String() string {
	if !s.set {
		return "unset"
	}
	switch s.kind {
	case clvalue.KeyAccount:
		return "account"
	case clvalue.KeyHash:
		return "hash"
	}
	return "uref:" + s.rights.String()
}

// ParseKeyShape reads "account", "hash" or "uref:<rights>", where rights is
// anything uref.ParseAccessRights accepts.
func ParseKeyShape(s string) (KeyShape, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch lower {
	case "account":
		return AccountShape(), nil
	case "hash":
		return HashShape(), nil
	}
	if strings.HasPrefix(lower, "uref:") {
		rights, err := uref.ParseAccessRights(lower[len("uref:"):])
		if err != nil {
			return KeyShape{}, err
		}
		return URefShape(rights), nil
	}
	return KeyShape{}, fmt.Errorf("unknown key shape %q", s)
}

// UnmarshalYAML reads a shape from its string form.
func (s *KeyShape) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	res, err := ParseKeyShape(str)
	if err != nil {
		return err
	}
	*s = res
	return nil
}

// Decl declares an argument: its type and, per Key or URef slot, the
// KeyShape to build it with. Slots are numbered by position in the type:
// a primitive, List, FixedList or Option element is slot 0, tuple member i
// is slot i, and a Map key and value are slots 0 and 1.
type Decl struct {
	Type   cltype.Type
	Shapes []KeyShape
}

// Simple declares an argument of type t with no Key or URef slots.
func Simple(t cltype.Type) Decl {
	return Decl{Type: t}
}

func (d Decl) shape(slot int) KeyShape {
	if slot < len(d.Shapes) {
		return d.Shapes[slot]
	}
	return KeyShape{}
}

// slots lists the element type at every slot of t.
func slots(t cltype.Type) []cltype.Simple {
	switch t.Tag() {
	case cltype.TagOption:
		inner, _ := t.Inner()
		return slots(inner)
	case cltype.TagList, cltype.TagFixedList, cltype.TagTuple1, cltype.TagTuple2, cltype.TagTuple3, cltype.TagMap:
		return t.Elems()
	}
	s, _ := t.Simple()
	return []cltype.Simple{s}
}

// Check reports a Key slot without a shape, or a URef slot whose shape is
// not a URef shape.
func (d Decl) Check() error {
	for i, s := range slots(d.Type) {
		switch s.Tag() {
		case cltype.TagKey:
			if !d.shape(i).IsSet() {
				return &ContractViolation{Reason: fmt.Sprintf("slot %d of %s is a Key without a key shape", i, d.Type)}
			}
		case cltype.TagURef:
			if _, ok := d.shape(i).Rights(); !ok {
				return &ContractViolation{Reason: fmt.Sprintf("slot %d of %s is a URef without access rights", i, d.Type)}
			}
		}
	}
	return nil
}

// ParseTyped validates raw against d and builds the value. Validation
// failures are returned as from Validate, declaration errors as
// *ContractViolation.
func ParseTyped(d Decl, raw interface{}) (v clvalue.Value, err error) {
	if err := Validate(d.Type, raw); err != nil {
		return nil, err
	}
	if err := d.Check(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			cv, ok := r.(*clvalue.ContractViolation)
			if !ok {
				panic(r)
			}
			v, err = nil, &ContractViolation{Reason: cv.Reason}
		}
	}()
	return build(d, d.Type, raw), nil
}

// build assumes raw passed Validate and d passed Check.
func build(d Decl, t cltype.Type, raw interface{}) clvalue.Value {
	switch t.Tag() {
	case cltype.TagOption:
		inner, _ := t.Inner()
		if raw == nil {
			return clvalue.None(inner)
		}
		return clvalue.Some(build(d, inner, raw))

	case cltype.TagList, cltype.TagFixedList:
		elem := t.Elem(0)
		arr := raw.([]interface{})
		if len(arr) == 0 {
			if t.Tag() == cltype.TagFixedList {
				return clvalue.EmptyFixedList(elem)
			}
			return clvalue.EmptyList(elem)
		}
		items := make([]clvalue.Value, len(arr))
		for i, v := range arr {
			items[i] = buildSimple(elem, d.shape(0), v)
		}
		if t.Tag() == cltype.TagFixedList {
			return clvalue.NewFixedList(items...)
		}
		return clvalue.NewList(items...)

	case cltype.TagTuple1, cltype.TagTuple2, cltype.TagTuple3:
		arr := raw.([]interface{})
		items := make([]clvalue.Value, len(arr))
		for i, v := range arr {
			items[i] = buildSimple(t.Elem(i), d.shape(i), v)
		}
		return clvalue.NewTuple(items...)

	case cltype.TagMap:
		key, val := t.Elem(0), t.Elem(1)
		arr := raw.([]interface{})
		if len(arr) == 0 {
			return clvalue.EmptyMap(key, val)
		}
		entries := make([]clvalue.MapEntry, len(arr))
		for i, e := range arr {
			pair := e.([]interface{})
			entries[i] = clvalue.MapEntry{
				Key:   buildSimple(key, d.shape(0), pair[0]),
				Value: buildSimple(val, d.shape(1), pair[1]),
			}
		}
		return clvalue.NewMap(entries...)
	}

	s, _ := t.Simple()
	return buildSimple(s, d.shape(0), raw)
}

func buildSimple(s cltype.Simple, shape KeyShape, raw interface{}) clvalue.Value {
	switch s.Tag() {
	case cltype.TagBool:
		return clvalue.Bool(raw.(bool))
	case cltype.TagString:
		return clvalue.String(raw.(string))
	case cltype.TagUnit:
		return clvalue.Unit{}
	case cltype.TagBytes:
		b, _ := decodeHex(raw, -1)
		return clvalue.Bytes(b)
	case cltype.TagFixedBytes:
		b, _ := decodeHex(raw, int(s.Len()))
		return clvalue.NewFixedBytes(b)
	case cltype.TagURef:
		b, _ := decodeHex(raw, addressLength)
		return clvalue.URef(uref.URef{Address: common.BytesToHash(b), Rights: shape.rights})
	case cltype.TagKey:
		b, _ := decodeHex(raw, addressLength)
		addr := common.BytesToHash(b)
		switch shape.kind {
		case clvalue.KeyAccount:
			return clvalue.AccountKey(addr)
		case clvalue.KeyHash:
			return clvalue.HashKey(addr)
		default:
			return clvalue.URefKey(uref.URef{Address: addr, Rights: shape.rights})
		}
	}

	n, _ := toBigInt(raw)
	switch s.Tag() {
	case cltype.TagI32:
		return clvalue.I32(n.Int64())
	case cltype.TagI64:
		return clvalue.I64(n.Int64())
	case cltype.TagU8:
		return clvalue.U8(n.Uint64())
	case cltype.TagU32:
		return clvalue.U32(n.Uint64())
	case cltype.TagU64:
		return clvalue.U64(n.Uint64())
	case cltype.TagU128:
		return clvalue.U128(n)
	case cltype.TagU256:
		return clvalue.U256(n)
	case cltype.TagU512:
		return clvalue.U512(n)
	}
	panic(&clvalue.ContractViolation{Reason: "no builder for " + s.String()})
}
