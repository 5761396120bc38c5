package clvalue

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-deploy-args/uref"
)

// ToJSON renders v as plain data for encoding/json. Numbers up to 64 bits
// stay numbers, wider integers become decimal strings, byte strings become
// unprefixed hex, absent options become nil and map entries become
// [key, value] pairs. The shape mirrors the raw input accepted by the
// deployarg validator, except for Key which names its variant.
func ToJSON(v Value) interface{} {
	switch v := v.(type) {
	case Bool:
		return bool(v)
	case I32:
		return int32(v)
	case I64:
		return int64(v)
	case U8:
		return uint8(v)
	case U32:
		return uint32(v)
	case U64:
		return uint64(v)
	case BigUint:
		return v.v.String()
	case Unit:
		return nil
	case String:
		return string(v)
	case Bytes:
		return common.Bytes2Hex(v)
	case FixedBytes:
		return common.Bytes2Hex(v.b)
	case URef:
		return uref.Format(uref.URef(v))
	case Key:
		if v.kind == KeyURef {
			return map[string]interface{}{v.kind.String(): uref.Format(v.ref)}
		}
		return map[string]interface{}{v.kind.String(): common.Bytes2Hex(v.hash.Bytes())}
	case Option:
		if v.v == nil {
			return nil
		}
		return ToJSON(v.v)
	case List:
		return itemsJSON(v.items)
	case FixedList:
		return itemsJSON(v.items)
	case Tuple:
		return itemsJSON(v.items)
	case Map:
		out := make([]interface{}, len(v.entries))
		for i, e := range v.entries {
			out[i] = []interface{}{ToJSON(e.Key), ToJSON(e.Value)}
		}
		return out
	}
	return nil
}

func itemsJSON(items []Value) []interface{} {
	out := make([]interface{}, len(items))
	for i, it := range items {
		out[i] = ToJSON(it)
	}
	return out
}
