// Package deployarg checks loosely typed deploy argument input against a
// declared cltype.Type and builds clvalue values from it.
//
// Raw input has the shape produced by DecodeJSON: json.Number, string, bool,
// []interface{} and nil. Go integers and *big.Int are accepted wherever a
// number is expected.
package deployarg

import (
	"encoding/json"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"

	"github.com/rony4d/go-deploy-args/cltype"
	"github.com/rony4d/go-deploy-args/utils/bounds"
)

type intKind struct {
	width  bounds.Width
	signed bool
}

var intKinds = map[cltype.Tag]intKind{
	cltype.TagI32:  {bounds.W32, true},
	cltype.TagI64:  {bounds.W64, true},
	cltype.TagU8:   {bounds.W8, false},
	cltype.TagU32:  {bounds.W32, false},
	cltype.TagU64:  {bounds.W64, false},
	cltype.TagU128: {bounds.W128, false},
	cltype.TagU256: {bounds.W256, false},
	cltype.TagU512: {bounds.W512, false},
}

// addressLength is the decoded size of Key and URef hex input.
const addressLength = 32

// Validate reports whether raw is acceptable input for t. The result is nil,
// a *ValidationError or an *UnsupportedTypeError. Composites are checked
// element by element and the first failure is reported with its index.
// An absent Option is written as null.
func Validate(t cltype.Type, raw interface{}) error {
	switch t.Tag() {
	case cltype.TagOption:
		if raw == nil {
			return nil
		}
		inner, _ := t.Inner()
		return Validate(inner, raw)
	case cltype.TagTuple1, cltype.TagTuple2, cltype.TagTuple3:
		return validateTuple(t, raw)
	case cltype.TagList:
		return validateList(t.Elem(0), raw, -1)
	case cltype.TagFixedList:
		return validateList(t.Elem(0), raw, int(t.Len()))
	case cltype.TagMap:
		return validateMap(t.Elem(0), t.Elem(1), raw)
	}
	s, _ := t.Simple()
	return validateSimple(s, raw)
}

func validateTuple(t cltype.Type, raw interface{}) error {
	arr, ok := raw.([]interface{})
	if !ok {
		return invalid("The input value is not a valid array")
	}
	if len(arr) != t.NumElems() {
		return invalid("length of tuple is not correct")
	}
	for i, v := range arr {
		if err := validateSimple(t.Elem(i), v); err != nil {
			return invalid("tuple[%d] is not correct: %s", i, err)
		}
	}
	return nil
}

// validateList checks a List, or a FixedList when fixedLen is not negative.
func validateList(elem cltype.Simple, raw interface{}, fixedLen int) error {
	arr, ok := raw.([]interface{})
	if !ok {
		return invalid("the input value is not a valid array")
	}
	if fixedLen >= 0 && len(arr) != fixedLen {
		return invalid("length of fixed list is not correct: expected %d, got %d", fixedLen, len(arr))
	}
	for i, v := range arr {
		if err := validateSimple(elem, v); err != nil {
			return invalid("list[%d] is not correct: %s", i, err)
		}
	}
	return nil
}

func validateMap(key, val cltype.Simple, raw interface{}) error {
	arr, ok := raw.([]interface{})
	if !ok {
		return invalid("The input value is not a valid array")
	}
	for i, e := range arr {
		entry, ok := e.([]interface{})
		if !ok || len(entry) != 2 {
			return invalid("length of the MapEntry[%d] is not 2", i)
		}
		if err := validateSimple(key, entry[0]); err != nil {
			return invalid("the key of MapEntry[%d] is not correct: %s", i, err)
		}
		if err := validateSimple(val, entry[1]); err != nil {
			return invalid("the value of MapEntry[%d] is not correct: %s", i, err)
		}
	}
	return nil
}

func validateSimple(s cltype.Simple, raw interface{}) error {
	switch s.Tag() {
	case cltype.TagBool:
		if _, ok := raw.(bool); !ok {
			return invalid("%s is not a valid boolean literal", plain(raw))
		}
		return nil
	case cltype.TagString:
		if _, ok := raw.(string); !ok {
			return invalid("%s is not a valid string literal", render(raw))
		}
		return nil
	case cltype.TagKey, cltype.TagURef:
		_, err := decodeHex(raw, addressLength)
		return err
	case cltype.TagBytes:
		_, err := decodeHex(raw, -1)
		return err
	case cltype.TagFixedBytes:
		_, err := decodeHex(raw, int(s.Len()))
		return err
	}
	if kind, ok := intKinds[s.Tag()]; ok {
		_, err := parseInt(s, kind, raw)
		return err
	}
	return &UnsupportedTypeError{Type: s.Type()}
}

// plain prints strings without quotes and everything else as JSON.
func plain(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return render(v)
}

// decodeHex decodes a base16 string of exactly size bytes, or of any
// non-zero size when size is negative.
func decodeHex(raw interface{}, size int) ([]byte, error) {
	s, ok := raw.(string)
	if !ok || (s == "" && size != 0) {
		return nil, invalid("%s is not a valid base16 encoded string", render(raw))
	}
	b, err := hexutil.Decode("0x" + s)
	if err != nil {
		return nil, invalid("%s is not a valid base16 encoded string", render(raw))
	}
	if size >= 0 && len(b) != size {
		return nil, invalid("%s is not a valid base16 encoded string of %d bytes, got %d bytes", render(raw), size, len(b))
	}
	return b, nil
}

// maxExponent bounds decimal exponents before expansion. 10^200 exceeds
// every supported range, so larger exponents are out of range outright.
const maxExponent = 200

var outOfRange = new(big.Int).Lsh(big.NewInt(1), 600)

// parseInt converts a numeric literal to an integer and checks its range.
func parseInt(s cltype.Simple, kind intKind, raw interface{}) (*big.Int, error) {
	n, ok := toBigInt(raw)
	if !ok {
		return nil, invalid("%s is not a valid number literal", render(raw))
	}
	if !bounds.InBounds(n, kind.width, kind.signed) {
		return nil, invalid("Value %s is not a valid %s, which should be in [%s, %s]",
			render(raw), s,
			bounds.Min(kind.width, kind.signed), bounds.Max(kind.width, kind.signed))
	}
	return n, nil
}

func toBigInt(raw interface{}) (*big.Int, bool) {
	switch v := raw.(type) {
	case json.Number:
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return nil, false
		}
		return decimalInt(d)
	case decimal.Decimal:
		return decimalInt(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		return decimalInt(decimal.NewFromFloat(v))
	case *big.Int:
		if v == nil {
			return nil, false
		}
		return new(big.Int).Set(v), true
	case int:
		return big.NewInt(int64(v)), true
	case int8:
		return big.NewInt(int64(v)), true
	case int16:
		return big.NewInt(int64(v)), true
	case int32:
		return big.NewInt(int64(v)), true
	case int64:
		return big.NewInt(v), true
	case uint:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), true
	case uint64:
		return new(big.Int).SetUint64(v), true
	}
	return nil, false
}

// decimalInt returns the integer value of d, or false when d has a
// fractional part.
//
// A decimal is coefficient * 10^exponent. The exponent is never walked one
// digit at a time:
//
//  1. a positive exponent above maxExponent is out of every range, so the
//     value is pinned to outOfRange without expanding 10^exponent;
//  2. an exponent of -k needs the coefficient to end in k zeros. When 10^k
//     exceeds the coefficient (k >= its bit length) the value lies strictly
//     between -1 and 1 and cannot be an integer;
//  3. otherwise a single division by 10^k settles it.
func decimalInt(d decimal.Decimal) (*big.Int, bool) {
	if d.IsZero() {
		return new(big.Int), true
	}
	exp := int64(d.Exponent())
	if exp > maxExponent {
		if d.Sign() < 0 {
			return new(big.Int).Neg(outOfRange), true
		}
		return new(big.Int).Set(outOfRange), true
	}
	coef := d.Coefficient()
	if exp >= 0 {
		return coef.Mul(coef, pow10(exp)), true
	}
	if -exp >= int64(coef.BitLen()) {
		return nil, false
	}
	q, r := new(big.Int).QuoRem(coef, pow10(-exp), new(big.Int))
	if r.Sign() != 0 {
		return nil, false
	}
	return q, true
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}
