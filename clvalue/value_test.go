package clvalue

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-deploy-args/cltype"
	"github.com/rony4d/go-deploy-args/uref"
	"github.com/rony4d/go-deploy-args/utils/cser"
)

// hx decodes a hex string in which spaces are ignored.
func hx(s string) []byte {
	return common.FromHex(strings.ReplaceAll(s, " ", ""))
}

func pow2(n uint) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), n)
}

var (
	addr = common.HexToHash("0x0102030405060708091011121314151617181920212223242526272829303132")
	ref  = uref.URef{Address: addr, Rights: uref.ReadAddWrite}
)

func TestEncode_Vectors(t *testing.T) {
	for _, tc := range []struct {
		name string
		v    Value
		want string
	}{
		{"bool true", Bool(true), "01"},
		{"bool false", Bool(false), "00"},
		{"i32 -1", I32(-1), "ffffffff"},
		{"i32 min", I32(-2147483648), "00000080"},
		{"i64 -2", I64(-2), "feffffffffffffff"},
		{"u8", U8(255), "ff"},
		{"u32", U32(0x01020304), "04030201"},
		{"u64", U64(1), "0100000000000000"},
		{"u128 zero", U128(big.NewInt(0)), "00"},
		{"u128 256", U128(big.NewInt(256)), "02 0001"},
		{"u256 max", U256(new(big.Int).Sub(pow2(256), big.NewInt(1))), "20" + strings.Repeat("ff", 32)},
		{"u512 2^64", U512(pow2(64)), "09 000000000000000001"},
		{"unit", Unit{}, ""},
		{"string", String("hi"), "02000000 6869"},
		{"string empty", String(""), "00000000"},
		{"bytes", Bytes{0xde, 0xad}, "02000000 dead"},
		{"fixed bytes", NewFixedBytes([]byte{0xde, 0xad}), "dead"},
		{"uref", URef(ref), addr.Hex()[2:] + "07"},
		{"account key", AccountKey(addr), "00" + addr.Hex()[2:]},
		{"hash key", HashKey(addr), "01" + addr.Hex()[2:]},
		{"uref key", URefKey(ref), "02" + addr.Hex()[2:] + "07"},
		{"none", None(cltype.U8.Type()), "00"},
		{"some", Some(U8(5)), "01 05"},
		{"some string", Some(String("hi")), "01 02000000 6869"},
		{"list u32", NewList(U32(1), U32(2), U32(3)), "03000000 01000000 02000000 03000000"},
		{"empty list", EmptyList(cltype.U32), "00000000"},
		{"fixed list", NewFixedList(U8(1), U8(2)), "0102"},
		{"empty fixed list", EmptyFixedList(cltype.U8), ""},
		{"tuple1", NewTuple(U8(7)), "07"},
		{"tuple2", NewTuple(Bool(true), String("hi")), "01 02000000 6869"},
		{"tuple3", NewTuple(Bool(false), U8(1), U32(2)), "00 01 02000000"},
		{"map", NewMap(MapEntry{String("a"), U64(1)}), "01000000 01000000 61 0100000000000000"},
		{"map order kept", NewMap(MapEntry{U8(2), Bool(true)}, MapEntry{U8(1), Bool(false)}), "02000000 02 01 01 00"},
		{"empty map", EmptyMap(cltype.String, cltype.U64), "00000000"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, hx(tc.want), Encode(tc.v))
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	v := NewMap(
		MapEntry{String("x"), U512(pow2(300))},
		MapEntry{String("y"), U512(big.NewInt(0))},
	)
	first := Encode(v)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Encode(v))
	}
}

func TestTypes(t *testing.T) {
	require := require.New(t)

	require.True(cltype.Option(cltype.List(cltype.Key)).Equal(None(cltype.List(cltype.Key)).Type()))
	require.True(cltype.Option(cltype.U8.Type()).Equal(Some(U8(1)).Type()))
	require.True(cltype.FixedList(cltype.U8, 2).Equal(NewFixedList(U8(1), U8(2)).Type()))
	require.True(cltype.FixedList(cltype.U8, 0).Equal(EmptyFixedList(cltype.U8).Type()))
	require.True(cltype.Tuple3(cltype.Bool, cltype.U8, cltype.U32).Equal(NewTuple(Bool(false), U8(1), U32(2)).Type()))
	require.True(cltype.Map(cltype.String, cltype.U64).Equal(EmptyMap(cltype.String, cltype.U64).Type()))
	require.True(cltype.FixedBytes(3).Type().Equal(NewFixedBytes([]byte{1, 2, 3}).Type()))
	require.True(cltype.U256.Type().Equal(U256(big.NewInt(1)).Type()))
}

func TestOptionAccessors(t *testing.T) {
	require := require.New(t)

	none := None(cltype.String.Type())
	require.False(none.IsSome())
	_, ok := none.Get()
	require.False(ok)
	require.True(cltype.String.Type().Equal(none.Inner()))

	some := Some(String("x"))
	require.True(some.IsSome())
	v, ok := some.Get()
	require.True(ok)
	require.Equal(String("x"), v)
}

func TestKeyAccessors(t *testing.T) {
	require := require.New(t)

	k := URefKey(ref)
	require.Equal(KeyURef, k.Kind())
	_, ok := k.Hash()
	require.False(ok)
	u, ok := k.URef()
	require.True(ok)
	require.Equal(ref, u)

	k = HashKey(addr)
	h, ok := k.Hash()
	require.True(ok)
	require.Equal(addr, h)
	_, ok = k.URef()
	require.False(ok)
	require.Equal("Hash", k.Kind().String())
}

func requireViolation(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		_, ok := r.(*ContractViolation)
		require.True(t, ok, "unexpected panic %v", r)
	}()
	f()
}

func TestConstructors_Violations(t *testing.T) {
	requireViolation(t, func() { NewList() })
	requireViolation(t, func() { NewList(U8(1), U32(1)) })
	requireViolation(t, func() { NewList(NewList(U8(1))) })
	requireViolation(t, func() { NewList(Some(U8(1))) })
	requireViolation(t, func() { NewFixedList() })
	requireViolation(t, func() { NewFixedList(NewFixedBytes([]byte{1}), NewFixedBytes([]byte{1, 2})) })
	requireViolation(t, func() { NewTuple() })
	requireViolation(t, func() { NewTuple(U8(1), U8(2), U8(3), U8(4)) })
	requireViolation(t, func() { NewTuple(EmptyList(cltype.U8)) })
	requireViolation(t, func() { NewMap() })
	requireViolation(t, func() { NewMap(MapEntry{String("a"), U8(1)}, MapEntry{String("b"), U32(1)}) })
	requireViolation(t, func() { NewMap(MapEntry{Key: String("a")}) })
	requireViolation(t, func() { Some(nil) })
	requireViolation(t, func() { U128(pow2(128)) })
	requireViolation(t, func() { U512(big.NewInt(-1)) })
	requireViolation(t, func() { U256(nil) })
}

func TestImmutability(t *testing.T) {
	require := require.New(t)

	src := []byte{1, 2, 3}
	fb := NewFixedBytes(src)
	src[0] = 9
	require.Equal([]byte{1, 2, 3}, fb.Bytes())
	fb.Bytes()[1] = 9
	require.Equal([]byte{1, 2, 3}, fb.Bytes())

	n := big.NewInt(5)
	b := U128(n)
	n.SetInt64(6)
	require.Equal(int64(5), b.Int().Int64())
	b.Int().SetInt64(7)
	require.Equal(int64(5), b.Int().Int64())

	l := NewList(U8(1), U8(2))
	items := l.Items()
	items[0] = U8(9)
	require.Equal(hx("02000000 0102"), Encode(l))
}

func TestDecode_RoundTrip(t *testing.T) {
	for _, v := range []Value{
		Bool(true),
		I32(-7),
		I64(1 << 40),
		U8(3),
		U32(70000),
		U64(1<<63 + 5),
		U128(new(big.Int).Sub(pow2(128), big.NewInt(1))),
		U256(pow2(200)),
		U512(big.NewInt(0)),
		Unit{},
		String("héllo"),
		Bytes{},
		Bytes{1, 2, 3},
		NewFixedBytes(addr.Bytes()),
		URef(ref),
		AccountKey(addr),
		HashKey(addr),
		URefKey(ref),
		None(cltype.Map(cltype.String, cltype.U8)),
		Some(Some(String("deep"))),
		NewList(String("a"), String("b")),
		EmptyList(cltype.Key),
		NewFixedList(I32(-1), I32(1)),
		EmptyFixedList(cltype.Bool),
		NewTuple(URefKey(ref), Bytes{9}, U128(big.NewInt(1))),
		NewMap(MapEntry{String("k"), NewFixedBytes([]byte{1, 2})}),
		EmptyMap(cltype.U8, cltype.Unit),
	} {
		t.Run(v.Type().String(), func(t *testing.T) {
			require := require.New(t)

			got, err := Decode(v.Type(), Encode(v))
			require.NoError(err)
			require.True(v.Type().Equal(got.Type()), "type %s", got.Type())
			require.Equal(Encode(v), Encode(got))
		})
	}
}

func TestDecode_Rejects(t *testing.T) {
	for _, tc := range []struct {
		name string
		typ  cltype.Type
		raw  string
		err  error
	}{
		{"trailing bytes", cltype.U8.Type(), "0100", cser.ErrNonCanonicalEncoding},
		{"bool tag", cltype.Bool.Type(), "02", cser.ErrNonCanonicalEncoding},
		{"option tag", cltype.Option(cltype.U8.Type()), "02", cser.ErrNonCanonicalEncoding},
		{"big uint trailing zero", cltype.U128.Type(), "02 0100", cser.ErrNonCanonicalEncoding},
		{"big uint too wide", cltype.U128.Type(), "11" + strings.Repeat("01", 17), cser.ErrMalformedEncoding},
		{"truncated u32", cltype.U32.Type(), "010203", cser.ErrMalformedEncoding},
		{"truncated list", cltype.List(cltype.U32), "02000000 01000000", cser.ErrMalformedEncoding},
		{"bad key kind", cltype.Key.Type(), "03" + strings.Repeat("00", 32), cser.ErrMalformedEncoding},
		{"invalid utf8", cltype.String.Type(), "01000000 ff", cser.ErrMalformedEncoding},
		{"huge length", cltype.Bytes.Type(), "ffffffff", cser.ErrTooLargeAlloc},
		{"empty input", cltype.U8.Type(), "", cser.ErrMalformedEncoding},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.typ, hx(tc.raw))
			require.Equal(t, tc.err, err)
		})
	}
}

func TestEncodeType(t *testing.T) {
	for _, tc := range []struct {
		typ  cltype.Type
		want string
	}{
		{cltype.Bool.Type(), "00"},
		{cltype.U512.Type(), "08"},
		{cltype.FixedBytes(32).Type(), "0e 20000000"},
		{cltype.Option(cltype.U8.Type()), "0f 03"},
		{cltype.Option(cltype.List(cltype.String)), "0f 10 0a"},
		{cltype.List(cltype.U32), "10 04"},
		{cltype.FixedList(cltype.U8, 4), "11 03 04000000"},
		{cltype.FixedList(cltype.FixedBytes(2), 3), "11 0e 02000000 03000000"},
		{cltype.Tuple2(cltype.Bool, cltype.String), "13 00 0a"},
		{cltype.Map(cltype.String, cltype.Key), "15 0a 0b"},
	} {
		t.Run(tc.typ.String(), func(t *testing.T) {
			require := require.New(t)

			raw := EncodeType(tc.typ)
			require.Equal(hx(tc.want), raw)

			back, err := DecodeType(raw)
			require.NoError(err)
			require.True(tc.typ.Equal(back), "decoded %s", back)
		})
	}
}

func TestDecodeType_Rejects(t *testing.T) {
	for name, raw := range map[string]string{
		"unknown tag":     "63",
		"nested list":     "10 10 03",
		"map of option":   "15 0a 0f 03",
		"truncated":       "11 03",
		"trailing":        "03 03",
		"empty":           "",
		"tuple too short": "14 00",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeType(hx(raw))
			require.Error(t, err)
		})
	}
}

func TestToJSON(t *testing.T) {
	v := NewTuple(
		U512(pow2(70)),
		NewFixedBytes([]byte{0xab, 0xcd}),
		URefKey(ref),
	)
	raw, err := json.Marshal(ToJSON(v))
	require.NoError(t, err)
	assert.JSONEq(t,
		`["1180591620717411303424", "abcd", {"URef": "`+uref.Format(ref)+`"}]`,
		string(raw))

	raw, err = json.Marshal(ToJSON(NewMap(MapEntry{String("a"), U32(1)})))
	require.NoError(t, err)
	assert.JSONEq(t, `[["a", 1]]`, string(raw))

	raw, err = json.Marshal(ToJSON(None(cltype.U8.Type())))
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}
