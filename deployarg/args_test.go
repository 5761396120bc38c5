package deployarg

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-deploy-args/cltype"
	"github.com/rony4d/go-deploy-args/clvalue"
	"github.com/rony4d/go-deploy-args/uref"
)

const argsYAML = `
args:
  - name: amount
    type: U512
    value: "1000"
  - name: target
    type: Key
    value: '"` + "aa00000000000000000000000000000000000000000000000000000000000000" + `"'
    shapes: [account]
  - name: purses
    type: Map(String, URef)
    value: '[["main", "` + "0000000000000000000000000000000000000000000000000000000000000000" + `"]]'
    shapes: [account, "uref:READ_ADD_WRITE"]
  - name: memo
    type: Option(String)
    value: "null"
`

func TestLoadArgs(t *testing.T) {
	require := require.New(t)

	args, err := LoadArgs([]byte(argsYAML))
	require.NoError(err)
	require.Len(args, 4)

	require.Equal("amount", args[0].Name)
	require.Equal(hx("02 e803"), clvalue.Encode(args[0].Value))

	key, ok := args[1].Value.(clvalue.Key)
	require.True(ok)
	require.Equal(clvalue.KeyAccount, key.Kind())

	m, ok := args[2].Value.(clvalue.Map)
	require.True(ok)
	require.Equal(1, m.Len())
	ref := m.Entries()[0].Value.(clvalue.URef)
	require.Equal(uref.ReadAddWrite, ref.Rights)

	opt := args[3].Value.(clvalue.Option)
	require.False(opt.IsSome())
	require.True(cltype.String.Type().Equal(opt.Inner()))
}

func TestLoadArgs_Errors(t *testing.T) {
	for name, doc := range map[string]string{
		"bad yaml":       "args: [",
		"unknown field":  "args:\n  - name: a\n    type: U8\n    value: '1'\n    extra: 1\n",
		"no name":        "args:\n  - type: U8\n    value: '1'\n",
		"duplicate":      "args:\n  - {name: a, type: U8, value: '1'}\n  - {name: a, type: U8, value: '2'}\n",
		"bad type":       "args:\n  - {name: a, type: U9, value: '1'}\n",
		"bad json":       "args:\n  - {name: a, type: U8, value: '[1'}\n",
		"out of range":   "args:\n  - {name: a, type: U8, value: '256'}\n",
		"bad shape":      "args:\n  - {name: a, type: Key, value: '\"00\"', shapes: [contract]}\n",
		"missing shapes": "args:\n  - {name: a, type: URef, value: '\"" + zero32 + "\"'}\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadArgs([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestLoadArgs_ErrorCause(t *testing.T) {
	_, err := LoadArgs([]byte("args:\n  - {name: a, type: U8, value: '256'}\n"))
	require.Error(t, err)
	require.Contains(t, err.Error(), `argument "a"`)

	verr, ok := errors.Cause(err).(*ValidationError)
	require.True(t, ok)
	require.Equal(t, "Value 256 is not a valid U8, which should be in [0, 255]", verr.Reason)
}

func TestLoadArgsFile(t *testing.T) {
	require := require.New(t)

	f, err := ioutil.TempFile("", "args-*.yaml")
	require.NoError(err)
	defer os.Remove(f.Name())
	_, err = f.WriteString(argsYAML)
	require.NoError(err)
	require.NoError(f.Close())

	args, err := LoadArgsFile(f.Name())
	require.NoError(err)
	require.Len(args, 4)

	_, err = LoadArgsFile(f.Name() + ".missing")
	require.Error(err)
}

func TestEncodeArgs(t *testing.T) {
	require := require.New(t)

	a, err := NewArg("x", Simple(cltype.U8.Type()), 7)
	require.NoError(err)
	b, err := NewArg("ok", Simple(cltype.Option(cltype.Bool.Type())), nil)
	require.NoError(err)

	want := hx("02000000" +
		"01000000 78" + "01000000 07" + "03" +
		"02000000 6f6b" + "01000000 00" + "0f 00")
	got, err := EncodeArgs([]Arg{a, b})
	require.NoError(err)
	require.Equal(want, got)

	got, err = EncodeArgs(nil)
	require.NoError(err)
	require.Equal(hx("00000000"), got)
}

func TestEncodeArgs_Errors(t *testing.T) {
	a, err := NewArg("x", Simple(cltype.U8.Type()), 7)
	require.NoError(t, err)

	for name, args := range map[string][]Arg{
		"no name":   {{Value: a.Value}},
		"duplicate": {a, a},
		"no value":  {a, {Name: "y"}},
	} {
		t.Run(name, func(t *testing.T) {
			b, err := EncodeArgs(args)
			require.Error(t, err)
			require.Nil(t, b)
		})
	}
}
