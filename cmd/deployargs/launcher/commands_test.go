package launcher

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/rony4d/go-deploy-args/deployarg"
)

var zeroAddr = strings.Repeat("00", 32)

// run executes the CLI and returns what the command printed on stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := NewApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"deployargs"}, args...))
	return out.String(), err
}

func TestEncodeCmd(t *testing.T) {
	require := require.New(t)

	out, err := run(t, "encode", "--type", "List(U32)", "--value", "[1, 2, 3]")
	require.NoError(err)
	require.Equal("0x03000000010000000200000003000000\n", out)

	out, err = run(t, "encode", "--type", "Tuple2(U8, String)", "--value", `[1, "hi"]`)
	require.NoError(err)
	require.Equal("0x01020000006869\n", out)
}

func TestEncodeCmd_JSONOutput(t *testing.T) {
	require := require.New(t)

	out, err := run(t, "encode", "--output", "json", "--type", "U512", "--value", "1000")
	require.NoError(err)

	var doc map[string]interface{}
	require.NoError(json.Unmarshal([]byte(out), &doc))
	require.Equal("U512", doc["type"])
	require.Equal("0x02e803", doc["bytes"])
	require.Equal("1000", doc["value"])
	require.Equal("0x08", doc["typeBytes"])
}

func TestEncodeCmd_KeyShape(t *testing.T) {
	require := require.New(t)

	out, err := run(t, "encode",
		"--type", "Key",
		"--value", `"`+zeroAddr+`"`,
		"--shape", "uref:READ")
	require.NoError(err)
	require.Equal("0x02"+zeroAddr+"01\n", out)

	_, err = run(t, "encode", "--type", "Key", "--value", `"`+zeroAddr+`"`)
	require.Error(err)
	_, ok := err.(*deployarg.ContractViolation)
	require.True(ok, "got %T: %v", err, err)
}

func TestValidateCmd(t *testing.T) {
	require := require.New(t)

	out, err := run(t, "validate", "--type", "U8", "--value", "255")
	require.NoError(err)
	require.Equal("valid\n", out)

	out, err = run(t, "validate", "--type", "U8", "--value", "256")
	require.Error(err)
	require.Empty(out)
	_, ok := err.(*deployarg.ValidationError)
	require.True(ok, "got %T: %v", err, err)

	_, err = run(t, "validate", "--type", "Nope", "--value", "1")
	require.Error(err)

	_, err = run(t, "validate", "--value", "1")
	require.EqualError(err, "missing required flag --type")
}

func TestDecodeCmd(t *testing.T) {
	require := require.New(t)

	out, err := run(t, "decode", "--type", "List(U32)", "--data", "03000000010000000200000003000000")
	require.NoError(err)

	var doc map[string]interface{}
	require.NoError(json.Unmarshal([]byte(out), &doc))
	require.Equal("List(U32)", doc["type"])
	require.Equal([]interface{}{1.0, 2.0, 3.0}, doc["value"])

	_, err = run(t, "decode", "--type", "Bool", "--data", "0x02")
	require.Error(err)

	_, err = run(t, "decode", "--type", "U32", "--data", "0x0100")
	require.Error(err)
}

func TestEncodeArgsCmd(t *testing.T) {
	require := require.New(t)

	dir, err := ioutil.TempDir("", "deployargs-cmd")
	require.NoError(err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "args.yaml")
	require.NoError(ioutil.WriteFile(path, []byte(`
args:
  - name: amount
    type: U512
    value: "1000"
  - name: flag
    type: Bool
    value: "true"
`), 0o600))

	out, err := run(t, "encode-args", "--file", path)
	require.NoError(err)

	args, err := deployarg.LoadArgsFile(path)
	require.NoError(err)
	want, err := deployarg.EncodeArgs(args)
	require.NoError(err)
	require.Equal("0x"+common.Bytes2Hex(want)+"\n", out)

	_, err = run(t, "encode-args", "--file", filepath.Join(dir, "missing.yaml"))
	require.Error(err)
}

func TestURefCmds(t *testing.T) {
	require := require.New(t)

	out, err := run(t, "uref", "format", "--address", zeroAddr)
	require.NoError(err)
	require.Equal("uref-"+zeroAddr+"-007\n", out)

	out, err = run(t, "uref", "parse", "--uref", "uref-"+zeroAddr+"-007")
	require.NoError(err)
	require.Equal("0x"+zeroAddr+"07\n", out)

	out, err = run(t, "uref", "format", "--address", zeroAddr, "--rights", "READ", "--output", "json")
	require.NoError(err)
	require.JSONEq(`{"uref": "uref-`+zeroAddr+`-001"}`, out)

	_, err = run(t, "uref", "parse", "--uref", "uref-"+zeroAddr)
	require.Error(err)

	_, err = run(t, "uref", "format", "--address", "0x0102")
	require.Error(err)
}

func TestAccountHashCmd(t *testing.T) {
	require := require.New(t)

	raw := bytes.Repeat([]byte{0xab}, 32)
	want := blake2b.Sum256(append([]byte("ED25519\x00"), raw...))

	out, err := run(t, "account-hash", "--key", "01"+common.Bytes2Hex(raw))
	require.NoError(err)
	require.Equal(common.Hash(want).Hex()+"\n", out)

	out, err = run(t, "account-hash", "--algo", "ed25519", "--key", common.Bytes2Hex(raw))
	require.NoError(err)
	require.Equal(common.Hash(want).Hex()+"\n", out)

	_, err = run(t, "account-hash", "--key", "01abcd")
	require.Error(err)
}
