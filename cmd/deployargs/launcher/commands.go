package launcher

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-deploy-args/cltype"
	"github.com/rony4d/go-deploy-args/clvalue"
	"github.com/rony4d/go-deploy-args/deployarg"
	"github.com/rony4d/go-deploy-args/flags"
	"github.com/rony4d/go-deploy-args/keys"
	"github.com/rony4d/go-deploy-args/uref"
)

// env is what every command runs with.
type env struct {
	cfg Config
	log *logrus.Logger
	out io.Writer
}

func withFlags(sets ...[]cli.Flag) []cli.Flag {
	all := flags.CommonFlags()
	for _, s := range sets {
		all = append(all, s...)
	}
	return all
}

// action loads the config, sets up logging and runs the command body.
func action(run func(ctx *cli.Context, e *env) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		cfg, err := MakeAllConfigs(ctx)
		if err != nil {
			return err
		}
		errOut := ctx.App.ErrWriter
		if errOut == nil {
			errOut = os.Stderr
		}
		out := ctx.App.Writer
		if out == nil {
			out = os.Stdout
		}
		logger, err := newLogger(cfg, errOut)
		if err != nil {
			return err
		}
		e := &env{cfg: cfg, log: logger, out: out}
		if err := run(ctx, e); err != nil {
			logger.WithFields(logrus.Fields{
				"command": ctx.Command.Name,
			}).WithError(err).Error("Command failed")
			return err
		}
		return nil
	}
}

func commands() []cli.Command {
	return []cli.Command{
		{
			Name:   "validate",
			Usage:  "Check a JSON value against a declared type",
			Flags:  withFlags(flags.ArgFlags()),
			Action: action(validateCmd),
		},
		{
			Name:   "encode",
			Usage:  "Validate, build and encode a single argument",
			Flags:  withFlags(flags.ArgFlags()),
			Action: action(encodeCmd),
		},
		{
			Name:   "encode-args",
			Usage:  "Encode the argument list of a YAML args file",
			Flags:  withFlags(flags.ArgsFileFlags()),
			Action: action(encodeArgsCmd),
		},
		{
			Name:   "decode",
			Usage:  "Decode canonical bytes of a known type",
			Flags:  withFlags(flags.DecodeFlags()),
			Action: action(decodeCmd),
		},
		{
			Name:  "uref",
			Usage: "Parse and format URefs",
			Subcommands: []cli.Command{
				{
					Name:   "parse",
					Usage:  "Parse uref-<address>-<rights>",
					Flags:  withFlags(flags.URefParseFlags()),
					Action: action(urefParseCmd),
				},
				{
					Name:   "format",
					Usage:  "Format an address and access rights",
					Flags:  withFlags(flags.URefFormatFlags()),
					Action: action(urefFormatCmd),
				},
			},
		},
		{
			Name:   "account-hash",
			Usage:  "Derive the account hash of a public key",
			Flags:  withFlags(flags.KeyFlags()),
			Action: action(accountHashCmd),
		},
	}
}

func requireFlag(ctx *cli.Context, name string) (string, error) {
	v := ctx.String(name)
	if v == "" {
		return "", errors.Errorf("missing required flag --%s", name)
	}
	return v, nil
}

// declFromFlags reads --type, --value and --shape.
func declFromFlags(ctx *cli.Context) (deployarg.Decl, interface{}, error) {
	typeStr, err := requireFlag(ctx, "type")
	if err != nil {
		return deployarg.Decl{}, nil, err
	}
	t, err := cltype.Parse(typeStr)
	if err != nil {
		return deployarg.Decl{}, nil, err
	}
	valueStr, err := requireFlag(ctx, "value")
	if err != nil {
		return deployarg.Decl{}, nil, err
	}
	raw, err := deployarg.DecodeJSON(valueStr)
	if err != nil {
		return deployarg.Decl{}, nil, err
	}
	d := deployarg.Decl{Type: t}
	for _, s := range ctx.StringSlice("shape") {
		shape, err := deployarg.ParseKeyShape(s)
		if err != nil {
			return deployarg.Decl{}, nil, err
		}
		d.Shapes = append(d.Shapes, shape)
	}
	return d, raw, nil
}

func decodeHexFlag(ctx *cli.Context, name string) ([]byte, error) {
	s, err := requireFlag(ctx, name)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid --%s", name)
	}
	return b, nil
}

func (e *env) writeJSON(v interface{}) error {
	enc := json.NewEncoder(e.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (e *env) writeLine(s string) error {
	_, err := fmt.Fprintln(e.out, s)
	return err
}

func valueJSON(v clvalue.Value) map[string]interface{} {
	return map[string]interface{}{
		"type":      v.Type().String(),
		"typeBytes": hexutil.Encode(clvalue.EncodeType(v.Type())),
		"bytes":     hexutil.Encode(clvalue.Encode(v)),
		"value":     clvalue.ToJSON(v),
	}
}

func validateCmd(ctx *cli.Context, e *env) error {
	d, raw, err := declFromFlags(ctx)
	if err != nil {
		return err
	}
	if err := deployarg.Validate(d.Type, raw); err != nil {
		return err
	}
	if err := d.Check(); err != nil {
		return err
	}
	e.log.WithField("type", d.Type.String()).Debug("Argument is valid")

	if e.cfg.Output.Format == OutputJSON {
		return e.writeJSON(map[string]interface{}{"type": d.Type.String(), "valid": true})
	}
	return e.writeLine("valid")
}

func encodeCmd(ctx *cli.Context, e *env) error {
	d, raw, err := declFromFlags(ctx)
	if err != nil {
		return err
	}
	v, err := deployarg.ParseTyped(d, raw)
	if err != nil {
		return err
	}
	b := clvalue.Encode(v)
	e.log.WithFields(logrus.Fields{
		"type":  v.Type().String(),
		"bytes": len(b),
	}).Debug("Encoded argument")

	if e.cfg.Output.Format == OutputJSON {
		return e.writeJSON(valueJSON(v))
	}
	return e.writeLine(hexutil.Encode(b))
}

func encodeArgsCmd(ctx *cli.Context, e *env) error {
	path, err := requireFlag(ctx, "file")
	if err != nil {
		return err
	}
	args, err := deployarg.LoadArgsFile(resolvePath(path))
	if err != nil {
		return err
	}
	b, err := deployarg.EncodeArgs(args)
	if err != nil {
		return err
	}
	e.log.WithFields(logrus.Fields{
		"file":  path,
		"args":  len(args),
		"bytes": len(b),
	}).Info("Encoded args file")

	if e.cfg.Output.Format == OutputJSON {
		list := make([]map[string]interface{}, len(args))
		for i, a := range args {
			list[i] = valueJSON(a.Value)
			list[i]["name"] = a.Name
		}
		return e.writeJSON(map[string]interface{}{
			"args":  list,
			"bytes": hexutil.Encode(b),
		})
	}
	return e.writeLine(hexutil.Encode(b))
}

func decodeCmd(ctx *cli.Context, e *env) error {
	typeStr, err := requireFlag(ctx, "type")
	if err != nil {
		return err
	}
	t, err := cltype.Parse(typeStr)
	if err != nil {
		return err
	}
	data, err := decodeHexFlag(ctx, "data")
	if err != nil {
		return err
	}
	v, err := clvalue.Decode(t, data)
	if err != nil {
		return errors.Wrapf(err, "failed to decode %s", t)
	}
	return e.writeJSON(valueJSON(v))
}

func urefParseCmd(ctx *cli.Context, e *env) error {
	s, err := requireFlag(ctx, "uref")
	if err != nil {
		return err
	}
	u, err := uref.Parse(s)
	if err != nil {
		return err
	}
	if e.cfg.Output.Format == OutputJSON {
		return e.writeJSON(map[string]interface{}{
			"address": u.Address.Hex(),
			"rights":  u.Rights.String(),
			"bytes":   hexutil.Encode(u.Bytes()),
		})
	}
	return e.writeLine(hexutil.Encode(u.Bytes()))
}

func urefFormatCmd(ctx *cli.Context, e *env) error {
	addr, err := decodeHexFlag(ctx, "address")
	if err != nil {
		return err
	}
	rights, err := uref.ParseAccessRights(ctx.String("rights"))
	if err != nil {
		return err
	}
	u, err := uref.New(addr, rights)
	if err != nil {
		return err
	}
	if e.cfg.Output.Format == OutputJSON {
		return e.writeJSON(map[string]interface{}{"uref": uref.Format(u)})
	}
	return e.writeLine(uref.Format(u))
}

func accountHashCmd(ctx *cli.Context, e *env) error {
	keyHex, err := requireFlag(ctx, "key")
	if err != nil {
		return err
	}
	var pk keys.PubKey
	if algoName := ctx.String("algo"); algoName != "" {
		algo, err := keys.ParseAlgo(algoName)
		if err != nil {
			return err
		}
		raw, err := decodeHexFlag(ctx, "key")
		if err != nil {
			return err
		}
		if pk, err = keys.New(algo, raw); err != nil {
			return err
		}
	} else if pk, err = keys.FromString(keyHex); err != nil {
		return err
	}

	h := pk.AccountHash()
	if e.cfg.Output.Format == OutputJSON {
		return e.writeJSON(map[string]interface{}{
			"algo":        pk.Algo.Name(),
			"key":         pk.String(),
			"accountHash": h.Hex(),
		})
	}
	return e.writeLine(h.Hex())
}
