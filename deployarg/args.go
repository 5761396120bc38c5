package deployarg

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/rony4d/go-deploy-args/cltype"
	"github.com/rony4d/go-deploy-args/clvalue"
	"github.com/rony4d/go-deploy-args/utils/cser"
)

// Arg is a named deploy argument.
type Arg struct {
	Name  string
	Value clvalue.Value
}

// NewArg parses raw against d and names the result.
func NewArg(name string, d Decl, raw interface{}) (Arg, error) {
	v, err := ParseTyped(d, raw)
	if err != nil {
		return Arg{}, errors.Wrapf(err, "argument %q", name)
	}
	return Arg{Name: name, Value: v}, nil
}

// EncodeArgs serializes an argument list: a u32 count, then per argument
// its name as a String, the u32 length of the value bytes, the value bytes
// and the type descriptor bytes.
//
// Names must be non-empty and unique, and every argument needs a value.
// An argument list that breaks either rule is rejected before any bytes are
// returned.
func EncodeArgs(args []Arg) ([]byte, error) {
	return cser.MarshalBinaryAdapter(func(w *cser.Writer) error {
		seen := make(map[string]bool, len(args))
		w.U32(uint32(len(args)))
		for i, a := range args {
			if a.Name == "" {
				return errors.Errorf("args[%d] has no name", i)
			}
			if seen[a.Name] {
				return errors.Errorf("duplicate argument %q", a.Name)
			}
			seen[a.Name] = true
			if a.Value == nil {
				return errors.Errorf("argument %q has no value", a.Name)
			}
			w.String(a.Name)
			w.SliceBytes(clvalue.Encode(a.Value))
			w.FixedBytes(clvalue.EncodeType(a.Value.Type()))
		}
		return nil
	})
}

// ArgSpec is one entry of an args file. Value holds a JSON literal.
type ArgSpec struct {
	Name   string     `yaml:"name"`
	Type   string     `yaml:"type"`
	Value  string     `yaml:"value"`
	Shapes []KeyShape `yaml:"shapes,omitempty"`
}

type argsFile struct {
	Args []ArgSpec `yaml:"args"`
}

// Parse declares, validates and builds the argument.
func (s ArgSpec) Parse() (Arg, error) {
	t, err := cltype.Parse(s.Type)
	if err != nil {
		return Arg{}, errors.Wrapf(err, "argument %q", s.Name)
	}
	raw, err := DecodeJSON(s.Value)
	if err != nil {
		return Arg{}, errors.Wrapf(err, "argument %q", s.Name)
	}
	return NewArg(s.Name, Decl{Type: t, Shapes: s.Shapes}, raw)
}

// LoadArgs reads an args document:
//
//	args:
//	  - name: amount
//	    type: U512
//	    value: "1000000"
//	  - name: target
//	    type: Key
//	    value: '"<64 hex chars>"'
//	    shapes: [account]
func LoadArgs(data []byte) ([]Arg, error) {
	var f argsFile
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, errors.Wrap(err, "failed to parse args")
	}
	args := make([]Arg, 0, len(f.Args))
	seen := make(map[string]bool, len(f.Args))
	for i, entry := range f.Args {
		if entry.Name == "" {
			return nil, errors.Errorf("args[%d] has no name", i)
		}
		if seen[entry.Name] {
			return nil, errors.Errorf("duplicate argument %q", entry.Name)
		}
		seen[entry.Name] = true

		a, err := entry.Parse()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return args, nil
}

// LoadArgsFile reads an args document from path.
func LoadArgsFile(path string) ([]Arg, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read args file %s", path)
	}
	return LoadArgs(data)
}
