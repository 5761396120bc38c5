package cltype

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a malformed type expression.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid type %q: %s", e.Input, e.Reason)
}

var simpleByName = map[string]Simple{}

func init() {
	for _, s := range []Simple{Bool, I32, I64, U8, U32, U64, U128, U256, U512, Unit, String, Key, URef, Bytes} {
		simpleByName[strings.ToLower(s.tag.String())] = s
	}
}

// Parse reads a type expression as produced by Type.String. Names are
// case-insensitive and whitespace between tokens is ignored:
//
//	U512
//	FixedBytes(32)
//	Option(List(Key))
//	FixedList(U8, 4)
//	Tuple3(Bool, String, U64)
//	Map(String, URef)
func Parse(s string) (Type, error) {
	p := &parser{input: s, toks: tokenize(s)}
	t, err := p.parseType()
	if err != nil {
		return Type{}, err
	}
	if !p.done() {
		return Type{}, p.fail("unexpected %q after type", p.peek())
	}
	return t, nil
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(s string) Type {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	input string
	toks  []string
	pos   int
}

func tokenize(s string) []string {
	var (
		toks []string
		cur  strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '(' || r == ')' || r == ',':
			flush()
			toks = append(toks, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}

func (p *parser) fail(format string, args ...interface{}) error {
	return &ParseError{Input: p.input, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) done() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) peek() string {
	if p.done() {
		return ""
	}
	return p.toks[p.pos]
}

func (p *parser) next() string {
	tok := p.peek()
	if !p.done() {
		p.pos++
	}
	return tok
}

func (p *parser) expect(tok string) error {
	if got := p.next(); got != tok {
		if got == "" {
			return p.fail("expected %q, got end of input", tok)
		}
		return p.fail("expected %q, got %q", tok, got)
	}
	return nil
}

// args parses "(" item {"," item} ")" with item parsed by f.
func (p *parser) args(f func() error) error {
	if err := p.expect("("); err != nil {
		return err
	}
	for {
		if err := f(); err != nil {
			return err
		}
		if p.peek() != "," {
			break
		}
		p.next()
	}
	return p.expect(")")
}

func (p *parser) parseLength() (uint32, error) {
	tok := p.next()
	n, err := strconv.ParseUint(tok, 10, 32)
	if err != nil {
		return 0, p.fail("invalid length %q", tok)
	}
	return uint32(n), nil
}

func (p *parser) parseSimple() (Simple, error) {
	t, err := p.parseType()
	if err != nil {
		return Simple{}, err
	}
	s, ok := t.Simple()
	if !ok {
		return Simple{}, p.fail("nested composite %s is not supported as an element type", t)
	}
	return s, nil
}

func (p *parser) parseType() (Type, error) {
	name := p.next()
	if name == "" {
		return Type{}, p.fail("unexpected end of input")
	}
	lower := strings.ToLower(name)
	if s, ok := simpleByName[lower]; ok {
		return s.Type(), nil
	}

	switch lower {
	case "fixedbytes":
		var n uint32
		err := p.args(func() (err error) {
			n, err = p.parseLength()
			return err
		})
		if err != nil {
			return Type{}, err
		}
		return FixedBytes(n).Type(), nil

	case "option":
		if err := p.expect("("); err != nil {
			return Type{}, err
		}
		inner, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		if err := p.expect(")"); err != nil {
			return Type{}, err
		}
		return Option(inner), nil

	case "fixedlist":
		var (
			elem  Simple
			n     uint32
			index int
		)
		err := p.args(func() (err error) {
			switch index {
			case 0:
				elem, err = p.parseSimple()
			case 1:
				n, err = p.parseLength()
			default:
				err = p.fail("FixedList takes an element type and a length")
			}
			index++
			return err
		})
		if err != nil {
			return Type{}, err
		}
		if index != 2 {
			return Type{}, p.fail("FixedList takes an element type and a length")
		}
		return FixedList(elem, n), nil

	case "list", "map", "tuple", "tuple1", "tuple2", "tuple3":
		var elems []Simple
		err := p.args(func() error {
			s, err := p.parseSimple()
			elems = append(elems, s)
			return err
		})
		if err != nil {
			return Type{}, err
		}
		return p.composite(lower, elems)
	}

	return Type{}, p.fail("unknown type name %q", name)
}

func (p *parser) composite(name string, elems []Simple) (Type, error) {
	arity := map[string]int{"list": 1, "map": 2, "tuple1": 1, "tuple2": 2, "tuple3": 3}
	if want, ok := arity[name]; ok && len(elems) != want {
		return Type{}, p.fail("%s takes %d element type(s), got %d", name, want, len(elems))
	}
	switch name {
	case "list":
		return List(elems[0]), nil
	case "map":
		return Map(elems[0], elems[1]), nil
	}
	t, ok := Tuple(elems...)
	if !ok {
		return Type{}, p.fail("tuples take 1 to 3 element types, got %d", len(elems))
	}
	return t, nil
}
