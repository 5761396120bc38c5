package deployarg

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// DecodeJSON parses a JSON literal into the raw form accepted by Validate:
// json.Number for numbers, string, bool, []interface{} and nil. Numbers are
// kept as their literal text so wide integers lose no precision.
func DecodeJSON(s string) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(s)))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "invalid JSON literal")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("invalid JSON literal: trailing data")
	}
	return raw, nil
}

// render formats raw input for messages in its JSON spelling.
func render(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "<unprintable>"
	}
	return string(b)
}
