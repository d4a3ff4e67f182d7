package core

import (
	"encoding/json"
	"io"

	yaml "gopkg.in/yaml.v3"
)

// MarshalContext pretty-prints a context as JSON with sorted keys.
func MarshalContext(w io.Writer, ctx Value) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ctx)
}

// UnmarshalContext decodes a JSON or YAML context document. JSON is valid
// YAML, so one decoder serves both.
func UnmarshalContext(r io.Reader) (Value, error) {
	var v Value
	if err := yaml.NewDecoder(r).Decode(&v); err != nil {
		return Value{}, err
	}
	return v, nil
}
