package repl

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
)

// DecodeVars reads variables from a YAML mapping of names to values, e.g.
//
//	a: 5
//	b: a
//
// Every name must be an identifier, and every value a number or an
// identifier.
func DecodeVars(r io.Reader) (calc.Vars, error) {
	var m map[string]string
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		if err == io.EOF {
			// An empty document has no variables.
			return calc.Vars{}, nil
		}
		return nil, fmt.Errorf("decoding variables: %w", err)
	}
	v := make(calc.Vars, len(m))
	for k, x := range m {
		if !calc.NewToken(k).IsIdent() {
			return nil, fmt.Errorf("invalid variable name %q", k)
		}
		t := calc.NewToken(x)
		if !t.IsNumber() && !t.IsIdent() {
			return nil, fmt.Errorf("invalid value %q for variable %s", x, k)
		}
		v[k] = x
	}
	return v, nil
}

// EncodeVars writes variables as a YAML mapping with sorted keys.
func EncodeVars(w io.Writer, v calc.Vars) error {
	m := map[string]string(v)
	if m == nil {
		m = map[string]string{}
	}
	b, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding variables: %w", err)
	}
	_, err = w.Write(b)
	return err
}

// ReadVarsFile loads variables from a YAML file.
func ReadVarsFile(path string) (calc.Vars, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	v, err := DecodeVars(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// WriteVarsFile saves variables to a YAML file, replacing it if it exists.
func WriteVarsFile(path string, v calc.Vars) error {
	var b bytes.Buffer
	if err := EncodeVars(&b, v); err != nil {
		return err
	}
	return os.WriteFile(path, b.Bytes(), 0o644)
}
