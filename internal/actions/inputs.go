package actions

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// MapInputs serves inputs from a fixed set of values, deferring to a
// fallback for names it does not hold. Names match the way the runner
// matches them: case-insensitively, with spaces equal to underscores.
type MapInputs struct {
	values   map[string]string
	fallback Inputs
}

// NewMapInputs returns inputs backed by values. fallback may be nil.
func NewMapInputs(values map[string]string, fallback Inputs) *MapInputs {
	m := &MapInputs{
		values:   make(map[string]string, len(values)),
		fallback: fallback,
	}
	for k, v := range values {
		m.values[InputEnvName(k)] = v
	}
	return m
}

// LoadInputsFile reads a YAML mapping of input names to scalar values, as
// written under "with:" in a workflow file.
//
//	url: https://vault.example.com:8200
//	kv-version: 1
//	exportToken: true
//	secrets: |
//	  secret/ci npmToken | NPM_TOKEN ;
func LoadInputsFile(path string, fallback Inputs) (*MapInputs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read inputs file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML in inputs file %s: %w", path, err)
	}

	values := make(map[string]string, len(raw))
	for name, v := range raw {
		switch tv := v.(type) {
		case nil:
			values[name] = ""
		case string:
			values[name] = tv
		case bool, int, float64:
			values[name] = fmt.Sprint(tv)
		default:
			return nil, fmt.Errorf("input %q in %s must be a scalar value", name, path)
		}
	}

	return NewMapInputs(values, fallback), nil
}

// GetInput returns the trimmed value for name.
func (m *MapInputs) GetInput(name string) string {
	if v, ok := m.values[InputEnvName(name)]; ok {
		return strings.TrimSpace(v)
	}
	if m.fallback != nil {
		return m.fallback.GetInput(name)
	}
	return ""
}
