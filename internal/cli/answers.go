package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"
)

// LoadAnswers reads a YAML file of name/value pairs into the value map a
// render call pre-seeds its answers from. Values round-trip through cty's
// JSON codec so numbers, bools, lists and nested objects come out properly
// typed.
func LoadAnswers(path string) (map[string]cty.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing answers file %s: %w", path, err)
	}

	out := make(map[string]cty.Value, len(raw))
	for name, v := range raw {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("answer %q: %w", name, err)
		}
		ty, err := ctyjson.ImpliedType(encoded)
		if err != nil {
			return nil, fmt.Errorf("answer %q: %w", name, err)
		}
		val, err := ctyjson.Unmarshal(encoded, ty)
		if err != nil {
			return nil, fmt.Errorf("answer %q: %w", name, err)
		}
		out[name] = val
	}
	return out, nil
}
