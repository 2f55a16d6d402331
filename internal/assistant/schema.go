package assistant

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ArgType is the wire type an argument must carry. JSON numbers arrive as
// float64; integer fields additionally require a whole value.
type ArgType string

const (
	ArgString  ArgType = "string"
	ArgInteger ArgType = "integer"
	ArgNumber  ArgType = "number"
)

// ArgSpec declares one argument of a tool schema.
type ArgSpec struct {
	Type        ArgType
	Description string
	Required    bool
	Default     any  // applied when an optional field is absent
	Min, Max    *int // inclusive bounds, integer fields only
}

// Schema is the structural contract model-supplied arguments are checked
// against. Unknown fields are rejected outright; a failed check means the
// tool is never invoked.
type Schema map[string]ArgSpec

// Validate checks args against the schema and returns the canonical argument
// map: strings stay strings, integer fields become int, number fields
// float64, and absent optional fields take their declared defaults.
func (s Schema) Validate(args map[string]any) (map[string]any, error) {
	for name := range args {
		if _, ok := s[name]; !ok {
			return nil, fmt.Errorf("unexpected argument %q", name)
		}
	}

	out := make(map[string]any, len(s))
	for name, spec := range s {
		raw, present := args[name]
		if !present || raw == nil {
			if spec.Required {
				return nil, fmt.Errorf("missing required argument %q", name)
			}
			if spec.Default != nil {
				out[name] = spec.Default
			}
			continue
		}

		val, err := coerce(spec.Type, raw)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", name, err)
		}

		if spec.Type == ArgInteger {
			n := val.(int)
			if spec.Min != nil && n < *spec.Min {
				return nil, fmt.Errorf("argument %q: %d is below minimum %d", name, n, *spec.Min)
			}
			if spec.Max != nil && n > *spec.Max {
				return nil, fmt.Errorf("argument %q: %d is above maximum %d", name, n, *spec.Max)
			}
		}
		out[name] = val
	}
	return out, nil
}

func coerce(t ArgType, raw any) (any, error) {
	switch t {
	case ArgString:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string, got %T", raw)
		}
		return s, nil
	case ArgInteger:
		switch v := raw.(type) {
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("expected an integer, got %v", v)
			}
			return int(v), nil
		case int:
			return v, nil
		default:
			return nil, fmt.Errorf("expected an integer, got %T", raw)
		}
	case ArgNumber:
		switch v := raw.(type) {
		case float64:
			return v, nil
		case int:
			return float64(v), nil
		default:
			return nil, fmt.Errorf("expected a number, got %T", raw)
		}
	default:
		return nil, fmt.Errorf("unknown argument type %q", t)
	}
}

// promptJSON renders the schema as a deterministic JSON-Schema-style object
// for the tool catalog in the proposal prompt.
func (s Schema) promptJSON() string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	props := make([]string, 0, len(names))
	var required []string
	for _, name := range names {
		spec := s[name]
		field := map[string]any{
			"type":        string(spec.Type),
			"description": spec.Description,
		}
		if spec.Min != nil {
			field["minimum"] = *spec.Min
		}
		if spec.Max != nil {
			field["maximum"] = *spec.Max
		}
		raw, _ := json.Marshal(field)
		props = append(props, fmt.Sprintf("%q: %s", name, raw))
		if spec.Required {
			required = append(required, fmt.Sprintf("%q", name))
		}
	}

	return fmt.Sprintf(`{"type": "object", "properties": {%s}, "required": [%s]}`,
		strings.Join(props, ", "), strings.Join(required, ", "))
}
