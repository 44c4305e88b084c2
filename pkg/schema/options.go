package schema

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// OptionKind identifies the primitive held by an OptionValue.
type OptionKind uint8

const (
	OptionInvalid OptionKind = iota
	OptionBool
	OptionNumber
	OptionString
)

func (k OptionKind) String() string {
	switch k {
	case OptionBool:
		return "bool"
	case OptionNumber:
		return "number"
	case OptionString:
		return "string"
	default:
		return "invalid"
	}
}

// OptionValue is a small variant over the primitive values an option may hold.
// The zero value is invalid and never produced by the decoders.
type OptionValue struct {
	kind OptionKind
	b    bool
	n    float64
	s    string
}

// BoolOption wraps a boolean flag.
func BoolOption(v bool) OptionValue {
	return OptionValue{kind: OptionBool, b: v}
}

// NumberOption wraps a numeric setting.
func NumberOption(v float64) OptionValue {
	return OptionValue{kind: OptionNumber, n: v}
}

// StringOption wraps a textual setting.
func StringOption(v string) OptionValue {
	return OptionValue{kind: OptionString, s: v}
}

// OptionOf converts a decoded primitive into an OptionValue. Integers are
// widened to float64 so JSON and YAML sources agree.
func OptionOf(v any) (OptionValue, error) {
	switch typed := v.(type) {
	case OptionValue:
		if typed.kind == OptionInvalid {
			return OptionValue{}, fmt.Errorf("schema: invalid option value")
		}
		return typed, nil
	case bool:
		return BoolOption(typed), nil
	case string:
		return StringOption(typed), nil
	case float64:
		return numberOption(typed)
	case float32:
		return numberOption(float64(typed))
	case int:
		return NumberOption(float64(typed)), nil
	case int64:
		return NumberOption(float64(typed)), nil
	case uint64:
		return NumberOption(float64(typed)), nil
	case json.Number:
		f, err := typed.Float64()
		if err != nil {
			return OptionValue{}, fmt.Errorf("schema: option number %q: %w", typed, err)
		}
		return numberOption(f)
	default:
		return OptionValue{}, fmt.Errorf("schema: unsupported option value of type %T", v)
	}
}

func numberOption(f float64) (OptionValue, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return OptionValue{}, fmt.Errorf("schema: option number %v is not finite", f)
	}
	return NumberOption(f), nil
}

// Kind reports the primitive held by the value.
func (v OptionValue) Kind() OptionKind {
	return v.kind
}

// AsBool returns the boolean payload and whether the value is a bool.
func (v OptionValue) AsBool() (bool, bool) {
	return v.b, v.kind == OptionBool
}

// AsNumber returns the numeric payload and whether the value is a number.
func (v OptionValue) AsNumber() (float64, bool) {
	return v.n, v.kind == OptionNumber
}

// AsString returns the textual payload and whether the value is a string.
func (v OptionValue) AsString() (string, bool) {
	return v.s, v.kind == OptionString
}

// Interface returns the payload as a plain Go value.
func (v OptionValue) Interface() any {
	switch v.kind {
	case OptionBool:
		return v.b
	case OptionNumber:
		return v.n
	case OptionString:
		return v.s
	default:
		return nil
	}
}

// Equal reports whether both values hold the same primitive.
func (v OptionValue) Equal(other OptionValue) bool {
	return v == other
}

func (v OptionValue) String() string {
	switch v.kind {
	case OptionBool:
		return strconv.FormatBool(v.b)
	case OptionNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case OptionString:
		return v.s
	default:
		return ""
	}
}

// MarshalJSON encodes the payload as a bare JSON primitive.
func (v OptionValue) MarshalJSON() ([]byte, error) {
	if v.kind == OptionInvalid {
		return nil, fmt.Errorf("schema: cannot encode invalid option value")
	}
	return json.Marshal(v.Interface())
}

// UnmarshalJSON accepts a JSON bool, number or string.
func (v *OptionValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("schema: decode option: %w", err)
	}
	decoded, err := OptionOf(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// MarshalYAML encodes the payload as a YAML scalar.
func (v OptionValue) MarshalYAML() (any, error) {
	if v.kind == OptionInvalid {
		return nil, fmt.Errorf("schema: cannot encode invalid option value")
	}
	return v.Interface(), nil
}

// UnmarshalYAML accepts a YAML bool, int, float or string scalar.
func (v *OptionValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("schema: option at line %d must be a scalar", node.Line)
	}
	var raw any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("schema: decode option at line %d: %w", node.Line, err)
	}
	if raw == nil {
		return fmt.Errorf("schema: option at line %d is null", node.Line)
	}
	decoded, err := OptionOf(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// Options is the open option bag attached to a descriptor.
type Options map[string]OptionValue

// Keys returns the option keys sorted lexically.
func (o Options) Keys() []string {
	if len(o) == 0 {
		return nil
	}
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Bool returns the boolean stored under key, false when missing or not a bool.
func (o Options) Bool(key string) bool {
	b, ok := o[key].AsBool()
	return ok && b
}

// Number returns the number stored under key.
func (o Options) Number(key string) (float64, bool) {
	return o[key].AsNumber()
}

// Text returns the string stored under key.
func (o Options) Text(key string) (string, bool) {
	return o[key].AsString()
}

// Clone copies the bag. A nil bag stays nil.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Equal compares two bags, treating nil and empty as equal.
func (o Options) Equal(other Options) bool {
	if len(o) != len(other) {
		return false
	}
	for key, value := range o {
		candidate, ok := other[key]
		if !ok || !candidate.Equal(value) {
			return false
		}
	}
	return true
}

// Map exposes the bag as plain Go values.
func (o Options) Map() map[string]any {
	if len(o) == 0 {
		return nil
	}
	out := make(map[string]any, len(o))
	for key, value := range o {
		out[key] = value.Interface()
	}
	return out
}
