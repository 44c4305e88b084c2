package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format names a serialization format for descriptor documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps user input (including file extensions) onto a Format.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("schema: unknown format %q", raw)
	}
}

// Encode serializes the tree in the requested format.
func Encode(d FieldDescriptor, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return EncodeJSON(d)
	case FormatYAML:
		return EncodeYAML(d)
	default:
		return nil, fmt.Errorf("schema: unknown format %q", format)
	}
}

// EncodeJSON renders the tree as indented JSON.
func EncodeJSON(d FieldDescriptor) ([]byte, error) {
	out, err := MarshalIndent(d)
	if err != nil {
		return nil, fmt.Errorf("schema: encode json: %w", err)
	}
	return out, nil
}

// MarshalIndent encodes v as two-space indented JSON terminated by a newline.
// It marshals compactly and indents in a second pass, since go-json's
// MarshalIndent emits runaway whitespace for recursive values holding maps
// with custom marshalers.
func MarshalIndent(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.Grow(len(raw) * 2)
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// EncodeYAML renders the tree as YAML.
func EncodeYAML(d FieldDescriptor) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("schema: encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("schema: encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeJSON parses a JSON descriptor, rejecting unknown attributes.
func DecodeJSON(data []byte) (FieldDescriptor, error) {
	var d FieldDescriptor
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return FieldDescriptor{}, fmt.Errorf("schema: decode json: %w", err)
	}
	return d, nil
}

// DecodeYAML parses a YAML descriptor, rejecting unknown attributes.
func DecodeYAML(data []byte) (FieldDescriptor, error) {
	var d FieldDescriptor
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return FieldDescriptor{}, errors.New("schema: decode yaml: document is empty")
		}
		return FieldDescriptor{}, fmt.Errorf("schema: decode yaml: %w", err)
	}
	return d, nil
}

// Decode sniffs the payload: objects starting with '{' are read as JSON,
// anything else as YAML.
func Decode(data []byte) (FieldDescriptor, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return FieldDescriptor{}, errors.New("schema: document is empty")
	}
	if trimmed[0] == '{' {
		return DecodeJSON(trimmed)
	}
	return DecodeYAML(trimmed)
}
