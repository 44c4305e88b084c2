// Package jsonschema exports document types as JSON Schema (Draft 2020-12)
// documents describing the content records they accept.
package jsonschema

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-docschema/pkg/schema"
)

const (
	// Draft identifies the JSON Schema dialect emitted by Export.
	Draft = "https://json-schema.org/draft/2020-12/schema"
	// OptionsExtension carries descriptor options on exported properties.
	OptionsExtension = "x-docschema-options"
)

var (
	// HotspotMembers are the focal-point coordinates stored on image values.
	HotspotMembers = []string{"x", "y", "width", "height"}
	// CropMembers are the crop insets stored on image values.
	CropMembers = []string{"top", "bottom", "left", "right"}
)

// Schema is the subset of JSON Schema needed to describe content records.
type Schema struct {
	Dialect              string         `json:"$schema,omitempty"`
	ID                   string         `json:"$id,omitempty"`
	Title                string         `json:"title,omitempty"`
	Description          string         `json:"description,omitempty"`
	Type                 string         `json:"type,omitempty"`
	Const                any            `json:"const,omitempty"`
	Minimum              *float64       `json:"minimum,omitempty"`
	Maximum              *float64       `json:"maximum,omitempty"`
	MinLength            int            `json:"minLength,omitempty"`
	Properties           *Properties    `json:"properties,omitempty"`
	Required             []string       `json:"required,omitempty"`
	AdditionalProperties *bool          `json:"additionalProperties,omitempty"`
	Options              map[string]any `json:"x-docschema-options,omitempty"`
}

// Property is a named entry of an object schema.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties keeps object members in declaration order.
type Properties []Property

// Get returns the schema of the named property.
func (p Properties) Get(name string) (*Schema, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Schema, true
		}
	}
	return nil, false
}

// Names lists the property names in order.
func (p Properties) Names() []string {
	names := make([]string, len(p))
	for i, prop := range p {
		names[i] = prop.Name
	}
	return names
}

// MarshalJSON writes the members as a JSON object in declaration order.
func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, prop := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(prop.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(prop.Schema)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ExportOption customises Export.
type ExportOption func(*exportConfig)

type exportConfig struct {
	baseURI string
	strict  bool
}

// WithBaseURI sets the prefix used for the `$id` of exported documents.
func WithBaseURI(uri string) ExportOption {
	return func(cfg *exportConfig) {
		cfg.baseURI = strings.TrimRight(strings.TrimSpace(uri), "/")
	}
}

// WithAdditionalProperties allows records to carry members the document type
// does not declare.
func WithAdditionalProperties() ExportOption {
	return func(cfg *exportConfig) {
		cfg.strict = false
	}
}

// Export converts a validated document type into a JSON Schema document.
func Export(doc schema.FieldDescriptor, options ...ExportOption) (*Schema, error) {
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("jsonschema: export: %w", err)
	}
	cfg := exportConfig{strict: true}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	root := cfg.object(doc)
	root.Dialect = Draft
	if cfg.baseURI != "" {
		root.ID = cfg.baseURI + "/" + doc.Name + ".schema.json"
	}
	root.Options = doc.Options.Map()
	return root, nil
}

// Marshal exports doc and renders it as indented JSON.
func Marshal(doc schema.FieldDescriptor, options ...ExportOption) ([]byte, error) {
	out, err := Export(doc, options...)
	if err != nil {
		return nil, err
	}
	data, err := schema.MarshalIndent(out)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: marshal: %w", err)
	}
	return data, nil
}

func (cfg exportConfig) object(container schema.FieldDescriptor) *Schema {
	out := &Schema{
		Title:                container.Title,
		Type:                 "object",
		AdditionalProperties: cfg.additional(),
	}
	props := make(Properties, 0, len(container.Fields))
	for _, field := range container.Fields {
		props = append(props, Property{Name: field.Name, Schema: cfg.field(field)})
	}
	out.Properties = &props
	return out
}

func (cfg exportConfig) field(field schema.FieldDescriptor) *Schema {
	var out *Schema
	switch field.Type {
	case schema.TypeObject:
		out = cfg.object(field)
	case schema.TypeImage:
		out = cfg.image(field)
	default:
		out = &Schema{Title: field.Title, Type: string(field.Type)}
	}
	out.Options = field.Options.Map()
	return out
}

func (cfg exportConfig) image(field schema.FieldDescriptor) *Schema {
	props := Properties{
		{Name: "_type", Schema: &Schema{Const: "image"}},
		{Name: "asset", Schema: &Schema{
			Type: "object",
			Properties: &Properties{
				{Name: "_ref", Schema: &Schema{Type: "string", MinLength: 1}},
				{Name: "_type", Schema: &Schema{Const: "reference"}},
			},
			Required:             []string{"_ref"},
			AdditionalProperties: cfg.additional(),
		}},
	}
	if field.Options.Bool(schema.OptionHotspot) {
		props = append(props,
			Property{Name: "hotspot", Schema: unitBox("Hotspot", HotspotMembers, cfg.additional())},
			Property{Name: "crop", Schema: unitBox("Crop", CropMembers, cfg.additional())},
		)
	}
	return &Schema{
		Title:                field.Title,
		Type:                 "object",
		Properties:           &props,
		AdditionalProperties: cfg.additional(),
	}
}

func (cfg exportConfig) additional() *bool {
	if !cfg.strict {
		return nil
	}
	allowed := false
	return &allowed
}

// unitBox describes an object whose members are fractions of the image size.
func unitBox(title string, names []string, additional *bool) *Schema {
	props := make(Properties, 0, len(names))
	for _, name := range names {
		lo, hi := 0.0, 1.0
		props = append(props, Property{Name: name, Schema: &Schema{Type: "number", Minimum: &lo, Maximum: &hi}})
	}
	return &Schema{
		Title:                title,
		Type:                 "object",
		Properties:           &props,
		Required:             append([]string(nil), names...),
		AdditionalProperties: additional,
	}
}
