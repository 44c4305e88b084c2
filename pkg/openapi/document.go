// Package openapi publishes document types as OpenAPI component schemas and
// validates content records against them using kin-openapi.
package openapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/ettle/strcase"
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docschema/pkg/schema"
)

// Version is the OpenAPI version emitted by Document.
const Version = "3.0.3"

// OptionsExtension carries descriptor options on component schemas.
const OptionsExtension = "x-docschema-options"

// Info describes the generated API document.
type Info struct {
	Title   string
	Version string
}

// ComponentName maps a document type name onto its component key.
func ComponentName(name string) string {
	return strcase.ToPascal(name)
}

// Document bundles the document types into an OpenAPI document whose
// components.schemas hold one entry per type. The result is validated before
// it is returned.
func Document(ctx context.Context, info Info, docs ...schema.FieldDescriptor) (*openapi3.T, error) {
	if len(docs) == 0 {
		return nil, errors.New("openapi: at least one document type is required")
	}
	if info.Title == "" {
		info.Title = "Document types"
	}
	if info.Version == "" {
		info.Version = "1.0.0"
	}

	spec := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:   info.Title,
			Version: info.Version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas, len(docs)),
		},
	}

	for _, doc := range docs {
		ref, err := SchemaRef(doc)
		if err != nil {
			return nil, err
		}
		key := ComponentName(doc.Name)
		if _, exists := spec.Components.Schemas[key]; exists {
			return nil, fmt.Errorf("openapi: component %q declared twice", key)
		}
		spec.Components.Schemas[key] = ref
	}

	if err := spec.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return spec, nil
}

// Marshal renders the document as indented JSON.
func Marshal(spec *openapi3.T) ([]byte, error) {
	if spec == nil {
		return nil, errors.New("openapi: document is nil")
	}
	data, err := schema.MarshalIndent(spec)
	if err != nil {
		return nil, fmt.Errorf("openapi: marshal: %w", err)
	}
	return data, nil
}

// SchemaRef converts a validated document type into an inline schema.
func SchemaRef(doc schema.FieldDescriptor) (*openapi3.SchemaRef, error) {
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("openapi: convert: %w", err)
	}
	root := objectSchema(doc)
	applyOptions(root, doc.Options)
	return openapi3.NewSchemaRef("", root), nil
}

func objectSchema(container schema.FieldDescriptor) *openapi3.Schema {
	out := &openapi3.Schema{
		Type:                 &openapi3.Types{openapi3.TypeObject},
		Title:                container.Title,
		Properties:           make(openapi3.Schemas, len(container.Fields)),
		AdditionalProperties: openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)},
	}
	for _, field := range container.Fields {
		out.Properties[field.Name] = openapi3.NewSchemaRef("", fieldSchema(field))
	}
	return out
}

func fieldSchema(field schema.FieldDescriptor) *openapi3.Schema {
	var out *openapi3.Schema
	switch field.Type {
	case schema.TypeObject:
		out = objectSchema(field)
	case schema.TypeImage:
		out = imageSchema(field)
	case schema.TypeNumber:
		out = &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeNumber}}
	case schema.TypeBoolean:
		out = &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeBoolean}}
	default:
		out = &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}}
	}
	out.Title = field.Title
	applyOptions(out, field.Options)
	return out
}

func imageSchema(field schema.FieldDescriptor) *openapi3.Schema {
	asset := &openapi3.Schema{
		Type: &openapi3.Types{openapi3.TypeObject},
		Properties: openapi3.Schemas{
			"_ref":  openapi3.NewSchemaRef("", &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}, MinLength: 1}),
			"_type": openapi3.NewSchemaRef("", &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}, Enum: []any{"reference"}}),
		},
		Required:             []string{"_ref"},
		AdditionalProperties: openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)},
	}
	out := &openapi3.Schema{
		Type: &openapi3.Types{openapi3.TypeObject},
		Properties: openapi3.Schemas{
			"_type": openapi3.NewSchemaRef("", &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}, Enum: []any{"image"}}),
			"asset": openapi3.NewSchemaRef("", asset),
		},
		AdditionalProperties: openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)},
	}
	if field.Options.Bool(schema.OptionHotspot) {
		out.Properties["hotspot"] = openapi3.NewSchemaRef("", unitBox("x", "y", "width", "height"))
		out.Properties["crop"] = openapi3.NewSchemaRef("", unitBox("top", "bottom", "left", "right"))
	}
	return out
}

func unitBox(members ...string) *openapi3.Schema {
	out := &openapi3.Schema{
		Type:                 &openapi3.Types{openapi3.TypeObject},
		Properties:           make(openapi3.Schemas, len(members)),
		Required:             append([]string(nil), members...),
		AdditionalProperties: openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)},
	}
	for _, name := range members {
		out.Properties[name] = openapi3.NewSchemaRef("", &openapi3.Schema{
			Type: &openapi3.Types{openapi3.TypeNumber},
			Min:  openapi3.Float64Ptr(0),
			Max:  openapi3.Float64Ptr(1),
		})
	}
	return out
}

func applyOptions(target *openapi3.Schema, opts schema.Options) {
	values := opts.Map()
	if len(values) == 0 {
		return
	}
	if target.Extensions == nil {
		target.Extensions = make(map[string]any, 1)
	}
	target.Extensions[OptionsExtension] = values
}
