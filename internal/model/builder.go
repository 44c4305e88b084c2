package model

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-docschema/pkg/schema"
)

// Image record members.
const (
	ImageAsset   = "asset"
	ImageRef     = "_ref"
	ImageHotspot = "hotspot"
	ImageCrop    = "crop"
)

// Builder converts document types into form models.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build transforms a document type into a FormModel suitable for rendering.
// Fields keep the declaration order of the descriptor.
func (b *Builder) Build(doc schema.FieldDescriptor) (FormModel, error) {
	if err := schema.Validate(doc); err != nil {
		return FormModel{}, fmt.Errorf("model builder: %w", err)
	}

	form := FormModel{
		DocumentType: doc.Name,
		Title:        b.label(doc),
		Metadata:     map[string]string{MetadataDocumentType: doc.Name},
	}
	for _, key := range doc.Options.Keys() {
		if value := doc.Options[key].String(); value != "" {
			form.Metadata[MetadataOptionPrefix+key] = value
		}
	}
	form.Fields = b.fields(doc.Fields, "")
	return form, nil
}

func (b *Builder) fields(descs []schema.FieldDescriptor, parent string) []Field {
	out := make([]Field, 0, len(descs))
	for _, desc := range descs {
		out = append(out, b.field(desc, parent))
	}
	return out
}

func (b *Builder) field(desc schema.FieldDescriptor, parent string) Field {
	path := joinPath(parent, desc.Name)
	field := Field{
		Name:  desc.Name,
		Path:  path,
		Type:  mapType(desc.Type),
		Label: b.label(desc),
	}
	if field.Type != FieldTypeObject {
		field.ensureUIHints()["inputType"] = defaultInputType(field.Type)
	}
	applyOptions(&field, desc.Options)

	switch field.Type {
	case FieldTypeObject:
		field.Nested = b.fields(desc.Fields, path)
	case FieldTypeImage:
		hotspot := desc.Options.Bool(schema.OptionHotspot)
		field.ensureUIHints()["widget"] = "image"
		field.ensureMetadata()[MetadataImageHotspot] = strconv.FormatBool(hotspot)
		field.Nested = b.imageMembers(path, hotspot)
	}
	field.normalize()
	return field
}

func (b *Builder) label(desc schema.FieldDescriptor) string {
	if desc.Title != "" {
		return desc.Title
	}
	return b.opts.Labeler(desc.Name)
}

// imageMembers expands an image field into the inputs of an image value: the
// asset reference and, with hotspot enabled, the focal box and crop insets.
func (b *Builder) imageMembers(path string, hotspot bool) []Field {
	assetPath := joinPath(path, ImageAsset)
	members := []Field{{
		Name:     ImageAsset,
		Path:     assetPath,
		Type:     FieldTypeObject,
		Label:    b.opts.Labeler(ImageAsset),
		Metadata: map[string]string{MetadataImagePart: ImageAsset},
		Nested: []Field{{
			Name:        ImageRef,
			Path:        joinPath(assetPath, ImageRef),
			Type:        FieldTypeString,
			Required:    true,
			Label:       "Asset Reference",
			Placeholder: "image-abc123",
			Validations: []ValidationRule{{Kind: ValidationRuleMinLength, Params: map[string]string{"value": "1"}}},
			Metadata:    map[string]string{MetadataImagePart: ImageAsset},
			UIHints:     map[string]string{"inputType": "text"},
		}},
	}}
	if !hotspot {
		return members
	}
	return append(members,
		b.unitBox(path, ImageHotspot, []string{"x", "y", "width", "height"}, []float64{0.5, 0.5, 1, 1}),
		b.unitBox(path, ImageCrop, []string{"top", "bottom", "left", "right"}, []float64{0, 0, 0, 0}),
	)
}

func (b *Builder) unitBox(parent, name string, members []string, defaults []float64) Field {
	path := joinPath(parent, name)
	box := Field{
		Name:     name,
		Path:     path,
		Type:     FieldTypeObject,
		Label:    b.opts.Labeler(name),
		Metadata: map[string]string{MetadataImagePart: name},
	}
	for i, member := range members {
		box.Nested = append(box.Nested, Field{
			Name:     member,
			Path:     joinPath(path, member),
			Type:     FieldTypeNumber,
			Required: true,
			Label:    b.opts.Labeler(member),
			Default:  defaults[i],
			Validations: []ValidationRule{
				{Kind: ValidationRuleMin, Params: map[string]string{"value": "0"}},
				{Kind: ValidationRuleMax, Params: map[string]string{"value": "1"}},
			},
			Metadata: map[string]string{MetadataImagePart: name},
			UIHints:  map[string]string{"inputType": "number", "step": "0.01"},
		})
	}
	return box
}

func mapType(kind schema.FieldType) FieldType {
	switch kind {
	case schema.TypeNumber:
		return FieldTypeNumber
	case schema.TypeBoolean:
		return FieldTypeBoolean
	case schema.TypeObject:
		return FieldTypeObject
	case schema.TypeImage:
		return FieldTypeImage
	default:
		return FieldTypeString
	}
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
