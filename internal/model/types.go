package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeObject  FieldType = "object"
	FieldTypeImage   FieldType = "image"
)

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
)

// Metadata keys written by the builder.
const (
	MetadataDocumentType = "documentType"
	MetadataImageHotspot = "image.hotspot"
	MetadataOptionPrefix = "option."
	MetadataImagePart    = "image.part"
)

// ValidationRule represents a single constraint applied to a field. Numeric
// bounds and length limits encode their threshold in Params["value"].
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field models an individual input inside a generated form. Path is the
// dotted location of the value inside a content record.
type Field struct {
	Name        string            `json:"name"`
	Path        string            `json:"path"`
	Type        FieldType         `json:"type"`
	Required    bool              `json:"required"`
	Label       string            `json:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Default     any               `json:"default,omitempty"`
	Nested      []Field           `json:"nested,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty"`
}

// FormModel is the top-level representation renderers consume. One form
// edits one record of DocumentType.
type FormModel struct {
	DocumentType string            `json:"documentType"`
	Title        string            `json:"title"`
	Fields       []Field           `json:"fields"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Leaves returns the fields that hold scalar values, depth first. Image
// fields contribute their generated members.
func (f FormModel) Leaves() []Field {
	var out []Field
	var visit func(fields []Field)
	visit = func(fields []Field) {
		for _, field := range fields {
			if len(field.Nested) > 0 {
				visit(field.Nested)
				continue
			}
			out = append(out, field)
		}
	}
	visit(f.Fields)
	return out
}

// Find returns the field at the dotted path.
func (f FormModel) Find(path string) (Field, bool) {
	var search func(fields []Field) (Field, bool)
	search = func(fields []Field) (Field, bool) {
		for _, field := range fields {
			if field.Path == path {
				return field, true
			}
			if found, ok := search(field.Nested); ok {
				return found, true
			}
		}
		return Field{}, false
	}
	return search(f.Fields)
}

// Rule returns the validation rule of the given kind.
func (f Field) Rule(kind string) (ValidationRule, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return rule, true
		}
	}
	return ValidationRule{}, false
}

func (f *Field) ensureMetadata() map[string]string {
	if f.Metadata == nil {
		f.Metadata = make(map[string]string)
	}
	return f.Metadata
}

func (f *Field) ensureUIHints() map[string]string {
	if f.UIHints == nil {
		f.UIHints = make(map[string]string)
	}
	return f.UIHints
}

func (f *Field) normalize() {
	if len(f.Metadata) == 0 {
		f.Metadata = nil
	}
	if len(f.UIHints) == 0 {
		f.UIHints = nil
	}
	if len(f.Validations) == 0 {
		f.Validations = nil
	}
}
