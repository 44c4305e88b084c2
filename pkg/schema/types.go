package schema

// FieldType enumerates the kinds a descriptor can declare.
type FieldType string

const (
	TypeDocument FieldType = "document"
	TypeString   FieldType = "string"
	TypeNumber   FieldType = "number"
	TypeBoolean  FieldType = "boolean"
	TypeObject   FieldType = "object"
	TypeImage    FieldType = "image"
)

// FieldTypes lists the vocabulary in declaration order.
func FieldTypes() []FieldType {
	return []FieldType{TypeDocument, TypeString, TypeNumber, TypeBoolean, TypeObject, TypeImage}
}

// Valid reports whether t belongs to the vocabulary.
func (t FieldType) Valid() bool {
	switch t {
	case TypeDocument, TypeString, TypeNumber, TypeBoolean, TypeObject, TypeImage:
		return true
	default:
		return false
	}
}

// IsContainer reports whether descriptors of this type own child fields.
func (t FieldType) IsContainer() bool {
	return t == TypeObject || t == TypeDocument
}

func (t FieldType) String() string {
	return string(t)
}

// FieldDescriptor is a node in a document type tree. Fields is only populated
// for containers (object fields and the document root).
type FieldDescriptor struct {
	Name    string            `json:"name" yaml:"name"`
	Title   string            `json:"title" yaml:"title"`
	Type    FieldType         `json:"type" yaml:"type"`
	Fields  []FieldDescriptor `json:"fields,omitempty" yaml:"fields,omitempty"`
	Options Options           `json:"options,omitempty" yaml:"options,omitempty"`
}

// Field returns the direct child with the given name.
func (d FieldDescriptor) Field(name string) (FieldDescriptor, bool) {
	for _, child := range d.Fields {
		if child.Name == name {
			return child, true
		}
	}
	return FieldDescriptor{}, false
}

// FieldNames returns the names of the direct children in declaration order.
func (d FieldDescriptor) FieldNames() []string {
	if len(d.Fields) == 0 {
		return nil
	}
	names := make([]string, len(d.Fields))
	for i, child := range d.Fields {
		names[i] = child.Name
	}
	return names
}

// Option returns the option stored under key.
func (d FieldDescriptor) Option(key string) (OptionValue, bool) {
	if d.Options == nil {
		return OptionValue{}, false
	}
	value, ok := d.Options[key]
	return value, ok
}

// Clone returns a deep copy of the descriptor tree.
func (d FieldDescriptor) Clone() FieldDescriptor {
	out := d
	out.Options = d.Options.Clone()
	if d.Fields != nil {
		out.Fields = make([]FieldDescriptor, len(d.Fields))
		for i, child := range d.Fields {
			out.Fields[i] = child.Clone()
		}
	}
	return out
}

// Equal reports whether two trees are structurally identical. Nil and empty
// field lists or option bags compare equal.
func (d FieldDescriptor) Equal(other FieldDescriptor) bool {
	if d.Name != other.Name || d.Title != other.Title || d.Type != other.Type {
		return false
	}
	if !d.Options.Equal(other.Options) {
		return false
	}
	if len(d.Fields) != len(other.Fields) {
		return false
	}
	for i := range d.Fields {
		if !d.Fields[i].Equal(other.Fields[i]) {
			return false
		}
	}
	return true
}
