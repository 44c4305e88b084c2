package schema

import (
	"fmt"
	"regexp"
)

// MaxDepth bounds how deeply object fields may nest below the document root.
const MaxDepth = 32

// OptionHotspot enables focal-point aware cropping on image fields.
const OptionHotspot = "hotspot"

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// imageOnlyOptions are meaningless outside image fields.
var imageOnlyOptions = map[string]OptionKind{
	OptionHotspot:           OptionBool,
	"accept":                OptionString,
	"storeOriginalFilename": OptionBool,
}

// Validate checks a document tree against the structural invariants: the root
// is a named document, sibling names are unique identifiers, only containers
// own fields, objects are non-empty and options match the field type.
func Validate(root FieldDescriptor) error {
	v := validator{}
	v.root(root)
	if len(v.issues) == 0 {
		return nil
	}
	return &ValidationError{Document: root.Name, Issues: v.issues}
}

// ValidateField checks a standalone field subtree, e.g. one about to be
// appended to a document.
func ValidateField(field FieldDescriptor) error {
	v := validator{}
	v.field(field, field.Name, 1)
	if len(v.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: v.issues}
}

type validator struct {
	issues []Issue
}

func (v *validator) addf(path, format string, args ...any) {
	v.issues = append(v.issues, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) root(d FieldDescriptor) {
	if d.Type != TypeDocument {
		v.addf("", "root type must be %q, got %q", TypeDocument, d.Type)
	}
	if d.Name == "" {
		v.addf("", "document name is required")
	} else if !namePattern.MatchString(d.Name) {
		v.addf("", "document name %q is not a valid identifier", d.Name)
	}
	if d.Title == "" {
		v.addf("", "document title is required")
	}
	if len(d.Options) > 0 {
		v.options(d, "")
	}
	v.children(d.Fields, "", 1)
}

func (v *validator) children(fields []FieldDescriptor, parent string, depth int) {
	seen := make(map[string]struct{}, len(fields))
	for _, child := range fields {
		path := join(parent, child.Name)
		if child.Name != "" {
			if _, dup := seen[child.Name]; dup {
				v.addf(path, "duplicate field name %q", child.Name)
			}
			seen[child.Name] = struct{}{}
		}
		v.field(child, path, depth)
	}
}

func (v *validator) field(d FieldDescriptor, path string, depth int) {
	if depth > MaxDepth {
		v.addf(path, "nesting exceeds maximum depth %d", MaxDepth)
		return
	}
	switch {
	case d.Name == "":
		v.addf(path, "field name is required")
	case !namePattern.MatchString(d.Name):
		v.addf(path, "field name %q is not a valid identifier", d.Name)
	}
	if d.Title == "" {
		v.addf(path, "field title is required")
	}

	switch {
	case d.Type == TypeDocument:
		v.addf(path, "type %q is only allowed at the root", TypeDocument)
	case !d.Type.Valid():
		v.addf(path, "unknown field type %q", d.Type)
	case d.Type == TypeObject:
		if len(d.Fields) == 0 {
			v.addf(path, "object field must declare at least one field")
		}
	default:
		if len(d.Fields) > 0 {
			v.addf(path, "%s field cannot declare nested fields", d.Type)
		}
	}

	v.options(d, path)

	if d.Type == TypeObject {
		v.children(d.Fields, path, depth+1)
	}
}

func (v *validator) options(d FieldDescriptor, path string) {
	for _, key := range d.Options.Keys() {
		value := d.Options[key]
		if key == "" {
			v.addf(path, "option key is required")
			continue
		}
		if value.Kind() == OptionInvalid {
			v.addf(path, "option %q has no value", key)
			continue
		}
		want, imageOnly := imageOnlyOptions[key]
		if !imageOnly {
			continue
		}
		if d.Type != TypeImage {
			v.addf(path, "option %q only applies to image fields", key)
			continue
		}
		if value.Kind() != want {
			v.addf(path, "option %q must be a %s, got %s", key, want, value.Kind())
		}
	}
}

func join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
