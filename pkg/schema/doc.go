// Package schema models content document types as trees of field descriptors.
//
// A descriptor tree is rooted at a FieldDescriptor of type TypeDocument whose
// Fields list the top-level fields of the document. Composite fields (type
// TypeObject) own their children; every other field is a leaf. Options carry
// an open bag of typed flags (bool, number, string) interpreted by the editing
// surface for the field's type, e.g. `hotspot` on image fields.
//
// Trees are plain data. They are built once, validated with Validate, and then
// treated as read-only: callers that need to modify a tree should Clone it
// first. Serialization helpers cover JSON (goccy/go-json) and YAML (yaml.v3)
// and preserve field order so round trips are structurally identical.
package schema
