package schema

import (
	"errors"
	"strings"
)

// SkipChildren can be returned from a WalkFunc to avoid descending into the
// current field's children.
var SkipChildren = errors.New("schema: skip children")

// WalkFunc is invoked for every node. Path is dotted and relative to the node
// passed to Walk; the starting node itself is visited with an empty path.
type WalkFunc func(path string, field FieldDescriptor, depth int) error

// Walk visits the tree in pre-order, preserving declaration order.
func Walk(root FieldDescriptor, fn WalkFunc) error {
	err := walk("", root, 0, fn)
	if errors.Is(err, SkipChildren) {
		return nil
	}
	return err
}

func walk(path string, node FieldDescriptor, depth int, fn WalkFunc) error {
	if err := fn(path, node, depth); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}
	for _, child := range node.Fields {
		if err := walk(join(path, child.Name), child, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Lookup resolves a dotted path such as "specs.fuel" below root.
func Lookup(root FieldDescriptor, path string) (FieldDescriptor, bool) {
	path = strings.Trim(strings.TrimSpace(path), ".")
	if path == "" {
		return root, true
	}
	current := root
	for _, segment := range strings.Split(path, ".") {
		next, ok := current.Field(segment)
		if !ok {
			return FieldDescriptor{}, false
		}
		current = next
	}
	return current, true
}

// Paths lists every field path below root in pre-order.
func Paths(root FieldDescriptor) []string {
	var out []string
	_ = Walk(root, func(path string, _ FieldDescriptor, depth int) error {
		if depth > 0 {
			out = append(out, path)
		}
		return nil
	})
	return out
}

// Leaves lists the paths of fields that do not own children.
func Leaves(root FieldDescriptor) []string {
	var out []string
	_ = Walk(root, func(path string, field FieldDescriptor, depth int) error {
		if depth > 0 && !field.Type.IsContainer() {
			out = append(out, path)
		}
		return nil
	})
	return out
}
