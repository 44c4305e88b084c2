package render

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-docschema/pkg/model"
)

// FlattenRecord converts a nested content record into dotted-path values
// suitable for RenderOptions.Values. Only leaves are emitted.
func FlattenRecord(record map[string]any) map[string]any {
	out := make(map[string]any)
	flatten("", record, out)
	return out
}

func flatten(prefix string, node map[string]any, out map[string]any) {
	for key, value := range node {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flatten(path, nested, out)
			continue
		}
		out[path] = value
	}
}

// ExpandValues is the inverse of FlattenRecord: dotted keys become nested
// maps. When a key is both a leaf and a parent, the parent wins.
func ExpandValues(values map[string]any) map[string]any {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	// Shorter paths first so parents are created before their members.
	sort.Slice(keys, func(i, j int) bool {
		return strings.Count(keys[i], ".") < strings.Count(keys[j], ".") ||
			(strings.Count(keys[i], ".") == strings.Count(keys[j], ".") && keys[i] < keys[j])
	})

	out := make(map[string]any)
	for _, key := range keys {
		SetPath(out, key, values[key])
	}
	return out
}

// SetPath writes value at the dotted path, creating intermediate maps.
func SetPath(root map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := root
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[segment] = next
		}
		current = next
	}
	last := segments[len(segments)-1]
	if _, isParent := current[last].(map[string]any); isParent {
		return
	}
	current[last] = value
}

// GetPath reads the value at the dotted path.
func GetPath(root map[string]any, path string) (any, bool) {
	segments := strings.Split(path, ".")
	var current any = root
	for _, segment := range segments {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// RecordFromForm rebuilds a nested record from submitted form values. Number
// leaves are parsed when possible and kept as text otherwise so record
// validation reports them. Unchecked boolean leaves become false. Empty
// inputs are omitted.
func RecordFromForm(form model.FormModel, values url.Values) map[string]any {
	record := make(map[string]any)
	for _, field := range form.Leaves() {
		raw := strings.TrimSpace(values.Get(field.Path))
		switch field.Type {
		case model.FieldTypeBoolean:
			SetPath(record, field.Path, raw == "true" || raw == "on")
		case model.FieldTypeNumber:
			if raw == "" {
				continue
			}
			if n, err := strconv.ParseFloat(raw, 64); err == nil {
				SetPath(record, field.Path, n)
			} else {
				SetPath(record, field.Path, raw)
			}
		default:
			if raw == "" {
				continue
			}
			SetPath(record, field.Path, raw)
		}
	}
	return record
}
