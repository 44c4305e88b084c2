package model

import (
	"sort"

	"github.com/goliatone/go-docschema/pkg/schema"
)

var (
	// Option keys that double as renderer directives.
	uiHintKeys = []string{
		"cssClass",
		"helpText",
		"hideLabel",
		"inputType",
		"placeholder",
		"precision",
		"unit",
		"widget",
	}

	uiHintKeySet = func(keys []string) map[string]struct{} {
		result := make(map[string]struct{}, len(keys))
		for _, key := range keys {
			result[key] = struct{}{}
		}
		return result
	}(uiHintKeys)
)

// AllowedUIHintKeys returns a sorted copy of the option keys surfaced as UI
// hints.
func AllowedUIHintKeys() []string {
	keys := append([]string(nil), uiHintKeys...)
	sort.Strings(keys)
	return keys
}

// IsAllowedUIHintKey reports whether the option key participates in the UI
// hint contract.
func IsAllowedUIHintKey(key string) bool {
	_, ok := uiHintKeySet[key]
	return ok
}

// applyOptions copies descriptor options onto the field. Every option lands
// in metadata under the option prefix; recognised keys also become hints.
func applyOptions(field *Field, opts schema.Options) {
	for _, key := range opts.Keys() {
		value := opts[key].String()
		if value == "" {
			continue
		}
		field.ensureMetadata()[MetadataOptionPrefix+key] = value
		if IsAllowedUIHintKey(key) {
			field.ensureUIHints()[key] = value
		}
	}
	if placeholder := field.UIHints["placeholder"]; placeholder != "" {
		field.Placeholder = placeholder
	}
	if help := field.UIHints["helpText"]; help != "" && field.Description == "" {
		field.Description = help
	}
}

func defaultInputType(kind FieldType) string {
	switch kind {
	case FieldTypeNumber:
		return "number"
	case FieldTypeBoolean:
		return "checkbox"
	case FieldTypeImage:
		return "file"
	default:
		return "text"
	}
}
