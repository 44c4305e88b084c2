package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/schema"
)

// ErrorMapping splits validation feedback into field-level and form-level
// messages keyed by the dotted field paths used throughout the render
// pipeline.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapIssues attaches record validation issues to the deepest matching field
// of form. Issues that match no field become form-level messages.
func MapIssues(form model.FormModel, issues []schema.Issue) ErrorMapping {
	payload := make(map[string][]string, len(issues))
	for _, issue := range issues {
		payload[issue.Path] = append(payload[issue.Path], issue.Message)
	}
	return MapErrorPayload(form, payload)
}

// MapErrorPayload normalises error payloads (dotted paths or JSON pointers)
// into field paths. Unknown paths are treated as form-level errors so
// messages are not lost.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	fieldPaths := make(map[string]struct{})
	collectFieldPaths(form.Fields, fieldPaths)

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		mapped, formLevel := mapErrorPath(rawPath, fieldPaths)
		if formLevel {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[mapped] = normalizeMessages(append(mapping.Fields[mapped], normalized...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// MergeFormErrors concatenates and normalises form-level messages.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, fieldPaths map[string]struct{}) (string, bool) {
	if isFormLevelKey(raw) {
		return "", true
	}
	segments := parsePathSegments(raw)
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := fieldPaths[candidate]; ok {
			return candidate, false
		}
	}
	return "", true
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if _, err := strconv.Atoi(part); err == nil {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		out = append(out, part)
	}
	return out
}

func collectFieldPaths(fields []model.Field, dest map[string]struct{}) {
	for _, field := range fields {
		if field.Path != "" {
			dest[field.Path] = struct{}{}
		}
		collectFieldPaths(field.Nested, dest)
	}
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__":
		return true
	default:
		return false
	}
}
