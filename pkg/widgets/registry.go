// Package widgets picks editing widgets for form model fields. The registry
// doubles as a model.Decorator so it can run in the form pipeline.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-docschema/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetImage    = "image"
	WidgetToggle   = "toggle"
	WidgetTextarea = "textarea"
	WidgetUnitBox  = "unit-box"
	WidgetFieldset = "fieldset"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on explicit hints or registered
// matchers. Higher priority wins; ties fall back to registration order.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a matcher with the provided name and priority. The latest
// registration wins when names repeat at the same priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. Explicit hints win over
// matchers.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := explicitWidget(field); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator. Resolved widgets land in both
// Metadata["widget"] and UIHints["widget"] unless already set.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	form.Fields = r.decorateFields(form.Fields)
	return nil
}

func (r *Registry) decorateFields(fields []model.Field) []model.Field {
	if len(fields) == 0 {
		return fields
	}
	decorated := make([]model.Field, len(fields))
	for idx, field := range fields {
		decorated[idx] = r.decorateField(field)
	}
	return decorated
}

func (r *Registry) decorateField(field model.Field) model.Field {
	if widget, ok := r.Resolve(field); ok && widget != "" {
		if field.Metadata == nil {
			field.Metadata = make(map[string]string)
		}
		if field.Metadata["widget"] == "" {
			field.Metadata["widget"] = widget
		}
		if field.UIHints == nil {
			field.UIHints = make(map[string]string)
		}
		if field.UIHints["widget"] == "" {
			field.UIHints["widget"] = widget
		}
	}
	if len(field.Nested) > 0 {
		field.Nested = r.decorateFields(field.Nested)
	}
	return field
}

func explicitWidget(field model.Field) string {
	if field.Metadata != nil {
		if widget := strings.TrimSpace(field.Metadata["widget"]); widget != "" {
			return widget
		}
	}
	if field.UIHints != nil {
		if widget := strings.TrimSpace(field.UIHints["widget"]); widget != "" {
			return widget
		}
	}
	return ""
}

func option(field model.Field, key string) string {
	if field.Metadata == nil {
		return ""
	}
	return strings.TrimSpace(field.Metadata[model.MetadataOptionPrefix+key])
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetImage, 100, func(field model.Field) bool {
		return field.Type == model.FieldTypeImage
	})

	r.Register(WidgetToggle, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeBoolean
	})

	r.Register(WidgetTextarea, 80, func(field model.Field) bool {
		if field.Type != model.FieldTypeString {
			return false
		}
		return option(field, "multiline") == "true" || option(field, "rows") != ""
	})

	r.Register(WidgetUnitBox, 70, func(field model.Field) bool {
		if field.Type != model.FieldTypeObject || field.Metadata == nil {
			return false
		}
		part := field.Metadata[model.MetadataImagePart]
		return part == model.ImageHotspot || part == model.ImageCrop
	})

	r.Register(WidgetFieldset, 60, func(field model.Field) bool {
		return field.Type == model.FieldTypeObject
	})
}
