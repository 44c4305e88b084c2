package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docschema/pkg/model"
)

// Transformer mutates a FormModel before decorators run.
type Transformer interface {
	Transform(ctx context.Context, form *model.FormModel) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.FormModel) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.FormModel) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// PresetTransformer applies declarative overrides loaded from a JSON or YAML
// document. Fields are addressed by dotted path:
//
//	title: Vehicle
//	metadata:
//	  layout: compact
//	fields:
//	  specs.fuel:
//	    label: Tank size
//	    uiHints:
//	      widget: textarea
type PresetTransformer struct {
	preset preset
}

type preset struct {
	Title    string                `json:"title" yaml:"title"`
	Metadata map[string]string     `json:"metadata" yaml:"metadata"`
	Fields   map[string]fieldPatch `json:"fields" yaml:"fields"`
}

type fieldPatch struct {
	Label       string            `json:"label" yaml:"label"`
	Description string            `json:"description" yaml:"description"`
	Placeholder string            `json:"placeholder" yaml:"placeholder"`
	Metadata    map[string]string `json:"metadata" yaml:"metadata"`
	UIHints     map[string]string `json:"uiHints" yaml:"uiHints"`
}

// NewPresetTransformer parses a preset document. JSON is detected by a
// leading brace; anything else is read as YAML.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var doc preset
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("preset transformer: parse json: %w", err)
		}
	} else if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("preset transformer: parse yaml: %w", err)
	}
	return &PresetTransformer{preset: doc}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, name string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path.Clean(name))
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", name, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches onto form. A patch naming an unknown field
// path is an error.
func (t *PresetTransformer) Transform(ctx context.Context, form *model.FormModel) error {
	if form == nil {
		return errors.New("preset transformer: form model is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if t.preset.Title != "" {
		form.Title = t.preset.Title
	}
	if len(t.preset.Metadata) > 0 {
		form.Metadata = mergeStringMap(form.Metadata, t.preset.Metadata)
	}

	for fieldPath, patch := range t.preset.Fields {
		field := findFieldByPath(form.Fields, fieldPath)
		if field == nil {
			return fmt.Errorf("preset transformer: field %q not found", fieldPath)
		}
		applyFieldPatch(field, patch)
	}
	return nil
}

func applyFieldPatch(field *model.Field, patch fieldPatch) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Description != "" {
		field.Description = patch.Description
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if len(patch.Metadata) > 0 {
		field.Metadata = mergeStringMap(field.Metadata, patch.Metadata)
	}
	if len(patch.UIHints) > 0 {
		field.UIHints = mergeStringMap(field.UIHints, patch.UIHints)
	}
}

func findFieldByPath(fields []model.Field, fieldPath string) *model.Field {
	if strings.TrimSpace(fieldPath) == "" {
		return nil
	}
	segments := strings.Split(fieldPath, ".")
	for len(segments) > 0 {
		var next *model.Field
		for idx := range fields {
			if fields[idx].Name == segments[0] {
				next = &fields[idx]
				break
			}
		}
		if next == nil {
			return nil
		}
		if len(segments) == 1 {
			return next
		}
		fields = next.Nested
		segments = segments[1:]
	}
	return nil
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
