// Package tui collects content records interactively in a terminal. Prompts
// follow the form model field order; the collected record is emitted as JSON,
// YAML or a path/value table.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/render"
)

// Name is the registry key of the renderer.
const Name = "tui"

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	logger            *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       NewSurveyDriver(Stdio{}),
		outputFormat: OutputFormatJSON,
		theme:        Theme{SectionPrefix: "== ", ErrorPrefix: "! "},
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatYAML:
		return "application/yaml"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render prompts for every field of form and returns the serialized record.
// RenderOptions.Values prefill defaults and RenderOptions.Errors are shown
// next to the fields they belong to.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	state := NewState(opts.Values, opts.Errors)
	if err := r.driver.Info(ctx, r.theme.SectionPrefix+form.Title); err != nil {
		return nil, err
	}
	for _, message := range opts.FormErrors {
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return nil, err
		}
	}
	for _, field := range form.Fields {
		if err := r.promptField(ctx, field, state); err != nil {
			return nil, err
		}
	}

	record := state.Record()
	if r.submitTransformer != nil {
		var err error
		record, err = r.submitTransformer(record)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	r.logger.Debug("collected record", "document", form.DocumentType, "members", len(record))
	return r.serialize(record)
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, state *State) error {
	if err := r.showErrors(ctx, field, state); err != nil {
		return err
	}
	switch field.Type {
	case model.FieldTypeObject:
		if err := r.driver.Info(ctx, r.theme.SectionPrefix+field.Label); err != nil {
			return err
		}
		for _, nested := range field.Nested {
			if err := r.promptField(ctx, nested, state); err != nil {
				return err
			}
		}
		return nil
	case model.FieldTypeImage:
		return r.promptImage(ctx, field, state)
	case model.FieldTypeBoolean:
		return r.promptBoolean(ctx, field, state)
	case model.FieldTypeNumber:
		return r.promptNumber(ctx, field, state)
	default:
		return r.promptString(ctx, field, state)
	}
}

func (r *Renderer) showErrors(ctx context.Context, field model.Field, state *State) error {
	for _, message := range state.ErrorsFor(field.Path) {
		if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %s", r.theme.ErrorPrefix, field.Label, message)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptString(ctx context.Context, field model.Field, state *State) error {
	validate := stringValidator(field)
	defaultVal := ""
	if current, ok := state.GetValue(field.Path); ok {
		defaultVal = fmt.Sprint(current)
	} else if field.Default != nil {
		defaultVal = fmt.Sprint(field.Default)
	}

	for {
		var (
			response string
			err      error
		)
		if field.UIHints["widget"] == "textarea" {
			response, err = r.driver.TextArea(ctx, TextAreaConfig{Message: field.Label, Default: defaultVal, Help: field.Description})
		} else {
			response, err = r.driver.Input(ctx, InputConfig{Message: field.Label, Default: defaultVal, Help: field.Description, Validator: validate})
		}
		if err != nil {
			return err
		}
		if err := validate(response); err != nil {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %v", r.theme.ErrorPrefix, field.Label, err)); err != nil {
				return err
			}
			continue
		}
		if response == "" {
			state.Delete(field.Path)
			return nil
		}
		return state.SetValue(field.Path, response)
	}
}

func (r *Renderer) promptNumber(ctx context.Context, field model.Field, state *State) error {
	validate := numberValidator(field)
	defaultVal := ""
	if current, ok := state.GetValue(field.Path); ok {
		defaultVal = formatNumber(current)
	} else if field.Default != nil {
		defaultVal = formatNumber(field.Default)
	}

	for {
		response, err := r.driver.Input(ctx, InputConfig{
			Message:   field.Label,
			Default:   defaultVal,
			Help:      numberHelp(field),
			Validator: validate,
		})
		if err != nil {
			return err
		}
		if err := validate(response); err != nil {
			if err := r.driver.Info(ctx, fmt.Sprintf("%s%s: %v", r.theme.ErrorPrefix, field.Label, err)); err != nil {
				return err
			}
			continue
		}
		trimmed := strings.TrimSpace(response)
		if trimmed == "" {
			state.Delete(field.Path)
			return nil
		}
		value, _ := strconv.ParseFloat(trimmed, 64)
		return state.SetValue(field.Path, value)
	}
}

func (r *Renderer) promptBoolean(ctx context.Context, field model.Field, state *State) error {
	defaultVal := false
	if current, ok := state.GetValue(field.Path); ok {
		defaultVal, _ = current.(bool)
	}
	response, err := r.driver.Confirm(ctx, ConfirmConfig{Message: field.Label, Default: defaultVal, Help: field.Description})
	if err != nil {
		return err
	}
	return state.SetValue(field.Path, response)
}

// promptImage asks whether an image is attached, then collects the asset
// reference and, for hotspot-enabled fields, the hotspot box and crop insets.
func (r *Renderer) promptImage(ctx context.Context, field model.Field, state *State) error {
	_, attached := state.GetValue(field.Path + "." + model.ImageAsset + "." + model.ImageRef)
	attach, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Attach %s?", field.Label),
		Default: attached,
		Help:    field.Description,
	})
	if err != nil {
		return err
	}
	if !attach {
		state.Delete(field.Path)
		return nil
	}

	assetPath := field.Path + "." + model.ImageAsset
	if err := state.SetValue(field.Path+"._type", "image"); err != nil {
		return err
	}
	if err := state.SetValue(assetPath+"._type", "reference"); err != nil {
		return err
	}

	var boxes []model.Field
	for _, member := range field.Nested {
		switch member.Metadata[model.MetadataImagePart] {
		case model.ImageAsset:
			for _, leaf := range member.Nested {
				if err := r.promptField(ctx, leaf, state); err != nil {
					return err
				}
			}
		case model.ImageHotspot, model.ImageCrop:
			boxes = append(boxes, member)
		}
	}
	if len(boxes) == 0 {
		return nil
	}

	_, hasHotspot := state.GetValue(field.Path + "." + model.ImageHotspot)
	focus, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Set hotspot and crop for %s?", field.Label),
		Default: hasHotspot,
	})
	if err != nil {
		return err
	}
	for _, box := range boxes {
		if !focus {
			state.Delete(box.Path)
			continue
		}
		if err := r.promptField(ctx, box, state); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) serialize(record map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatYAML:
		out, err := yaml.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("tui: encode yaml: %w", err)
		}
		return out, nil
	case OutputFormatPrettyText:
		return []byte(prettyTable(record)), nil
	default:
		out, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return append(out, '\n'), nil
	}
}

func prettyTable(record map[string]any) string {
	flat := render.FlattenRecord(record)
	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Path", "Value"})
	for _, path := range paths {
		t.AppendRow(table.Row{path, flat[path]})
	}
	return t.Render() + "\n"
}
