// Package html renders form models as HTML editing forms using pongo2
// templates. Output is deterministic: fields follow the descriptor order and
// nested objects become fieldsets.
package html

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/render"
	rendertemplate "github.com/goliatone/go-docschema/pkg/render/template"
)

const (
	// Name is the registry key of the renderer.
	Name = "html"
	// TemplateName is the default form template.
	TemplateName = "templates/form.tpl"
	// PartialKey selects an alternate form template through the theme
	// partials map.
	PartialKey = "docschema.form"
	// StylesheetAsset is resolved through the theme AssetURL when present.
	StylesheetAsset = "docschema.stylesheet"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	submitLabel      string
	inlineStyles     bool
	logger           *slog.Logger
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Templates found
// there override the embedded bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// WithoutInlineStyles drops the embedded stylesheet from the output.
func WithoutInlineStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = false
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	submitLabel  string
	inlineStyles bool
	logger       *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:   TemplatesFS(),
		submitLabel:  "Save",
		inlineStyles: true,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		if cfg.templateDir != "" {
			if _, err := os.Stat(cfg.templateDir); err != nil {
				return nil, fmt.Errorf("html renderer: templates dir: %w", err)
			}
		}
		engine, err := rendertemplate.New(
			rendertemplate.WithBaseDir(cfg.templateDir),
			rendertemplate.WithFS(cfg.templateFS),
			rendertemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		submitLabel:  cfg.submitLabel,
		inlineStyles: cfg.inlineStyles,
		logger:       cfg.logger,
	}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the editing form for form. Values prefill inputs and Errors
// annotate them; both are keyed by dotted field path.
func (r *Renderer) Render(ctx context.Context, form model.FormModel, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	view := r.buildView(form, options)
	name := TemplateName
	if options.Theme != nil {
		if partial := strings.TrimSpace(options.Theme.Partials[PartialKey]); partial != "" {
			name = partial
		}
	}
	r.logger.Debug("rendering form", "document", form.DocumentType, "template", name, "rows", len(view.Rows))

	var buf bytes.Buffer
	if err := r.templates.RenderTemplate(name, map[string]any{"form": view}, &buf); err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return buf.Bytes(), nil
}

type formView struct {
	DocumentType string
	Title        string
	Action       string
	Method       string
	SubmitLabel  string
	Stylesheet   string
	Hidden       []render.HiddenField
	FormErrors   []string
	Rows         []row
	Theme        themeView
}

type themeView struct {
	Name         string
	Variant      string
	Stylesheet   string
	CSSVarsStyle string
}

// row is one line of the flattened field tree. Containers produce an open and
// a close row around their members.
type row struct {
	Kind        string
	ID          string
	Name        string
	Label       string
	Type        string
	Value       string
	Checked     bool
	Required    bool
	Placeholder string
	Description string
	Unit        string
	Widget      string
	Hotspot     bool
	Min         string
	Max         string
	Step        string
	MinLength   string
	Errors      []string
}

func (r *Renderer) buildView(form model.FormModel, options render.RenderOptions) formView {
	method := strings.ToUpper(strings.TrimSpace(options.Method))
	if method == "" {
		method = "POST"
	}
	view := formView{
		DocumentType: form.DocumentType,
		Title:        form.Title,
		Action:       options.Action,
		Method:       method,
		SubmitLabel:  r.submitLabel,
		Hidden:       render.SortedHiddenFields(options.Hidden),
		FormErrors:   render.MergeFormErrors(options.FormErrors),
		Theme:        buildThemeView(options.Theme),
	}
	if r.inlineStyles {
		view.Stylesheet = defaultStylesheet()
	}
	appendRows(&view.Rows, form.Fields, options)
	return view
}

func appendRows(rows *[]row, fields []model.Field, options render.RenderOptions) {
	for _, field := range fields {
		if field.Type == model.FieldTypeObject || field.Type == model.FieldTypeImage {
			*rows = append(*rows, row{
				Kind:    "open",
				ID:      fieldID(field.Path),
				Name:    field.Path,
				Label:   field.Label,
				Type:    string(field.Type),
				Widget:  field.UIHints["widget"],
				Hotspot: field.Metadata[model.MetadataImageHotspot] == "true",
			})
			switch {
			case field.Type == model.FieldTypeImage:
				*rows = append(*rows, row{Kind: "hidden", Name: field.Path + "._type", Value: "image"})
			case field.Metadata[model.MetadataImagePart] == model.ImageAsset:
				*rows = append(*rows, row{Kind: "hidden", Name: field.Path + "._type", Value: "reference"})
			}
			appendRows(rows, field.Nested, options)
			*rows = append(*rows, row{Kind: "close"})
			continue
		}
		*rows = append(*rows, leafRow(field, options))
	}
}

func leafRow(field model.Field, options render.RenderOptions) row {
	out := row{
		Kind:        "input",
		ID:          fieldID(field.Path),
		Name:        field.Path,
		Label:       field.Label,
		Type:        field.UIHints["inputType"],
		Required:    field.Required,
		Placeholder: field.Placeholder,
		Description: field.Description,
		Unit:        field.UIHints["unit"],
		Step:        field.UIHints["step"],
		Errors:      options.Errors[field.Path],
	}
	if out.Type == "" {
		out.Type = "text"
	}
	for _, rule := range field.Validations {
		switch rule.Kind {
		case model.ValidationRuleMin:
			out.Min = rule.Params["value"]
		case model.ValidationRuleMax:
			out.Max = rule.Params["value"]
		case model.ValidationRuleMinLength:
			out.MinLength = rule.Params["value"]
		}
	}

	value, ok := options.Values[field.Path]
	if !ok {
		value = field.Default
	}
	if field.Type == model.FieldTypeBoolean {
		out.Kind = "checkbox"
		out.Checked = isTrue(value)
		return out
	}
	if field.Type == model.FieldTypeNumber && out.Step == "" {
		out.Step = "any"
	}
	if field.Type == model.FieldTypeString && field.UIHints["widget"] == "textarea" {
		out.Kind = "textarea"
	}
	out.Value = formatValue(value)
	return out
}

func buildThemeView(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	view := themeView{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		view.Stylesheet = cfg.AssetURL(StylesheetAsset)
	}
	return view
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		parts = append(parts, name+": "+strings.TrimSpace(vars[key])+";")
	}
	return strings.Join(parts, " ")
}

func fieldID(path string) string {
	return "ds-" + strings.ReplaceAll(path, ".", "-")
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func isTrue(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && parsed
	default:
		return false
	}
}
