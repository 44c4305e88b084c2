package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/openapi"
	"github.com/goliatone/go-docschema/pkg/registry"
	"github.com/goliatone/go-docschema/pkg/render"
	"github.com/goliatone/go-docschema/pkg/renderers/html"
	"github.com/goliatone/go-docschema/pkg/schema"
	"github.com/goliatone/go-docschema/pkg/widgets"
)

const defaultRendererName = html.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithDocuments injects the document type registry.
func WithDocuments(reg *registry.Registry) Option {
	return func(o *Orchestrator) {
		o.documents = reg
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(reg *render.Registry) Option {
	return func(o *Orchestrator) {
		o.renderers = reg
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that mutates form models after
// building but before decorators run.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithDecorators registers decorators run against every generated form model.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithWidgets replaces the widget registry. Pass nil to skip widget
// resolution.
func WithWidgets(reg *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.widgets = reg
		o.widgetsSpecified = true
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from document type to rendered
// output. Missing dependencies fall back to the built-in implementations.
type Orchestrator struct {
	documents        *registry.Registry
	builder          model.Builder
	renderers        *render.Registry
	defaultRenderer  string
	transformer      Transformer
	decorators       []model.Decorator
	widgets          *widgets.Registry
	widgetsSpecified bool
	logger           *slog.Logger
	initialiseErr    error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a document type.
type Request struct {
	// DocumentType names a registered document type. Ignored when Document
	// is supplied.
	DocumentType string

	// Document bypasses the registry with an explicit descriptor.
	Document *schema.FieldDescriptor

	// Renderer names the renderer to use. Empty selects the default.
	Renderer string

	// Record prefills the form with a nested content record. Values already
	// present in RenderOptions.Values win.
	Record map[string]any

	// ValidateRecord checks Record against the document type and attaches
	// the problems to RenderOptions.Errors and FormErrors.
	ValidateRecord bool

	// RenderOptions carries per-request render instructions.
	RenderOptions render.RenderOptions
}

// Form resolves the document type and returns the decorated form model.
func (o *Orchestrator) Form(ctx context.Context, req Request) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}

	doc, err := o.resolveDocument(req)
	if err != nil {
		return model.FormModel{}, err
	}
	form, err := o.builder.Build(doc)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if err := o.applyTransformer(ctx, &form); err != nil {
		return model.FormModel{}, err
	}
	if err := o.applyDecorators(&form); err != nil {
		return model.FormModel{}, err
	}
	return form, nil
}

// Generate executes the registry → model builder → transformer → decorators
// → renderer sequence and returns the rendered bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Form(ctx, req)
	if err != nil {
		return nil, err
	}

	opts, err := o.renderOptions(ctx, req, form)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("rendering document", "document", form.DocumentType, "renderer", renderer.Name())

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) renderOptions(ctx context.Context, req Request, form model.FormModel) (render.RenderOptions, error) {
	opts := req.RenderOptions
	if len(req.Record) == 0 {
		return opts, nil
	}

	values := render.FlattenRecord(req.Record)
	for key, value := range opts.Values {
		values[key] = value
	}
	opts.Values = values

	if !req.ValidateRecord {
		return opts, nil
	}
	doc, err := o.resolveDocument(req)
	if err != nil {
		return opts, err
	}
	err = openapi.ValidateRecord(ctx, doc, req.Record)
	var recordErr *openapi.RecordError
	switch {
	case err == nil:
		return opts, nil
	case errors.As(err, &recordErr):
	default:
		return opts, fmt.Errorf("orchestrator: validate record: %w", err)
	}

	mapping := render.MapIssues(form, recordErr.Issues)
	merged := make(map[string][]string, len(opts.Errors)+len(mapping.Fields))
	for path, messages := range opts.Errors {
		merged[path] = append(merged[path], messages...)
	}
	for path, messages := range mapping.Fields {
		merged[path] = append(merged[path], messages...)
	}
	opts.Errors = merged
	opts.FormErrors = render.MergeFormErrors(opts.FormErrors, mapping.Form...)
	o.logger.Debug("record has problems", "document", doc.Name, "issues", len(recordErr.Issues))
	return opts, nil
}

func (o *Orchestrator) resolveDocument(req Request) (schema.FieldDescriptor, error) {
	if req.Document != nil {
		return req.Document.Clone(), nil
	}
	if req.DocumentType == "" {
		return schema.FieldDescriptor{}, errors.New("orchestrator: document type is required")
	}
	doc, err := o.documents.Get(req.DocumentType)
	if err != nil {
		return schema.FieldDescriptor{}, fmt.Errorf("orchestrator: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.renderers == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.renderers.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.renderers.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.renderers.Get(names[0])
}

func (o *Orchestrator) applyDecorators(form *model.FormModel) error {
	for _, decorator := range o.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return fmt.Errorf("orchestrator: decorate form: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) applyTransformer(ctx context.Context, form *model.FormModel) error {
	if o.transformer == nil {
		return nil
	}
	if err := o.transformer.Transform(ctx, form); err != nil {
		return fmt.Errorf("orchestrator: transform form: %w", err)
	}
	return nil
}

func (o *Orchestrator) applyDefaults() {
	if o.documents == nil {
		o.documents = registry.Default()
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.renderers == nil {
		o.renderers = render.NewRegistry()
		renderer, err := html.New(html.WithLogger(o.logger))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.renderers.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if !o.widgetsSpecified {
		o.widgets = widgets.NewRegistry()
	}
	// Widgets run last so transformer and decorator hints take precedence.
	if o.widgets != nil {
		o.decorators = append(o.decorators, o.widgets)
	}
}
