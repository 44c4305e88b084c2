package orchestrator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docschema/internal/testutil"
	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/orchestrator"
	"github.com/goliatone/go-docschema/pkg/registry"
	"github.com/goliatone/go-docschema/pkg/render"
	"github.com/goliatone/go-docschema/pkg/schema"
	"github.com/goliatone/go-docschema/pkg/schemas/car"
	"github.com/goliatone/go-docschema/pkg/widgets"
)

type captureRenderer struct {
	name string
	form model.FormModel
	opts render.RenderOptions
}

func (r *captureRenderer) Name() string        { return r.name }
func (r *captureRenderer) ContentType() string { return "text/plain" }

func (r *captureRenderer) Render(_ context.Context, form model.FormModel, opts render.RenderOptions) ([]byte, error) {
	r.form = form
	r.opts = opts
	return []byte(r.name + ":" + form.DocumentType), nil
}

func newCapture(t *testing.T, names ...string) (*render.Registry, map[string]*captureRenderer) {
	t.Helper()
	reg := render.NewRegistry()
	out := make(map[string]*captureRenderer, len(names))
	for _, name := range names {
		r := &captureRenderer{name: name}
		reg.MustRegister(r)
		out[name] = r
	}
	return reg, out
}

func TestGenerate_DefaultsRenderHTML(t *testing.T) {
	out, err := orchestrator.New(orchestrator.WithLogger(testutil.NewTestLogger(t))).
		Generate(context.Background(), orchestrator.Request{DocumentType: car.Name})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{`<form`, `name="specs.fuel"`, `name="isFavorite"`} {
		if !strings.Contains(html, want) {
			t.Fatalf("output missing %q:\n%s", want, html)
		}
	}
}

func TestGenerate_SelectsRenderer(t *testing.T) {
	reg, renderers := newCapture(t, "alpha", "beta")
	o := orchestrator.New(orchestrator.WithRegistry(reg), orchestrator.WithDefaultRenderer("beta"))

	out, err := o.Generate(context.Background(), orchestrator.Request{DocumentType: car.Name})
	if err != nil {
		t.Fatalf("generate default: %v", err)
	}
	if string(out) != "beta:car" {
		t.Fatalf("default renderer output: %q", out)
	}

	out, err = o.Generate(context.Background(), orchestrator.Request{DocumentType: car.Name, Renderer: "alpha"})
	if err != nil {
		t.Fatalf("generate alpha: %v", err)
	}
	if string(out) != "alpha:car" || renderers["alpha"].form.DocumentType != car.Name {
		t.Fatalf("alpha renderer output: %q", out)
	}

	if _, err := o.Generate(context.Background(), orchestrator.Request{DocumentType: car.Name, Renderer: "gamma"}); err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

func TestGenerate_FallsBackToFirstRenderer(t *testing.T) {
	reg, _ := newCapture(t, "only")
	out, err := orchestrator.New(orchestrator.WithRegistry(reg)).
		Generate(context.Background(), orchestrator.Request{DocumentType: car.Name})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "only:car" {
		t.Fatalf("output: %q", out)
	}
}

func TestGenerate_ExplicitDocument(t *testing.T) {
	reg, renderers := newCapture(t, "capture")
	doc := schema.Document("note", "Note", schema.String("body", "Body"))

	_, err := orchestrator.New(orchestrator.WithRegistry(reg), orchestrator.WithDocuments(registry.New())).
		Generate(context.Background(), orchestrator.Request{Document: &doc})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := renderers["capture"].form; got.DocumentType != "note" || len(got.Fields) != 1 {
		t.Fatalf("form: %+v", got)
	}
}

func TestGenerate_RecordValues(t *testing.T) {
	reg, renderers := newCapture(t, "capture")
	o := orchestrator.New(orchestrator.WithRegistry(reg))

	_, err := o.Generate(context.Background(), orchestrator.Request{
		DocumentType: car.Name,
		Record: map[string]any{
			"name":  "Civic",
			"specs": map[string]any{"fuel": 45.0},
		},
		RenderOptions: render.RenderOptions{Values: map[string]any{"name": "Override"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := map[string]any{"name": "Override", "specs.fuel": 45.0}
	if diff := cmp.Diff(want, renderers["capture"].opts.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if len(renderers["capture"].opts.Errors) != 0 {
		t.Fatalf("unexpected errors without validation: %v", renderers["capture"].opts.Errors)
	}
}

func TestGenerate_ValidateRecordAttachesErrors(t *testing.T) {
	reg, renderers := newCapture(t, "capture")
	o := orchestrator.New(orchestrator.WithRegistry(reg))

	_, err := o.Generate(context.Background(), orchestrator.Request{
		DocumentType:   car.Name,
		Record:         map[string]any{"name": "Civic", "price": "cheap"},
		ValidateRecord: true,
		RenderOptions: render.RenderOptions{
			Errors: map[string][]string{"name": {"taken"}},
		},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	errs := renderers["capture"].opts.Errors
	if len(errs["price"]) == 0 {
		t.Fatalf("expected price error, got %v", errs)
	}
	if diff := cmp.Diff([]string{"taken"}, errs["name"]); diff != "" {
		t.Fatalf("caller errors lost (-want +got):\n%s", diff)
	}
}

func TestGenerate_ValidRecordHasNoErrors(t *testing.T) {
	reg, renderers := newCapture(t, "capture")
	_, err := orchestrator.New(orchestrator.WithRegistry(reg)).Generate(context.Background(), orchestrator.Request{
		DocumentType:   car.Name,
		Record:         map[string]any{"name": "Civic", "price": 19999.0},
		ValidateRecord: true,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(renderers["capture"].opts.Errors) != 0 || len(renderers["capture"].opts.FormErrors) != 0 {
		t.Fatalf("unexpected errors: %+v", renderers["capture"].opts)
	}
}

func TestForm_DecoratorsAndWidgets(t *testing.T) {
	var order []string
	transformer := orchestrator.TransformerFunc(func(_ context.Context, form *model.FormModel) error {
		order = append(order, "transform")
		form.Title = "Vehicle"
		return nil
	})
	decorator := model.DecoratorFunc(func(form *model.FormModel) error {
		order = append(order, "decorate")
		return nil
	})

	form, err := orchestrator.New(
		orchestrator.WithTransformer(transformer),
		orchestrator.WithDecorators(decorator),
	).Form(context.Background(), orchestrator.Request{DocumentType: car.Name})
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if diff := cmp.Diff([]string{"transform", "decorate"}, order); diff != "" {
		t.Fatalf("pipeline order (-want +got):\n%s", diff)
	}
	if form.Title != "Vehicle" {
		t.Fatalf("title: %q", form.Title)
	}
	favorite, ok := form.Find(car.FieldIsFavorite)
	if !ok || favorite.UIHints["widget"] != widgets.WidgetToggle {
		t.Fatalf("isFavorite widget: %+v", favorite)
	}
}

func TestForm_WithoutWidgets(t *testing.T) {
	form, err := orchestrator.New(orchestrator.WithWidgets(nil)).
		Form(context.Background(), orchestrator.Request{DocumentType: car.Name})
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	favorite, _ := form.Find(car.FieldIsFavorite)
	if _, ok := favorite.UIHints["widget"]; ok {
		t.Fatalf("widget resolved despite nil registry: %v", favorite.UIHints)
	}
}

func TestForm_Errors(t *testing.T) {
	failing := errors.New("boom")
	tests := []struct {
		name    string
		options []orchestrator.Option
		req     orchestrator.Request
		wantErr error
		message string
	}{
		{
			name:    "missing document type",
			message: "document type is required",
		},
		{
			name:    "unknown document type",
			req:     orchestrator.Request{DocumentType: "boat"},
			wantErr: registry.ErrNotFound,
		},
		{
			name: "transformer failure",
			options: []orchestrator.Option{orchestrator.WithTransformer(orchestrator.TransformerFunc(
				func(context.Context, *model.FormModel) error { return failing },
			))},
			req:     orchestrator.Request{DocumentType: car.Name},
			wantErr: failing,
		},
		{
			name: "decorator failure",
			options: []orchestrator.Option{orchestrator.WithDecorators(model.DecoratorFunc(
				func(*model.FormModel) error { return failing },
			))},
			req:     orchestrator.Request{DocumentType: car.Name},
			wantErr: failing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := orchestrator.New(tt.options...).Form(context.Background(), tt.req)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.message != "" && !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("error %q does not mention %q", err, tt.message)
			}
		})
	}
}

func TestForm_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := orchestrator.New().Form(ctx, orchestrator.Request{DocumentType: car.Name})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
