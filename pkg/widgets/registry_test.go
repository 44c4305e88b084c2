package widgets

import (
	"testing"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/schemas/car"
	"github.com/goliatone/go-docschema/pkg/testsupport"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := model.Field{
		Type:    model.FieldTypeBoolean,
		UIHints: map[string]string{"widget": "switch"},
	}

	if got, ok := reg.Resolve(field); !ok || got != "switch" {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  model.Field
		expect string
	}{
		{
			name:   "image",
			field:  model.Field{Type: model.FieldTypeImage},
			expect: WidgetImage,
		},
		{
			name:   "boolean toggle",
			field:  model.Field{Type: model.FieldTypeBoolean},
			expect: WidgetToggle,
		},
		{
			name: "multiline string",
			field: model.Field{
				Type:     model.FieldTypeString,
				Metadata: map[string]string{model.MetadataOptionPrefix + "multiline": "true"},
			},
			expect: WidgetTextarea,
		},
		{
			name: "string with rows",
			field: model.Field{
				Type:     model.FieldTypeString,
				Metadata: map[string]string{model.MetadataOptionPrefix + "rows": "4"},
			},
			expect: WidgetTextarea,
		},
		{
			name: "hotspot box",
			field: model.Field{
				Type:     model.FieldTypeObject,
				Metadata: map[string]string{model.MetadataImagePart: model.ImageHotspot},
			},
			expect: WidgetUnitBox,
		},
		{
			name:   "plain object",
			field:  model.Field{Type: model.FieldTypeObject},
			expect: WidgetFieldset,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Resolve(tc.field)
			if !ok {
				t.Fatalf("expected resolution for %s", tc.name)
			}
			if got != tc.expect {
				t.Fatalf("resolve %s: want %q, got %q", tc.name, tc.expect, got)
			}
		})
	}
}

func TestResolve_NoMatch(t *testing.T) {
	if got, ok := NewRegistry().Resolve(model.Field{Type: model.FieldTypeNumber}); ok {
		t.Fatalf("numbers have no built-in widget, got %q", got)
	}
	var empty *Registry
	if _, ok := empty.Resolve(model.Field{Type: model.FieldTypeBoolean}); ok {
		t.Fatalf("nil registry must not resolve")
	}
}

func TestResolve_PriorityOverride(t *testing.T) {
	reg := NewRegistry()
	reg.Register("custom", 999, func(field model.Field) bool {
		return field.Type == model.FieldTypeBoolean
	})

	got, ok := reg.Resolve(model.Field{Type: model.FieldTypeBoolean})
	if !ok || got != "custom" {
		t.Fatalf("priority matcher should win, got %q (ok=%v)", got, ok)
	}
}

func TestDecorator_AppliesWidgetHintsToCarForm(t *testing.T) {
	form := testsupport.CarForm(t)
	if err := NewRegistry().Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}

	cases := map[string]string{
		car.FieldIsFavorite: WidgetToggle,
		car.FieldSpecs:      WidgetFieldset,
		car.FieldImage:      WidgetImage,
		"image.hotspot":     WidgetUnitBox,
		"image.crop":        WidgetUnitBox,
		"image.asset":       WidgetFieldset,
	}
	for path, want := range cases {
		field, ok := form.Find(path)
		if !ok {
			t.Fatalf("field %q not found", path)
		}
		if field.UIHints["widget"] != want || field.Metadata["widget"] != want {
			t.Fatalf("%s widget: want %q, got ui=%q meta=%q", path, want, field.UIHints["widget"], field.Metadata["widget"])
		}
	}

	price, _ := form.Find(car.FieldPrice)
	if price.UIHints["widget"] != "" {
		t.Fatalf("price should keep no widget, got %q", price.UIHints["widget"])
	}
}
