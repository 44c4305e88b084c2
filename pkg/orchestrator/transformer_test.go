package orchestrator_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/orchestrator"
	"github.com/goliatone/go-docschema/pkg/schemas/car"
)

const yamlPreset = `
title: Vehicle
metadata:
  layout: compact
fields:
  specs.fuel:
    label: Tank size
    placeholder: litres
  name:
    uiHints:
      widget: textarea
`

func buildCar(t *testing.T) model.FormModel {
	t.Helper()
	form, err := model.NewBuilder().Build(car.Schema())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return form
}

func TestPresetTransformer_YAML(t *testing.T) {
	transformer, err := orchestrator.NewPresetTransformer([]byte(yamlPreset))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	form := buildCar(t)
	if err := transformer.Transform(context.Background(), &form); err != nil {
		t.Fatalf("transform: %v", err)
	}

	if form.Title != "Vehicle" || form.Metadata["layout"] != "compact" {
		t.Fatalf("form patch: title=%q metadata=%v", form.Title, form.Metadata)
	}
	fuel, _ := form.Find(car.FieldFuel)
	if fuel.Label != "Tank size" || fuel.Placeholder != "litres" {
		t.Fatalf("fuel patch: %+v", fuel)
	}
	name, _ := form.Find(car.FieldName)
	if name.UIHints["widget"] != "textarea" {
		t.Fatalf("name hints: %v", name.UIHints)
	}
}

func TestPresetTransformer_JSONFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"presets/car.json": {Data: []byte(`{"fields":{"price":{"description":"In euros"}}}`)},
	}
	transformer, err := orchestrator.NewPresetTransformerFromFS(fsys, "presets/car.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	form := buildCar(t)
	if err := transformer.Transform(context.Background(), &form); err != nil {
		t.Fatalf("transform: %v", err)
	}
	price, _ := form.Find(car.FieldPrice)
	if price.Description != "In euros" {
		t.Fatalf("price description: %q", price.Description)
	}
}

func TestPresetTransformer_Errors(t *testing.T) {
	if _, err := orchestrator.NewPresetTransformer([]byte("  ")); err == nil {
		t.Fatalf("expected error for empty preset")
	}
	if _, err := orchestrator.NewPresetTransformer([]byte(`{"fields":`)); err == nil {
		t.Fatalf("expected error for malformed json")
	}
	if _, err := orchestrator.NewPresetTransformerFromFS(fstest.MapFS{}, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}

	transformer, err := orchestrator.NewPresetTransformer([]byte("fields:\n  specs.wheels:\n    label: Wheels\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	form := buildCar(t)
	err = transformer.Transform(context.Background(), &form)
	if err == nil || !strings.Contains(err.Error(), `"specs.wheels" not found`) {
		t.Fatalf("expected unknown field error, got %v", err)
	}
}

func TestTransformerFunc_Nil(t *testing.T) {
	var fn orchestrator.TransformerFunc
	if err := fn.Transform(context.Background(), &model.FormModel{}); err != nil {
		t.Fatalf("nil func: %v", err)
	}
}
