package model_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/schemas/car"
	"github.com/goliatone/go-docschema/pkg/testsupport"
)

func TestBuilder_CarGolden(t *testing.T) {
	form := testsupport.CarForm(t)

	golden := filepath.Join("testdata", "car_form.golden.json")
	if testsupport.WriteFormModel(t, golden, form) {
		return
	}
	want := testsupport.MustLoadFormModel(t, golden)
	if diff := testsupport.CompareGolden(want, form); diff != "" {
		t.Fatalf("form model mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_Decorators(t *testing.T) {
	var calls []string
	builder := model.NewBuilder(model.WithDecorators(
		model.DecoratorFunc(func(form *model.FormModel) error {
			calls = append(calls, "first")
			form.Metadata["renderedBy"] = "test"
			return nil
		}),
		nil,
		model.DecoratorFunc(func(form *model.FormModel) error {
			calls = append(calls, "second")
			return nil
		}),
	))

	form, err := builder.Build(car.Schema())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if strings.Join(calls, ",") != "first,second" {
		t.Fatalf("decorator order: %v", calls)
	}
	if form.Metadata["renderedBy"] != "test" {
		t.Fatalf("decorator metadata missing: %v", form.Metadata)
	}

	boom := errors.New("boom")
	failing := model.NewBuilder(model.WithDecorators(model.DecoratorFunc(func(*model.FormModel) error {
		return boom
	})))
	if _, err := failing.Build(car.Schema()); !errors.Is(err, boom) {
		t.Fatalf("expected decorator error, got %v", err)
	}
}

func TestFormModel_FindAndLeaves(t *testing.T) {
	form := testsupport.CarForm(t)

	fuel, ok := form.Find(car.FieldFuel)
	if !ok || fuel.Type != model.FieldTypeNumber {
		t.Fatalf("find fuel: %+v %v", fuel, ok)
	}
	hotspotX, ok := form.Find("image.hotspot.x")
	if !ok {
		t.Fatalf("hotspot member missing")
	}
	if rule, ok := hotspotX.Rule(model.ValidationRuleMax); !ok || rule.Params["value"] != "1" {
		t.Fatalf("hotspot max rule: %+v", hotspotX.Validations)
	}

	var paths []string
	for _, leaf := range form.Leaves() {
		paths = append(paths, leaf.Path)
	}
	want := "name,type,specs.fuel,specs.transmission,specs.capacity,price,oldPrice,isFavorite," +
		"image.asset._ref,image.hotspot.x,image.hotspot.y,image.hotspot.width,image.hotspot.height," +
		"image.crop.top,image.crop.bottom,image.crop.left,image.crop.right"
	if got := strings.Join(paths, ","); got != want {
		t.Fatalf("leaves:\nwant %s\ngot  %s", want, got)
	}
}

func TestBuilder_WithLabeler(t *testing.T) {
	form, err := model.NewBuilder(model.WithLabeler(strings.ToUpper)).Build(car.Schema())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// Descriptor titles win over the labeler.
	if fuel, _ := form.Find(car.FieldFuel); fuel.Label != "Fuel Capacity" {
		t.Fatalf("fuel label: %q", fuel.Label)
	}
	if box, _ := form.Find("image.hotspot"); box.Label != "HOTSPOT" {
		t.Fatalf("hotspot label: %q", box.Label)
	}
	if width, _ := form.Find("image.hotspot.width"); width.Label != "WIDTH" {
		t.Fatalf("width label: %q", width.Label)
	}
	if got := model.DefaultLabeler("isFavorite"); got != "Is Favorite" {
		t.Fatalf("default labeler: %q", got)
	}
}
