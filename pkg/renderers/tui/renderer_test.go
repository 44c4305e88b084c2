package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docschema/internal/testutil"
	"github.com/goliatone/go-docschema/pkg/render"
	"github.com/goliatone/go-docschema/pkg/schema"
	"github.com/goliatone/go-docschema/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	confirm      []bool
	textAreas    []string
	infoMessages []string
	prompts      []string
	defaults     map[string]string
	inputPos     int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted for " + cfg.Message)
	}
	s.prompts = append(s.prompts, cfg.Message)
	if s.defaults == nil {
		s.defaults = map[string]string{}
	}
	s.defaults[cfg.Message] = cfg.Default
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted for " + cfg.Message)
	}
	s.prompts = append(s.prompts, cfg.Message)
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted for " + cfg.Message)
	}
	s.prompts = append(s.prompts, cfg.Message)
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newTestRenderer(t *testing.T, driver PromptDriver, options ...Option) *Renderer {
	t.Helper()
	options = append([]Option{WithPromptDriver(driver), WithLogger(testutil.NewTestLogger(t))}, options...)
	r, err := New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRender_CollectsCarRecord(t *testing.T) {
	driver := &stubDriver{
		inputs: []string{
			"Civic", "sedan", // name, type
			"abc", "45.5", // fuel: invalid then valid
			"manual", "5", // transmission, capacity
			"19999", "", // price, oldPrice skipped
			"image-abc123",               // asset ref
			"0.4", "0.6", "0.25", "0.25", // hotspot
			"0", "0", "0.1", "0.1", // crop
		},
		confirm: []bool{true, true, true}, // isFavorite, attach image, set hotspot
	}

	out, err := newTestRenderer(t, driver).Render(context.Background(), testsupport.CarForm(t), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	want := map[string]any{
		"name":       "Civic",
		"type":       "sedan",
		"specs":      map[string]any{"fuel": 45.5, "transmission": "manual", "capacity": 5.0},
		"price":      19999.0,
		"isFavorite": true,
		"image": map[string]any{
			"_type":   "image",
			"asset":   map[string]any{"_type": "reference", "_ref": "image-abc123"},
			"hotspot": map[string]any{"x": 0.4, "y": 0.6, "width": 0.25, "height": 0.25},
			"crop":    map[string]any{"top": 0.0, "bottom": 0.0, "left": 0.1, "right": 0.1},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	if !containsMessage(driver.infoMessages, `"abc" is not a number`) {
		t.Fatalf("expected invalid number feedback, got %v", driver.infoMessages)
	}
	if driver.inputPos != len(driver.inputs) || driver.confirmPos != len(driver.confirm) {
		t.Fatalf("unused script: inputs %d/%d confirms %d/%d", driver.inputPos, len(driver.inputs), driver.confirmPos, len(driver.confirm))
	}
}

func TestRender_HotspotBounds(t *testing.T) {
	doc := schema.Document("poster", "Poster", schema.Image("art", "Artwork", schema.WithOption(schema.OptionHotspot, true)))
	driver := &stubDriver{
		inputs:  []string{"", "image-1", "1.5", "0.5", "0.5", "1", "1", "0", "0", "0", "0"},
		confirm: []bool{true, true},
	}
	out, err := newTestRenderer(t, driver).Render(context.Background(), testsupport.MustBuildForm(t, doc), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !containsMessage(driver.infoMessages, "value is required") {
		t.Fatalf("expected required feedback for empty asset ref: %v", driver.infoMessages)
	}
	if !containsMessage(driver.infoMessages, "must be at most 1") {
		t.Fatalf("expected bound feedback: %v", driver.infoMessages)
	}
	if !strings.Contains(string(out), `"x": 0.5`) {
		t.Fatalf("hotspot x not recorded:\n%s", out)
	}
}

func TestRender_SkipsImageAndHotspot(t *testing.T) {
	doc := schema.Document("poster", "Poster",
		schema.Image("art", "Artwork", schema.WithOption(schema.OptionHotspot, true)),
		schema.Image("thumb", "Thumbnail", schema.WithOption(schema.OptionHotspot, true)),
	)
	driver := &stubDriver{
		inputs:  []string{"image-2"},
		confirm: []bool{false, true, false},
	}
	out, err := newTestRenderer(t, driver).Render(context.Background(), testsupport.MustBuildForm(t, doc), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"thumb": map[string]any{"_type": "image", "asset": map[string]any{"_type": "reference", "_ref": "image-2"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_PrefillAndErrors(t *testing.T) {
	doc := schema.Document("note", "Note",
		schema.String("body", "Body", schema.WithOption("widget", "textarea")),
		schema.Number("words", "Words"),
		schema.Boolean("draft", "Draft"),
	)
	driver := &stubDriver{
		inputs:    []string{"120"},
		textAreas: []string{"hello"},
		confirm:   []bool{true},
	}
	out, err := newTestRenderer(t, driver, WithOutputFormat(OutputFormatYAML)).Render(context.Background(), testsupport.MustBuildForm(t, doc), render.RenderOptions{
		Values:     map[string]any{"words": 100.0},
		Errors:     map[string][]string{"words": {"too short"}},
		FormErrors: []string{"record rejected"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if driver.defaults["Words"] != "100" {
		t.Fatalf("expected prefilled default, got %q", driver.defaults["Words"])
	}
	if !containsMessage(driver.infoMessages, "Words: too short") || !containsMessage(driver.infoMessages, "record rejected") {
		t.Fatalf("errors not surfaced: %v", driver.infoMessages)
	}

	var got map[string]any
	if err := yaml.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, out)
	}
	want := map[string]any{"body": "hello", "words": 120, "draft": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_PrettyAndTransformer(t *testing.T) {
	doc := schema.Document("note", "Note", schema.String("body", "Body"))
	driver := &stubDriver{inputs: []string{"hi"}}
	r := newTestRenderer(t, driver,
		WithOutputFormat(OutputFormatPrettyText),
		WithSubmitTransformer(func(record map[string]any) (map[string]any, error) {
			record["body"] = strings.ToUpper(record["body"].(string))
			return record, nil
		}),
	)
	if r.ContentType() != "text/plain; charset=utf-8" {
		t.Fatalf("content type: %s", r.ContentType())
	}
	out, err := r.Render(context.Background(), testsupport.MustBuildForm(t, doc), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "HI") || !strings.Contains(string(out), "body") {
		t.Fatalf("pretty output:\n%s", out)
	}
}

func TestRender_PropagatesAbort(t *testing.T) {
	driver := &stubDriver{}
	_, err := newTestRenderer(t, driver).Render(context.Background(), testsupport.CarForm(t), render.RenderOptions{})
	if err == nil {
		t.Fatalf("expected driver error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newTestRenderer(t, driver).Render(ctx, testsupport.CarForm(t), render.RenderOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNew_RejectsUnknownFormat(t *testing.T) {
	if _, err := New(WithOutputFormat("xml")); err == nil {
		t.Fatalf("expected format error")
	}
	if format, ok := ParseOutputFormat("YML"); !ok || format != OutputFormatYAML {
		t.Fatalf("parse yml: %v %v", format, ok)
	}
}

func TestState(t *testing.T) {
	state := NewState(map[string]any{"image.asset._ref": "x"}, nil)
	if v, ok := state.GetValue("image.asset._ref"); !ok || v != "x" {
		t.Fatalf("prefill: %v %v", v, ok)
	}
	if err := state.SetValue("image.hotspot.x", 0.5); err != nil {
		t.Fatalf("set: %v", err)
	}
	state.Delete("image.hotspot")
	if _, ok := state.GetValue("image.hotspot.x"); ok {
		t.Fatalf("expected hotspot removed")
	}
	if err := state.SetValue("", 1); err == nil {
		t.Fatalf("expected empty path error")
	}
}

func containsMessage(messages []string, fragment string) bool {
	for _, message := range messages {
		if strings.Contains(message, fragment) {
			return true
		}
	}
	return false
}
