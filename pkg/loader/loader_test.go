package loader_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docschema/internal/testutil"
	"github.com/goliatone/go-docschema/pkg/loader"
	"github.com/goliatone/go-docschema/pkg/registry"
	"github.com/goliatone/go-docschema/pkg/schema"
	"github.com/goliatone/go-docschema/pkg/schemas/car"
)

const truckYAML = `
name: truck
title: Truck
type: document
fields:
  - name: name
    title: Name
    type: string
  - name: payload
    title: <b>Payload</b> & Range
    type: number
`

func mustJSON(t *testing.T, doc schema.FieldDescriptor) []byte {
	t.Helper()
	data, err := schema.EncodeJSON(doc)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return data
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"types/car.json":   {Data: mustJSON(t, car.Schema())},
		"types/truck.yaml": {Data: []byte(truckYAML)},
		"types/README.md":  {Data: []byte("# not a schema")},
	}

	docs, err := loader.New(loader.WithLogger(testutil.NewTestLogger(t))).LoadFS(context.Background(), fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	var names []string
	for _, loaded := range docs {
		names = append(names, loaded.Document.Name)
	}
	if diff := cmp.Diff([]string{"car", "truck"}, names); diff != "" {
		t.Fatalf("loaded names mismatch (-want +got):\n%s", diff)
	}
	if !docs[0].Document.Equal(car.Schema()) {
		t.Fatalf("car did not survive the file round trip")
	}
	if docs[1].Path != "types/truck.yaml" {
		t.Fatalf("path: %q", docs[1].Path)
	}
}

func TestLoadFS_SanitizesTitles(t *testing.T) {
	logger, logs := testutil.CaptureLogger()
	fsys := fstest.MapFS{"truck.yml": {Data: []byte(truckYAML)}}

	docs, err := loader.New(loader.WithLogger(logger)).LoadFS(context.Background(), fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	payload, _ := schema.Lookup(docs[0].Document, "payload")
	if payload.Title != "Payload & Range" {
		t.Fatalf("sanitized title: %q", payload.Title)
	}
	if !strings.Contains(logs.String(), "stripped markup from titles") {
		t.Fatalf("expected sanitizer warning, got %q", logs.String())
	}

	raw, err := loader.New(loader.WithoutSanitizer()).LoadFS(context.Background(), fsys)
	if err != nil {
		t.Fatalf("load raw: %v", err)
	}
	payload, _ = schema.Lookup(raw[0].Document, "payload")
	if payload.Title != "<b>Payload</b> & Range" {
		t.Fatalf("raw title: %q", payload.Title)
	}
}

func TestLoadFS_Errors(t *testing.T) {
	invalid := `{"name":"bad","title":"Bad","type":"document","fields":[{"name":"specs","title":"Specs","type":"object"}]}`

	tests := []struct {
		name     string
		fsys     fstest.MapFS
		wantPath string
		wantErr  error
		contains string
	}{
		{
			name:     "invalid descriptor",
			fsys:     fstest.MapFS{"bad.json": {Data: []byte(invalid)}},
			wantPath: "bad.json",
			wantErr:  schema.ErrInvalid,
		},
		{
			name:     "malformed json",
			fsys:     fstest.MapFS{"broken.json": {Data: []byte(`{"name":`)}},
			wantPath: "broken.json",
			contains: "decode json",
		},
		{
			name: "duplicate document types",
			fsys: fstest.MapFS{
				"a/car.json": {Data: mustJSON(t, car.Schema())},
				"b/car.json": {Data: mustJSON(t, car.Schema())},
			},
			wantPath: "b/car.json",
			contains: "already declared in a/car.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loader.New().LoadFS(context.Background(), tt.fsys)
			if err == nil {
				t.Fatalf("expected error")
			}
			var fileErr *loader.FileError
			if !errors.As(err, &fileErr) {
				t.Fatalf("expected FileError, got %T: %v", err, err)
			}
			if fileErr.Path != tt.wantPath {
				t.Fatalf("path: want %q, got %q", tt.wantPath, fileErr.Path)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Fatalf("error %q does not mention %q", err, tt.contains)
			}
		})
	}
}

func TestLoadFS_HonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := loader.New().LoadFS(ctx, fstest.MapFS{"car.json": {Data: mustJSON(t, car.Schema())}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoadFileAndDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "truck.yaml")
	if err := os.WriteFile(path, []byte(truckYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := loader.New().LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if doc.Name != "truck" {
		t.Fatalf("name: %q", doc.Name)
	}

	docs, err := loader.New().LoadDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("load dir: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected one document, got %d", len(docs))
	}

	if _, err := loader.New().LoadDir(context.Background(), path); err == nil {
		t.Fatalf("expected error for non-directory")
	}
}

func TestRegister(t *testing.T) {
	reg := registry.New()
	n, err := loader.New().Register(context.Background(), reg, fstest.MapFS{"truck.yaml": {Data: []byte(truckYAML)}})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if n != 1 || !reg.Has("truck") {
		t.Fatalf("expected truck registered, n=%d list=%v", n, reg.List())
	}

	reg.MustRegister(car.Schema())
	_, err = loader.New().Register(context.Background(), reg, fstest.MapFS{"car.json": {Data: mustJSON(t, car.Schema())}})
	if !errors.Is(err, registry.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}
