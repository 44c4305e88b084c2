package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/goliatone/go-docschema/pkg/loader"
	"github.com/goliatone/go-docschema/pkg/model"
	"github.com/goliatone/go-docschema/pkg/orchestrator"
	"github.com/goliatone/go-docschema/pkg/registry"
	"github.com/goliatone/go-docschema/pkg/render"
	"github.com/goliatone/go-docschema/pkg/schema"
	"github.com/goliatone/go-docschema/pkg/schemas/car"
)

const snapshotRendererName = "form-model-snapshot"

type snapshotRenderer struct {
	path string
}

func (r *snapshotRenderer) Name() string {
	return snapshotRendererName
}

func (r *snapshotRenderer) ContentType() string {
	return "application/json"
}

func (r *snapshotRenderer) Render(_ context.Context, form model.FormModel, _ render.RenderOptions) ([]byte, error) {
	payload, err := schema.MarshalIndent(form)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(r.path, payload, 0o644); err != nil {
		return nil, err
	}
	return payload, nil
}

func main() {
	var (
		documentType = flag.String("type", car.Name, "document type to snapshot")
		schemasDir   = flag.String("schemas-dir", "", "directory with extra descriptor files")
		widgets      = flag.Bool("widgets", false, "resolve widget hints before writing")
		outputPath   = flag.String("output", "pkg/model/testdata/car_form.golden.json", "output path for the serialized form model")
	)
	flag.Parse()

	ctx := context.Background()

	docs := registry.Default()
	if *schemasDir != "" {
		if _, err := loader.New().Register(ctx, docs, os.DirFS(*schemasDir)); err != nil {
			fmt.Fprintf(os.Stderr, "failed to load document types: %v\n", err)
			os.Exit(1)
		}
	}

	renderers := render.NewRegistry()
	renderers.MustRegister(&snapshotRenderer{path: *outputPath})

	opts := []orchestrator.Option{
		orchestrator.WithDocuments(docs),
		orchestrator.WithRegistry(renderers),
		orchestrator.WithDefaultRenderer(snapshotRendererName),
	}
	if !*widgets {
		opts = append(opts, orchestrator.WithWidgets(nil))
	}

	_, err := orchestrator.New(opts...).Generate(ctx, orchestrator.Request{DocumentType: *documentType})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to snapshot form model: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote form model snapshot to %s\n", *outputPath)
}
