// Package docschema describes content document types and turns them into
// editing forms, JSON Schema and OpenAPI components.
//
// The root package re-exports the entry points most callers need. The
// building blocks live under pkg/.
package docschema

import (
	"context"

	"github.com/goliatone/go-docschema/pkg/loader"
	"github.com/goliatone/go-docschema/pkg/openapi"
	"github.com/goliatone/go-docschema/pkg/orchestrator"
	"github.com/goliatone/go-docschema/pkg/render"
	"github.com/goliatone/go-docschema/pkg/schema"
)

// FieldDescriptor aliases schema.FieldDescriptor.
type FieldDescriptor = schema.FieldDescriptor

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface validation errors.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the editing form of a registered document type with
// the default HTML renderer. record may be nil.
func GenerateHTML(ctx context.Context, documentType string, record map[string]any, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		DocumentType: documentType,
		Record:       record,
	})
}

// NewLoader constructs a descriptor file loader.
func NewLoader(options ...loader.Option) *loader.Loader {
	return loader.New(options...)
}

// ValidateRecord checks a content record against doc. Mismatches are
// reported as an *openapi.RecordError.
func ValidateRecord(ctx context.Context, doc FieldDescriptor, record map[string]any) error {
	return openapi.ValidateRecord(ctx, doc, record)
}
