package openapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-docschema/pkg/schema"
)

// ErrRecordInvalid reports a content record that does not satisfy its
// document type.
var ErrRecordInvalid = errors.New("openapi: record does not match document type")

// RecordError lists every mismatch between a record and its document type.
type RecordError struct {
	Document string
	Issues   []schema.Issue
}

func (e *RecordError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("openapi: %s record is invalid: %s", e.Document, strings.Join(parts, "; "))
}

// Is matches ErrRecordInvalid.
func (e *RecordError) Is(target error) bool {
	return target == ErrRecordInvalid
}

// DecodeRecord parses a JSON record into the generic shape VisitJSON expects.
func DecodeRecord(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var record map[string]any
	if err := dec.Decode(&record); err != nil {
		return nil, fmt.Errorf("openapi: decode record: %w", err)
	}
	if record == nil {
		return nil, errors.New("openapi: record must be a JSON object")
	}
	return record, nil
}

// ValidateRecord checks value against the schema derived from doc and returns
// a *RecordError listing every mismatch.
func ValidateRecord(ctx context.Context, doc schema.FieldDescriptor, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ref, err := SchemaRef(doc)
	if err != nil {
		return err
	}

	err = ref.Value.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	issues := collectIssues(nil, err)
	if len(issues) == 0 {
		return fmt.Errorf("openapi: validate record: %w", err)
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Path < issues[j].Path
	})
	return &RecordError{Document: doc.Name, Issues: dedupe(issues)}
}

func collectIssues(out []schema.Issue, err error) []schema.Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		for _, inner := range multi {
			out = collectIssues(out, inner)
		}
		return out
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		// Composite failures wrap the leaf errors that explain them.
		if schemaErr.Origin != nil {
			var nested openapi3.MultiError
			if errors.As(schemaErr.Origin, &nested) {
				return collectIssues(out, nested)
			}
		}
		return append(out, schema.Issue{
			Path:    strings.Join(schemaErr.JSONPointer(), "."),
			Message: schemaErr.Reason,
		})
	}
	return out
}

func dedupe(issues []schema.Issue) []schema.Issue {
	seen := make(map[schema.Issue]struct{}, len(issues))
	out := issues[:0]
	for _, issue := range issues {
		if _, ok := seen[issue]; ok {
			continue
		}
		seen[issue] = struct{}{}
		out = append(out, issue)
	}
	return out
}
