package schema_test

import (
	"strconv"
	"testing"

	"pgregory.net/rapid"

	"github.com/goliatone/go-docschema/pkg/schema"
)

var leafTypes = []schema.FieldType{schema.TypeString, schema.TypeNumber, schema.TypeBoolean, schema.TypeImage}

func drawOptions(t *rapid.T, label string, typ schema.FieldType) schema.Options {
	n := rapid.IntRange(0, 3).Draw(t, label+"-options")
	if n == 0 && typ != schema.TypeImage {
		return nil
	}
	opts := make(schema.Options, n+1)
	for i := 0; i < n; i++ {
		key := "opt" + strconv.Itoa(i)
		switch rapid.IntRange(0, 2).Draw(t, label+"-kind-"+key) {
		case 0:
			opts[key] = schema.BoolOption(rapid.Bool().Draw(t, label+"-bool-"+key))
		case 1:
			opts[key] = schema.NumberOption(float64(rapid.IntRange(-1000, 1000).Draw(t, label+"-num-"+key)) / 4)
		default:
			opts[key] = schema.StringOption(rapid.StringMatching(`[a-z ]{0,8}`).Draw(t, label+"-str-"+key))
		}
	}
	if typ == schema.TypeImage {
		opts[schema.OptionHotspot] = schema.BoolOption(rapid.Bool().Draw(t, label+"-hotspot"))
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}

func drawFields(t *rapid.T, label string, depth int) []schema.FieldDescriptor {
	count := rapid.IntRange(1, 4).Draw(t, label+"-count")
	fields := make([]schema.FieldDescriptor, 0, count)
	for i := 0; i < count; i++ {
		childLabel := label + "." + strconv.Itoa(i)
		name := rapid.StringMatching(`[a-z][a-zA-Z0-9]{0,6}`).Draw(t, childLabel+"-name") + "_" + strconv.Itoa(i)
		title := rapid.StringMatching(`[A-Z][a-z ]{0,10}`).Draw(t, childLabel+"-title")
		if depth < 3 && rapid.IntRange(0, 4).Draw(t, childLabel+"-composite") == 0 {
			fields = append(fields, schema.Object(name, title, drawFields(t, childLabel, depth+1)...))
			continue
		}
		typ := rapid.SampledFrom(leafTypes).Draw(t, childLabel+"-type")
		fields = append(fields, schema.FieldDescriptor{
			Name:    name,
			Title:   title,
			Type:    typ,
			Options: drawOptions(t, childLabel, typ),
		})
	}
	return fields
}

func TestRoundTrip_Property(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := schema.Document(
			rapid.StringMatching(`[a-z][a-z0-9]{0,8}`).Draw(t, "doc-name"),
			rapid.StringMatching(`[A-Z][a-z]{0,8}`).Draw(t, "doc-title"),
			drawFields(t, "root", 0)...,
		)
		if err := schema.Validate(doc); err != nil {
			t.Fatalf("generated document should be valid: %v", err)
		}

		format := rapid.SampledFrom([]schema.Format{schema.FormatJSON, schema.FormatYAML}).Draw(t, "format")
		data, err := schema.Encode(doc, format)
		if err != nil {
			t.Fatalf("encode %s: %v", format, err)
		}
		decoded, err := schema.Decode(data)
		if err != nil {
			t.Fatalf("decode %s: %v\n%s", format, err, data)
		}
		if !doc.Equal(decoded) {
			t.Fatalf("round trip through %s changed the tree:\n%s", format, data)
		}
		if err := schema.Validate(decoded); err != nil {
			t.Fatalf("decoded document should stay valid: %v", err)
		}
	})
}
