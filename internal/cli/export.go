package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docschema/pkg/jsonschema"
	"github.com/goliatone/go-docschema/pkg/openapi"
	"github.com/goliatone/go-docschema/pkg/schema"
)

// ExportFormats lists the formats accepted by export --format.
var ExportFormats = []string{"json", "yaml", "jsonschema", "openapi", "form"}

func newExportCommand() *cobra.Command {
	var (
		format     string
		out        string
		additional bool
	)
	cmd := &cobra.Command{
		Use:   "export [type...]",
		Short: "Export document types as descriptors, JSON Schema, OpenAPI or form models",
		Long: `Export writes a document type in one of several formats:

  json, yaml   the descriptor tree itself
  jsonschema   a JSON Schema (2020-12) describing valid records
  openapi      an OpenAPI document with one component schema per type
  form         the form model renderers consume

openapi accepts several types and exports every registered type when none is
given. The other formats take exactly one type.`,
		Example: `  docschema export car --format jsonschema --base-uri https://schemas.example.com
  docschema export --format openapi --out components.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			format = strings.ToLower(strings.TrimSpace(format))

			var data []byte
			switch format {
			case "openapi":
				data, err = exportOpenAPI(cmd, s, args)
			case "json", "yaml", "jsonschema", "form":
				if len(args) > 1 {
					return fmt.Errorf("export --format %s takes one document type, got %d", format, len(args))
				}
				var doc schema.FieldDescriptor
				doc, err = s.Document(firstArg(args))
				if err != nil {
					return err
				}
				data, err = exportOne(cmd, s, doc, format, additional)
			default:
				return fmt.Errorf("unknown export format %q (want one of %s)", format, strings.Join(ExportFormats, ", "))
			}
			if err != nil {
				return err
			}
			s.Logger.Debug("exported document types", "format", format, "bytes", len(data))
			return writeOutput(cmd, out, data)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "export format ("+strings.Join(ExportFormats, "|")+")")
	cmd.Flags().StringVar(&out, "out", "", "write to file instead of stdout")
	cmd.Flags().String("base-uri", "", "prefix for JSON Schema $id values")
	cmd.Flags().BoolVar(&additional, "allow-additional", false, "let JSON Schema records carry undeclared members")
	cmd.Flags().String("api-title", "", "OpenAPI info.title")
	cmd.Flags().String("api-version", "", "OpenAPI info.version")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return ExportFormats, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func exportOne(cmd *cobra.Command, s *Session, doc schema.FieldDescriptor, format string, additional bool) ([]byte, error) {
	switch format {
	case "jsonschema":
		opts := []jsonschema.ExportOption{jsonschema.WithBaseURI(s.Config.JSONSchema.BaseURI)}
		if additional || s.Config.JSONSchema.AdditionalProperties {
			opts = append(opts, jsonschema.WithAdditionalProperties())
		}
		return jsonschema.Marshal(doc, opts...)
	case "form":
		form, err := s.Form(cmd.Context(), doc)
		if err != nil {
			return nil, err
		}
		data, err := schema.MarshalIndent(form)
		if err != nil {
			return nil, fmt.Errorf("encode form model: %w", err)
		}
		return data, nil
	default:
		return schema.Encode(doc, schema.Format(format))
	}
}

func exportOpenAPI(cmd *cobra.Command, s *Session, names []string) ([]byte, error) {
	if len(names) == 0 {
		names = s.Registry.List()
	}
	docs := make([]schema.FieldDescriptor, 0, len(names))
	for _, name := range names {
		doc, err := s.Registry.Get(name)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	spec, err := openapi.Document(cmd.Context(), s.OpenAPIInfo(), docs...)
	if err != nil {
		return nil, err
	}
	return openapi.Marshal(spec)
}
