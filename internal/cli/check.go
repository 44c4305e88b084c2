package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docschema/pkg/openapi"
	"github.com/goliatone/go-docschema/pkg/orchestrator"
	"github.com/goliatone/go-docschema/pkg/render"
	"github.com/goliatone/go-docschema/pkg/schema"
)

type recordReport struct {
	Document string         `json:"document" yaml:"document"`
	Valid    bool           `json:"valid" yaml:"valid"`
	Issues   []schema.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

func newCheckCommand() *cobra.Command {
	var htmlOut string
	cmd := &cobra.Command{
		Use:   "check [type] <record.json>",
		Short: "Validate a content record against its document type",
		Long: `Check validates a JSON content record against the OpenAPI schema derived
from its document type. Use "-" to read the record from stdin.

With --html the editing form is rendered with the problems attached to the
fields they concern.`,
		Example: `  docschema check car record.json
  cat record.json | docschema check car - --html errors.html`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			typeName, recordPath := "", args[0]
			if len(args) == 2 {
				typeName, recordPath = args[0], args[1]
			}
			doc, err := s.Document(typeName)
			if err != nil {
				return err
			}
			record, err := readRecord(cmd, recordPath)
			if err != nil {
				return err
			}

			report := recordReport{Document: doc.Name, Valid: true}
			err = openapi.ValidateRecord(cmd.Context(), doc, record)
			var recordErr *openapi.RecordError
			switch {
			case err == nil:
			case errors.As(err, &recordErr):
				report.Valid = false
				report.Issues = recordErr.Issues
			default:
				return err
			}

			if err := printRecordReport(cmd, s, report); err != nil {
				return err
			}
			if htmlOut != "" {
				if err := renderCheckedForm(cmd, s, record, report, htmlOut); err != nil {
					return err
				}
			}
			if !report.Valid {
				return fmt.Errorf("%s record has %d problem(s)", doc.Name, len(report.Issues))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&htmlOut, "html", "", "also write the annotated editing form to this file")
	cmd.Flags().String("preset", "", "YAML or JSON preset overriding labels and widget hints")
	return cmd
}

func printRecordReport(cmd *cobra.Command, s *Session, report recordReport) error {
	if s.Config.Output != "table" {
		data, err := encodeValue(s.Config.Output, report)
		if err != nil {
			return err
		}
		return writeOutput(cmd, "", data)
	}
	if report.Valid {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s record is valid\n", report.Document)
		return err
	}
	t := newTable(cmd.OutOrStdout(), "Path", "Problem")
	for _, issue := range report.Issues {
		path := issue.Path
		if path == "" {
			path = "(record)"
		}
		t.AppendRow([]any{path, issue.Message})
	}
	t.Render()
	return nil
}

func renderCheckedForm(cmd *cobra.Command, s *Session, record map[string]any, report recordReport, path string) error {
	renderer, err := s.htmlRenderer()
	if err != nil {
		return err
	}
	reg := render.NewRegistry()
	if err := reg.Register(renderer); err != nil {
		return err
	}
	o, err := s.pipeline(reg)
	if err != nil {
		return err
	}
	out, err := o.Generate(cmd.Context(), orchestrator.Request{
		DocumentType:   report.Document,
		Record:         record,
		ValidateRecord: !report.Valid,
		RenderOptions: render.RenderOptions{
			Action: s.Config.Render.Action,
			Method: s.Config.Render.Method,
			Theme:  s.Theme(),
		},
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd, path, out)
}
