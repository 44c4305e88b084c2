package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docschema/pkg/schema"
)

type fileReport struct {
	File     string         `json:"file" yaml:"file"`
	Document string         `json:"document,omitempty" yaml:"document,omitempty"`
	Valid    bool           `json:"valid" yaml:"valid"`
	Error    string         `json:"error,omitempty" yaml:"error,omitempty"`
	Issues   []schema.Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "validate <file...>",
		Short:   "Check descriptor files for structural problems",
		Example: `  docschema validate types/truck.yaml types/boat.json`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			reports := make([]fileReport, 0, len(args))
			failed := 0
			for _, path := range args {
				report := fileReport{File: path, Valid: true}
				doc, err := s.Loader.LoadFile(cmd.Context(), path)
				if err != nil {
					failed++
					report.Valid = false
					report.Issues = schema.IssuesOf(err)
					if len(report.Issues) == 0 {
						report.Error = err.Error()
					}
				} else {
					report.Document = doc.Name
				}
				reports = append(reports, report)
			}

			if s.Config.Output != "table" {
				data, err := encodeValue(s.Config.Output, reports)
				if err != nil {
					return err
				}
				if err := writeOutput(cmd, "", data); err != nil {
					return err
				}
			} else {
				t := newTable(cmd.OutOrStdout(), "File", "Document", "Result")
				for _, report := range reports {
					switch {
					case report.Valid:
						t.AppendRow([]any{report.File, report.Document, "ok"})
					case report.Error != "":
						t.AppendRow([]any{report.File, "", report.Error})
					default:
						for _, issue := range report.Issues {
							t.AppendRow([]any{report.File, "", issue.String()})
						}
					}
				}
				t.Render()
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files are invalid", failed, len(args))
			}
			return nil
		},
	}
}
