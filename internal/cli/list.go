package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docschema/pkg/schema"
)

type typeSummary struct {
	Name   string `json:"name" yaml:"name"`
	Title  string `json:"title" yaml:"title"`
	Fields int    `json:"fields" yaml:"fields"`
	Leaves int    `json:"leaves" yaml:"leaves"`
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered document types",
		Example: `  docschema list
  docschema list --schemas-dir ./types -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}

			summaries := make([]typeSummary, 0, s.Registry.Len())
			for _, name := range s.Registry.List() {
				doc := s.Registry.MustGet(name)
				summaries = append(summaries, typeSummary{
					Name:   doc.Name,
					Title:  doc.Title,
					Fields: len(schema.Paths(doc)),
					Leaves: len(schema.Leaves(doc)),
				})
			}

			if s.Config.Output != "table" {
				data, err := encodeValue(s.Config.Output, summaries)
				if err != nil {
					return err
				}
				return writeOutput(cmd, "", data)
			}

			t := newTable(cmd.OutOrStdout(), "Name", "Title", "Fields", "Leaves")
			for _, sum := range summaries {
				t.AppendRow([]any{sum.Name, sum.Title, sum.Fields, sum.Leaves})
			}
			t.AppendFooter([]any{"", fmt.Sprintf("%d types", len(summaries)), "", ""})
			t.Render()
			return nil
		},
	}
}
