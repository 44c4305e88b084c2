package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docschema/pkg/schema"
)

func newDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe [type]",
		Short: "Show the field tree of a document type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			doc, err := s.Document(firstArg(args))
			if err != nil {
				return err
			}

			if s.Config.Output != "table" {
				data, err := schema.Encode(doc, schema.Format(s.Config.Output))
				if err != nil {
					return err
				}
				return writeOutput(cmd, "", data)
			}

			t := newTable(cmd.OutOrStdout(), "Path", "Type", "Title", "Options")
			t.SetTitle("%s (%s)", doc.Title, doc.Name)
			err = schema.Walk(doc, func(path string, field schema.FieldDescriptor, depth int) error {
				if depth == 0 {
					return nil
				}
				indent := strings.Repeat("  ", depth-1)
				t.AppendRow([]any{indent + path, field.Type, field.Title, describeOptions(field.Options)})
				return nil
			})
			if err != nil {
				return err
			}
			t.Render()
			return nil
		},
	}
}

func describeOptions(opts schema.Options) string {
	keys := opts.Keys()
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"="+opts[key].String())
	}
	return strings.Join(parts, ", ")
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
