package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docschema/pkg/renderers/tui"
)

func newPromptCommand(driver tui.PromptDriver) *cobra.Command {
	var (
		flags  renderFlags
		format string
	)
	cmd := &cobra.Command{
		Use:   "prompt [type]",
		Short: "Enter a content record interactively",
		Long: `Prompt asks for every field of the document type in declaration order and
prints the collected record. --values prefills the answers.`,
		Example: `  docschema prompt car --format yaml --out record.yaml`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			outFormat, ok := tui.ParseOutputFormat(format)
			if !ok {
				return fmt.Errorf("unknown prompt format %q (want json, yaml or pretty)", format)
			}
			flags.renderer = tui.Name
			return runRender(cmd, s, firstArg(args), flags, driver, outFormat)
		},
	}
	cmd.Flags().StringVar(&flags.values, "values", "", "JSON record used to prefill answers")
	cmd.Flags().StringVar(&flags.out, "out", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&format, "format", string(tui.OutputFormatJSON), "record format (json|yaml|pretty)")
	cmd.Flags().String("preset", "", "YAML or JSON preset overriding labels and widget hints")
	return cmd
}
