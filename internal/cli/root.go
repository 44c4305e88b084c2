// Package cli provides the docschema command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docschema/internal/config"
	"github.com/goliatone/go-docschema/pkg/renderers/tui"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// Option customises the root command.
type Option func(*rootOptions)

type rootOptions struct {
	promptDriver tui.PromptDriver
}

// WithPromptDriver replaces the survey driver used by the prompt command.
func WithPromptDriver(driver tui.PromptDriver) Option {
	return func(o *rootOptions) {
		o.promptDriver = driver
	}
}

// NewRootCmd creates and returns the root command.
func NewRootCmd(options ...Option) *cobra.Command {
	var opts rootOptions
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "docschema",
		Short: "Inspect, export and exercise content document types",
		Long: `docschema works with content document types such as the built-in "car".

It lists and describes registered types, exports them as JSON Schema or
OpenAPI components, validates content records and renders editing forms.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "version" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log, cmd.ErrOrStderr())
			if cfg.ConfigFile != "" {
				logger.Debug("using config file", "path", cfg.ConfigFile)
			}

			ctx := context.WithValue(cmd.Context(), loggerKey{}, logger)
			session, err := newSession(ctx, cfg, logger)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(ctx, sessionKey{}, session))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./docschema.yaml)")
	flags.StringSlice("schemas-dir", nil, "directories holding extra document type files")
	flags.String("default-type", "", "document type used when a command gets none")
	flags.StringP("output", "o", "", "output format for reports (table|json|yaml)")
	flags.String("log-level", "", "log level (debug|info|warn|error)")
	flags.String("log-format", "", "log format (text|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newDescribeCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newPromptCommand(opts.promptDriver))

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "docschema v%s (%s)\n", Version, GitCommit)
		},
	}
}
