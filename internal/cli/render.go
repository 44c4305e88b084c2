package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-docschema/pkg/orchestrator"
	"github.com/goliatone/go-docschema/pkg/render"
	"github.com/goliatone/go-docschema/pkg/renderers/html"
	"github.com/goliatone/go-docschema/pkg/renderers/tui"
)

type renderFlags struct {
	renderer  string
	values    string
	out       string
	csrfField string
	csrfToken string
	assetsDir string
}

func newRenderCommand() *cobra.Command {
	var flags renderFlags
	cmd := &cobra.Command{
		Use:   "render [type]",
		Short: "Render the editing form of a document type",
		Example: `  docschema render car --out car.html
  docschema render car --values record.json --theme admin --variant dark
  docschema render car --assets-dir public/css --asset-prefix /css`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			return runRender(cmd, s, firstArg(args), flags, nil, tui.OutputFormatJSON)
		},
	}
	cmd.Flags().StringVar(&flags.renderer, "renderer", html.Name, "renderer to use (html|tui)")
	cmd.Flags().StringVar(&flags.values, "values", "", "JSON record used to prefill the form")
	cmd.Flags().StringVar(&flags.out, "out", "", "write to file instead of stdout")
	cmd.Flags().StringVar(&flags.csrfField, "csrf-field", "_csrf", "name of the CSRF hidden input")
	cmd.Flags().StringVar(&flags.csrfToken, "csrf-token", "", "CSRF token to embed")
	cmd.Flags().StringVar(&flags.assetsDir, "assets-dir", "", "copy the bundled stylesheet into this directory")
	cmd.Flags().String("templates-dir", "", "directory with templates overriding the bundled ones")
	cmd.Flags().String("submit-label", "", "submit button text")
	cmd.Flags().String("action", "", "form action URL")
	cmd.Flags().String("theme", "", "theme name")
	cmd.Flags().String("variant", "", "theme variant")
	cmd.Flags().String("asset-prefix", "", "URL prefix the stylesheet is served from")
	cmd.Flags().String("preset", "", "YAML or JSON preset overriding labels and widget hints")
	return cmd
}

func runRender(cmd *cobra.Command, s *Session, typeName string, flags renderFlags, driver tui.PromptDriver, format tui.OutputFormat) error {
	doc, err := s.Document(typeName)
	if err != nil {
		return err
	}
	reg, err := s.renderers(cmd, driver, format)
	if err != nil {
		return err
	}
	o, err := s.pipeline(reg)
	if err != nil {
		return err
	}

	req := orchestrator.Request{
		DocumentType: doc.Name,
		Renderer:     flags.renderer,
		RenderOptions: render.RenderOptions{
			Action: s.Config.Render.Action,
			Method: s.Config.Render.Method,
			Theme:  s.Theme(),
		},
	}
	if flags.values != "" {
		record, err := readRecord(cmd, flags.values)
		if err != nil {
			return err
		}
		req.Record = record
	}
	if token := strings.TrimSpace(flags.csrfToken); token != "" {
		req.RenderOptions.Hidden = render.MergeHiddenFields(nil, render.CSRFToken(flags.csrfField, token))
	}

	out, err := o.Generate(cmd.Context(), req)
	if err != nil {
		return err
	}
	s.Logger.Debug("rendered form", "document", doc.Name, "renderer", flags.renderer)

	if flags.assetsDir != "" {
		if err := copyAssets(flags.assetsDir); err != nil {
			return err
		}
	}
	return writeOutput(cmd, flags.out, out)
}

// copyAssets writes the embedded stylesheet bundle into dir.
func copyAssets(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("assets dir: %w", err)
	}
	assets := html.AssetsFS()
	return fs.WalkDir(assets, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(assets, path)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(dir, filepath.FromSlash(path)), data, 0o644)
	})
}
