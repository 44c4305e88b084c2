package cli

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-docschema/pkg/orchestrator"
	"github.com/goliatone/go-docschema/pkg/render"
	"github.com/goliatone/go-docschema/pkg/renderers/html"
	"github.com/goliatone/go-docschema/pkg/renderers/tui"
)

func (s *Session) htmlRenderer() (*html.Renderer, error) {
	cfg := s.Config.Render
	opts := []html.Option{
		html.WithSubmitLabel(cfg.SubmitLabel),
		html.WithLogger(s.Logger),
	}
	if cfg.TemplatesDir != "" {
		opts = append(opts, html.WithTemplatesDir(cfg.TemplatesDir))
	}
	if !cfg.InlineStyles {
		opts = append(opts, html.WithoutInlineStyles())
	}
	return html.New(opts...)
}

// pipeline wires the session registry and the configured preset into an
// orchestrator rendering through reg.
func (s *Session) pipeline(reg *render.Registry) (*orchestrator.Orchestrator, error) {
	opts := []orchestrator.Option{
		orchestrator.WithDocuments(s.Registry),
		orchestrator.WithRegistry(reg),
		orchestrator.WithLogger(s.Logger),
	}
	if preset := s.Config.Render.Preset; preset != "" {
		data, err := os.ReadFile(preset)
		if err != nil {
			return nil, fmt.Errorf("preset: %w", err)
		}
		transformer, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			return nil, err
		}
		opts = append(opts, orchestrator.WithTransformer(transformer))
	}
	return orchestrator.New(opts...), nil
}

// renderers registers the HTML and terminal renderers for one command run.
// driver may be nil, in which case survey talks to the command streams.
func (s *Session) renderers(cmd *cobra.Command, driver tui.PromptDriver, format tui.OutputFormat) (*render.Registry, error) {
	reg := render.NewRegistry()

	htmlRenderer, err := s.htmlRenderer()
	if err != nil {
		return nil, err
	}
	if err := reg.Register(htmlRenderer); err != nil {
		return nil, err
	}

	if driver == nil {
		driver = tui.NewSurveyDriver(commandStdio(cmd))
	}
	tuiRenderer, err := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithOutputFormat(format),
		tui.WithLogger(s.Logger),
	)
	if err != nil {
		return nil, err
	}
	if err := reg.Register(tuiRenderer); err != nil {
		return nil, err
	}
	return reg, nil
}

// commandStdio hands survey the command streams when they are files.
// Prompts go to stderr so stdout only carries the record.
func commandStdio(cmd *cobra.Command) tui.Stdio {
	var stdio tui.Stdio
	if in, ok := cmd.InOrStdin().(terminal.FileReader); ok {
		stdio.In = in
	}
	if out, ok := cmd.ErrOrStderr().(terminal.FileWriter); ok {
		stdio.Out = out
	}
	stdio.Err = cmd.ErrOrStderr()
	return stdio
}
