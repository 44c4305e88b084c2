package tui

import (
	"log/slog"
	"strings"
)

// OutputFormat controls how collected records are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits an indented JSON record.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML emits a YAML record.
	OutputFormatYAML OutputFormat = "yaml"
	// OutputFormatPrettyText emits a path/value table.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat resolves a user supplied format name.
func ParseOutputFormat(value string) (OutputFormat, bool) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(value))) {
	case OutputFormatJSON, "":
		return OutputFormatJSON, true
	case OutputFormatYAML, "yml":
		return OutputFormatYAML, true
	case OutputFormatPrettyText, "text":
		return OutputFormatPrettyText, true
	default:
		return "", false
	}
}

// Theme captures optional prefixes the renderer applies when printing
// messages.
type Theme struct {
	SectionPrefix string
	ErrorPrefix   string
}

// SubmitTransformer mutates the collected record before serialization.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer allows callers to mutate the collected record prior
// to serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
