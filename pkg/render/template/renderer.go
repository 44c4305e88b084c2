// Package template wraps pongo2 behind a small engine that renderers use to
// execute embedded or on-disk templates.
package template

import (
	"io"
)

// TemplateRenderer is the seam renderers rely on to execute templates.
type TemplateRenderer interface {
	RenderTemplate(name string, data map[string]any, out io.Writer) error
	RenderString(content string, data map[string]any, out io.Writer) error
}
