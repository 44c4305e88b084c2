package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form model pipeline.
type RenderOptions struct {
	// Action and Method populate the form element. Method defaults to POST.
	Action string
	Method string
	// Values pre-populates rendered controls using dotted field paths (e.g.
	// "specs.fuel"). FlattenRecord converts a nested record into this shape.
	Values map[string]any
	// Errors surfaces validation feedback keyed by field path. MapIssues
	// builds it from record validation issues.
	Errors map[string][]string
	// FormErrors are messages that could not be tied to a field.
	FormErrors []string
	// Hidden carries extra hidden inputs such as CSRF tokens.
	Hidden map[string]string
	// Theme supplies tokens and CSS variables resolved by go-theme.
	Theme *theme.RendererConfig
}
