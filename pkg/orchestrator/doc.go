// Package orchestrator wires the document registry, form model builder,
// decorators and renderers into a single Generate call.
package orchestrator
