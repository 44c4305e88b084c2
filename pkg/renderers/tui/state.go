package tui

import (
	"fmt"

	"github.com/goliatone/go-docschema/pkg/render"
)

// State tracks the record being collected and the validation errors attached
// to it, both keyed by dotted paths.
type State struct {
	values map[string]any
	errors map[string][]string
}

// NewState seeds the state with prefilled dotted values and errors.
func NewState(prefill map[string]any, errs map[string][]string) *State {
	return &State{
		values: render.ExpandValues(prefill),
		errors: cloneErrors(errs),
	}
}

// Record returns the collected record (mutable).
func (s *State) Record() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// ErrorsFor returns the errors attached to a dotted path.
func (s *State) ErrorsFor(path string) []string {
	if s == nil {
		return nil
	}
	return s.errors[path]
}

// GetValue resolves a dotted path into the record.
func (s *State) GetValue(path string) (any, bool) {
	if s == nil || path == "" {
		return nil, false
	}
	return render.GetPath(s.values, path)
}

// SetValue writes a value using a dotted path, creating intermediate maps as
// needed.
func (s *State) SetValue(path string, value any) error {
	if s == nil {
		return fmt.Errorf("tui: state is nil")
	}
	if path == "" {
		return fmt.Errorf("tui: path is required")
	}
	render.SetPath(s.values, path, value)
	return nil
}

// Delete removes the value at path. Emptied parents are left in place.
func (s *State) Delete(path string) {
	if s == nil {
		return
	}
	parent, key := splitParent(path)
	node := s.values
	if parent != "" {
		value, ok := render.GetPath(s.values, parent)
		if !ok {
			return
		}
		if node, ok = value.(map[string]any); !ok {
			return
		}
	}
	delete(node, key)
}

func splitParent(path string) (string, string) {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[:i], path[i+1:]
		}
	}
	return "", path
}

func cloneErrors(src map[string][]string) map[string][]string {
	out := make(map[string][]string, len(src))
	for k, v := range src {
		out[k] = append([]string(nil), v...)
	}
	return out
}
