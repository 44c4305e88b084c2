package model

import (
	"strings"

	"github.com/ettle/strcase"
)

// DefaultLabeler converts a field name into a human-friendly label. It splits
// on underscores, dashes and camelCase boundaries.
func DefaultLabeler(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strcase.ToCase(name, strcase.TitleCase, ' ')
}
