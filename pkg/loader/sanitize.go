package loader

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-docschema/pkg/schema"
)

var (
	titlePolicyOnce sync.Once
	titlePolicy     *bluemonday.Policy
)

func titleSanitizer() *bluemonday.Policy {
	titlePolicyOnce.Do(func() {
		titlePolicy = bluemonday.StrictPolicy()
	})
	return titlePolicy
}

// sanitizeTitle strips any markup from a display label. The policy escapes
// entities, which are decoded again so "Fuel & Range" survives untouched.
func sanitizeTitle(raw string) string {
	cleaned := titleSanitizer().Sanitize(raw)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// sanitizeTitles rewrites titles in place and returns the paths it changed.
func sanitizeTitles(doc *schema.FieldDescriptor) []string {
	var changed []string
	if cleaned := sanitizeTitle(doc.Title); cleaned != doc.Title {
		doc.Title = cleaned
		changed = append(changed, "")
	}
	sanitizeChildren(doc.Fields, "", &changed)
	return changed
}

func sanitizeChildren(fields []schema.FieldDescriptor, parent string, changed *[]string) {
	for i := range fields {
		path := fields[i].Name
		if parent != "" {
			path = parent + "." + path
		}
		if cleaned := sanitizeTitle(fields[i].Title); cleaned != fields[i].Title {
			fields[i].Title = cleaned
			*changed = append(*changed, path)
		}
		sanitizeChildren(fields[i].Fields, path, changed)
	}
}
