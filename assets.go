package docschema

import (
	"io/fs"

	"github.com/goliatone/go-docschema/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// StylesheetFS exposes the default stylesheet.
//
// Typical mount:
//
//	mux.Handle("/static/",
//	  http.StripPrefix("/static/",
//	    http.FileServerFS(docschema.StylesheetFS()),
//	  ),
//	)
func StylesheetFS() fs.FS {
	return html.AssetsFS()
}
