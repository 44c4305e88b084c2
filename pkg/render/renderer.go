package render

import (
	"context"

	"github.com/goliatone/go-docschema/pkg/model"
)

// Renderer converts a FormModel into a byte representation (HTML, a record
// collected from a terminal, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
