package render

import (
	"context"

	"github.com/goliatone/go-formblocks/pkg/fields"
)

// Form is the view-model renderers consume: the collected field schema plus
// the container-level presentation attributes.
type Form struct {
	Name        string
	Action      string
	Method      string
	SubmitLabel string
	Schema      fields.FormSchema
}

// Renderer converts a collected form into a byte representation (HTML, a
// terminal session transcript, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form Form, options RenderOptions) ([]byte, error)
}
