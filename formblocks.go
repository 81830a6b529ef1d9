// Package formblocks turns editor-managed content-block trees into validated,
// renderable forms. The root package re-exports the common entry points; the
// pkg tree holds the individual pipeline stages.
package formblocks

import (
	"context"
	"errors"
	"io/fs"

	"github.com/goliatone/go-formblocks/pkg/collector"
	"github.com/goliatone/go-formblocks/pkg/content"
	"github.com/goliatone/go-formblocks/pkg/fields"
	"github.com/goliatone/go-formblocks/pkg/forms"
	"github.com/goliatone/go-formblocks/pkg/render"
	"github.com/goliatone/go-formblocks/pkg/renderers/vanilla"
)

// RenderOptions describes per-request overrides renderers can use to prefill
// values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// FormSchema is the collected field schema for one form container.
type FormSchema = fields.FormSchema

// Node is one block in an editor-managed content tree.
type Node = content.Node

// NewProcessor exposes the submission pipeline constructor from the top-level
// module.
func NewProcessor(options ...forms.Option) *forms.Processor {
	return forms.New(options...)
}

// CollectSchema walks a form container and returns its field schema using a
// default collector. Callers needing an options provider or custom builders
// construct their own collector instead.
func CollectSchema(ctx context.Context, form *content.Node, options ...collector.Option) (fields.FormSchema, error) {
	return collector.New(options...).Collect(ctx, form)
}

// RenderHTML collects the schema for a form container and renders it with the
// built-in vanilla renderer. It is the simplest entry point for callers that
// just want HTML output.
func RenderHTML(ctx context.Context, form *content.Node, opts RenderOptions) ([]byte, error) {
	if form == nil {
		return nil, errors.New("formblocks: form node is required")
	}
	schema, err := CollectSchema(ctx, form)
	if err != nil {
		return nil, err
	}

	renderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, render.Form{
		Name:        form.Attrs.Name,
		Action:      opts.Action,
		Method:      opts.Method,
		SubmitLabel: form.SubmitLabel(),
		Schema:      schema,
	}, opts)
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
