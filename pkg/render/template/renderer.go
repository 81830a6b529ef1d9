// Package template defines the engine seam HTML renderers depend on, mirroring
// the github.com/goliatone/go-template contract so engines can be swapped
// without touching renderer code.
package template

import "io"

// TemplateRenderer renders named templates or inline template content.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
