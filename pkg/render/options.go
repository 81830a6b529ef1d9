package render

import theme "github.com/goliatone/go-theme"

// RenderOptions carry per-request data renderers can surface without mutating
// the collected schema.
type RenderOptions struct {
	// Action and Method override the form target and verb; renderers fall back
	// to POST at the current URL when empty.
	Action string
	Method string
	// Values pre-populates rendered controls keyed by field name. Multi-choice
	// fields read every entry; other kinds read the first.
	Values map[string][]string
	// Errors surfaces server-side validation feedback keyed by field name.
	// Messages under names the schema does not know are treated as form-level.
	Errors map[string][]string
	// Hidden adds hidden inputs (CSRF tokens, honeypots) to the rendered form.
	Hidden map[string]string
	// Theme carries resolved theme tokens and CSS variables for renderers that
	// support chrome styling.
	Theme *theme.RendererConfig
}
