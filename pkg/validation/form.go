// Package validation builds a one-shot validation form from a collected field
// schema and checks a submission against it generically. No form type is
// synthesized per request; the schema drives a rule table instead.
package validation

import (
	"context"
	"net/url"

	"github.com/goliatone/go-formblocks/pkg/captcha"
	"github.com/goliatone/go-formblocks/pkg/fields"
)

// Errors maps field names to the messages their constraints produced.
type Errors map[string][]string

// Add appends a message under a field name.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Option customises a Form.
type Option func(*Form)

// WithCaptchaVerifier wires the verifier consulted for captcha-kind fields.
// Without one, captcha fields only enforce that a response was submitted.
func WithCaptchaVerifier(verifier captcha.Verifier) Option {
	return func(f *Form) {
		f.verifier = verifier
	}
}

// WithRemoteIP records the submitter address forwarded to the captcha
// provider.
func WithRemoteIP(ip string) Option {
	return func(f *Form) {
		f.remoteIP = ip
	}
}

// Form validates one submission against a FormSchema. It is built fresh per
// request and never shared across requests.
type Form struct {
	schema   fields.FormSchema
	verifier captcha.Verifier
	remoteIP string

	values url.Values
	errs   Errors
}

// New constructs a Form for the given schema.
func New(schema fields.FormSchema, opts ...Option) *Form {
	f := &Form{schema: schema}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Bind attaches the submitted values. Binding replaces any previous values and
// clears prior validation state.
func (f *Form) Bind(values url.Values) {
	f.values = values
	f.errs = nil
}

// Validate checks every schema field against its constraints and reports
// whether the submission passed. Field errors accumulate; validation never
// stops at the first failure.
func (f *Form) Validate(ctx context.Context) bool {
	f.errs = make(Errors)
	for _, spec := range f.schema.Fields() {
		f.validateField(ctx, spec)
	}
	return len(f.errs) == 0
}

// Errors returns the field errors recorded by the last Validate call.
func (f *Form) Errors() Errors {
	return f.errs
}

// Value returns the first submitted value for a field.
func (f *Form) Value(name string) string {
	if f.values == nil {
		return ""
	}
	return f.values.Get(name)
}

// ValueList returns every submitted value for a field, for multi-choice kinds.
func (f *Form) ValueList(name string) []string {
	if f.values == nil {
		return nil
	}
	return f.values[name]
}

// Bool reports whether a boolean field was checked.
func (f *Form) Bool(name string) bool {
	switch f.Value(name) {
	case "", "0", "false", "off":
		return false
	default:
		return true
	}
}

// Data returns one value per field in schema order, suitable for persisting a
// submission. Multi-choice fields join their selections.
func (f *Form) Data() map[string]string {
	out := make(map[string]string, f.schema.Len())
	for _, spec := range f.schema.Fields() {
		switch spec.Kind {
		case fields.KindMultiChoice:
			out[spec.Name] = joinValues(f.ValueList(spec.Name))
		case fields.KindBoolean:
			if f.Bool(spec.Name) {
				out[spec.Name] = "true"
			} else {
				out[spec.Name] = "false"
			}
		default:
			out[spec.Name] = f.Value(spec.Name)
		}
	}
	return out
}
