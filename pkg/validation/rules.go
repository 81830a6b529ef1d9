package validation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formblocks/pkg/fields"
)

// Platform default messages, overridable per field through
// FieldSpec.ErrorMessages (the "required" key is the only override editors can
// configure today).
const (
	msgRequired   = "This field is required."
	msgMinLength  = "Ensure this value has at least %d characters."
	msgMaxLength  = "Ensure this value has at most %d characters."
	msgMinChoices = "Select at least %d choices."
	msgMaxChoices = "Select at most %d choices."
	msgBadChoice  = "Select a valid choice."
	msgCaptcha    = "Captcha verification failed."
)

func (f *Form) validateField(ctx context.Context, spec fields.FieldSpec) {
	switch spec.Kind {
	case fields.KindText:
		f.validateText(spec)
	case fields.KindBoolean:
		f.validateBoolean(spec)
	case fields.KindSingleChoice:
		f.validateSingleChoice(spec)
	case fields.KindMultiChoice:
		f.validateMultiChoice(spec)
	case fields.KindCaptcha:
		f.validateCaptcha(ctx, spec)
	}
}

func (f *Form) validateText(spec fields.FieldSpec) {
	value := f.Value(spec.Name)
	if value == "" {
		if spec.Required {
			f.errs.Add(spec.Name, message(spec, "required", msgRequired))
		}
		return
	}

	length := utf8.RuneCountInString(value)
	if bound, ok := ruleValue(spec, fields.ValidationRuleMinLength); ok && length < bound {
		f.errs.Add(spec.Name, fmt.Sprintf(msgMinLength, bound))
	}
	if bound, ok := ruleValue(spec, fields.ValidationRuleMaxLength); ok && length > bound {
		f.errs.Add(spec.Name, fmt.Sprintf(msgMaxLength, bound))
	}
}

func (f *Form) validateBoolean(spec fields.FieldSpec) {
	if spec.Required && !f.Bool(spec.Name) {
		f.errs.Add(spec.Name, message(spec, "required", msgRequired))
	}
}

func (f *Form) validateSingleChoice(spec fields.FieldSpec) {
	value := f.Value(spec.Name)
	if value == "" {
		if spec.Required {
			f.errs.Add(spec.Name, message(spec, "required", msgRequired))
		}
		return
	}
	if !isChoice(spec.Options, value) {
		f.errs.Add(spec.Name, msgBadChoice)
	}
}

func (f *Form) validateMultiChoice(spec fields.FieldSpec) {
	values := nonEmpty(f.ValueList(spec.Name))
	if len(values) == 0 {
		if spec.Required {
			f.errs.Add(spec.Name, message(spec, "required", msgRequired))
		}
		return
	}

	for _, value := range values {
		if !isChoice(spec.Options, value) {
			f.errs.Add(spec.Name, msgBadChoice)
			break
		}
	}
	if bound, ok := ruleValue(spec, fields.ValidationRuleMinChoices); ok && len(values) < bound {
		f.errs.Add(spec.Name, fmt.Sprintf(msgMinChoices, bound))
	}
	if bound, ok := ruleValue(spec, fields.ValidationRuleMaxChoices); ok && len(values) > bound {
		f.errs.Add(spec.Name, fmt.Sprintf(msgMaxChoices, bound))
	}
}

func (f *Form) validateCaptcha(ctx context.Context, spec fields.FieldSpec) {
	token := f.Value(spec.Name)
	if token == "" {
		f.errs.Add(spec.Name, message(spec, "required", msgRequired))
		return
	}
	if f.verifier == nil {
		return
	}
	if err := f.verifier.Verify(ctx, token, f.remoteIP); err != nil {
		f.errs.Add(spec.Name, message(spec, "captcha", msgCaptcha))
	}
}

func message(spec fields.FieldSpec, key, fallback string) string {
	if msg, ok := spec.ErrorMessages[key]; ok && msg != "" {
		return msg
	}
	return fallback
}

func ruleValue(spec fields.FieldSpec, kind string) (int, bool) {
	rule, ok := spec.Rule(kind)
	if !ok {
		return 0, false
	}
	value, err := strconv.Atoi(rule.Params["value"])
	if err != nil {
		return 0, false
	}
	return value, true
}

func isChoice(options []fields.Option, value string) bool {
	for _, opt := range options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

func joinValues(values []string) string {
	return strings.Join(nonEmpty(values), ", ")
}
