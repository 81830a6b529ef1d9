package vanilla

import (
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formblocks/pkg/fields"
	"github.com/goliatone/go-formblocks/pkg/render"
)

var (
	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

// sanitizeHelpText strips everything but basic inline markup from editor
// supplied help text before it is marked safe for the template.
func sanitizeHelpText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	helpPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("a", "b", "strong", "i", "em", "code", "br")
		policy.AllowAttrs("href", "title").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		helpPolicy = policy
	})
	return strings.TrimSpace(helpPolicy.Sanitize(trimmed))
}

func inputType(kind fields.FieldKind) string {
	switch kind {
	case fields.KindBoolean:
		return "checkbox"
	case fields.KindSingleChoice:
		return "select"
	case fields.KindMultiChoice:
		return "checkbox-group"
	case fields.KindCaptcha:
		return "captcha"
	default:
		return "text"
	}
}

func buildViewModel(form render.Form, options render.RenderOptions) map[string]any {
	mapping := render.MapErrors(form.Schema, options.Errors)

	fieldViews := make([]map[string]any, 0, form.Schema.Len())
	for _, spec := range form.Schema.Fields() {
		fieldViews = append(fieldViews, fieldView(spec, options, mapping))
	}

	method := form.Method
	if method == "" {
		method = "POST"
	}
	submitLabel := form.SubmitLabel
	if submitLabel == "" {
		submitLabel = "Submit"
	}

	view := map[string]any{
		"form_name":    form.Name,
		"action":       form.Action,
		"method":       method,
		"submit_label": submitLabel,
		"fields":       fieldViews,
		"form_errors":  mapping.Form,
		"hidden":       sortedHidden(options.Hidden),
	}

	if options.Theme != nil {
		view["theme"] = map[string]any{
			"name":    options.Theme.Theme,
			"variant": options.Theme.Variant,
			"tokens":  options.Theme.Tokens,
			"style":   cssVarsStyle(options.Theme.CSSVars),
		}
	}
	return view
}

func fieldView(spec fields.FieldSpec, options render.RenderOptions, mapping render.ErrorMapping) map[string]any {
	values := options.Values[spec.Name]
	value := ""
	if len(values) > 0 {
		value = values[0]
	}
	selected := make(map[string]bool, len(values))
	for _, v := range values {
		selected[v] = true
	}

	optionViews := make([]map[string]any, 0, len(spec.Options))
	for _, opt := range spec.Options {
		optionViews = append(optionViews, map[string]any{
			"value":    opt.Value,
			"label":    opt.Label,
			"selected": selected[opt.Value],
		})
	}

	maxLength := ""
	if rule, ok := spec.Rule(fields.ValidationRuleMaxLength); ok {
		maxLength = rule.Params["value"]
	}

	return map[string]any{
		"name":        spec.Name,
		"input_type":  inputType(spec.Kind),
		"label":       spec.Label,
		"help_text":   sanitizeHelpText(spec.HelpText),
		"placeholder": spec.Placeholder,
		"required":    spec.Required,
		"value":       value,
		"checked":     value != "" && value != "0" && value != "false" && value != "off",
		"options":     optionViews,
		"max_length":  maxLength,
		"errors":      mapping.Fields[spec.Name],
	}
}

func sortedHidden(hidden map[string]string) []map[string]string {
	if len(hidden) == 0 {
		return nil
	}
	names := make([]string, 0, len(hidden))
	for name := range hidden {
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]map[string]string, 0, len(names))
	for _, name := range names {
		out = append(out, map[string]string{"name": name, "value": hidden[name]})
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
