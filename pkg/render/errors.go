package render

import (
	"strings"

	"github.com/goliatone/go-formblocks/pkg/fields"
)

// ErrorMapping splits a validation payload into field-level and form-level
// messages keyed by the field names used throughout the render pipeline.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapErrors normalises a validation payload against a schema. Messages keyed
// by names the schema does not know are treated as form-level so they are not
// lost.
func MapErrors(schema fields.FormSchema, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{}
	if len(payload) == 0 {
		return mapping
	}

	mapping.Fields = make(map[string][]string)
	for name, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		if _, ok := schema.Field(strings.TrimSpace(name)); ok {
			mapping.Fields[strings.TrimSpace(name)] = normalized
			continue
		}
		mapping.Form = append(mapping.Form, normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
