// Package export converts collected form schemas into OpenAPI schema objects
// so downstream services can validate or document submission payloads.
package export

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formblocks/pkg/fields"
)

// Schema builds an OpenAPI object schema describing a form submission. Every
// field becomes a property keyed by its schema name; required fields land in
// the object's required list in schema order.
func Schema(schema fields.FormSchema) *openapi3.Schema {
	out := &openapi3.Schema{
		Type:       &openapi3.Types{openapi3.TypeObject},
		Properties: make(openapi3.Schemas, schema.Len()),
	}

	for _, spec := range schema.Fields() {
		out.Properties[spec.Name] = openapi3.NewSchemaRef("", fieldSchema(spec))
		if spec.Required {
			out.Required = append(out.Required, spec.Name)
		}
	}
	return out
}

// JSON serializes the exported schema as indented JSON.
func JSON(schema fields.FormSchema) ([]byte, error) {
	payload, err := json.MarshalIndent(Schema(schema), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal schema: %w", err)
	}
	return payload, nil
}

func fieldSchema(spec fields.FieldSpec) *openapi3.Schema {
	var out *openapi3.Schema

	switch spec.Kind {
	case fields.KindBoolean:
		out = &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeBoolean}}

	case fields.KindSingleChoice:
		out = &openapi3.Schema{
			Type: &openapi3.Types{openapi3.TypeString},
			Enum: enumValues(spec.Options),
		}

	case fields.KindMultiChoice:
		items := &openapi3.Schema{
			Type: &openapi3.Types{openapi3.TypeString},
			Enum: enumValues(spec.Options),
		}
		out = &openapi3.Schema{
			Type:  &openapi3.Types{openapi3.TypeArray},
			Items: openapi3.NewSchemaRef("", items),
		}
		if value, ok := ruleUint(spec, fields.ValidationRuleMinChoices); ok {
			out.MinItems = value
		}
		if value, ok := ruleUint(spec, fields.ValidationRuleMaxChoices); ok {
			out.MaxItems = uint64Ptr(value)
		}

	default:
		// Text and captcha responses travel as plain strings.
		out = &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeString}}
		if value, ok := ruleUint(spec, fields.ValidationRuleMinLength); ok {
			out.MinLength = value
		}
		if value, ok := ruleUint(spec, fields.ValidationRuleMaxLength); ok {
			out.MaxLength = uint64Ptr(value)
		}
	}

	out.Title = spec.Label
	out.Description = spec.HelpText
	return out
}

func enumValues(options []fields.Option) []any {
	if len(options) == 0 {
		return nil
	}
	out := make([]any, 0, len(options))
	for _, opt := range options {
		out = append(out, opt.Value)
	}
	return out
}

func ruleUint(spec fields.FieldSpec, kind string) (uint64, bool) {
	rule, ok := spec.Rule(kind)
	if !ok {
		return 0, false
	}
	value, err := strconv.ParseUint(rule.Params["value"], 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}
